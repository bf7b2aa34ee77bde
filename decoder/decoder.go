// Package decoder runs the decode pipeline end to end:
//
//	signature -> chunk records -> header -> image data -> inflate -> scanlines
//
// Each stage runs to completion before the next starts and hands its output
// downstream; on any failure only the error is returned.
package decoder

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pithecene-io/lumen/chunk"
	"github.com/pithecene-io/lumen/header"
	"github.com/pithecene-io/lumen/inflate"
	"github.com/pithecene-io/lumen/iox"
	"github.com/pithecene-io/lumen/log"
	"github.com/pithecene-io/lumen/metrics"
	"github.com/pithecene-io/lumen/payload"
	"github.com/pithecene-io/lumen/recon"
	"github.com/pithecene-io/lumen/types"
)

// previewBytes is how many leading bytes of each buffer go into debug logs.
const previewBytes = 8

// Options configures a Decoder. The zero value is usable.
type Options struct {
	// Inflater is the decompression service. Nil uses inflate.Zlib.
	Inflater inflate.Inflater
	// Limits bounds accepted dimensions.
	Limits header.Limits
	// Inflate tunes the size hint and retry budget.
	Inflate inflate.Options
	// Logger receives stage diagnostics. Nil disables logging.
	Logger *log.Logger
	// Collector receives metrics. Nil disables metrics.
	Collector *metrics.Collector
}

// Stats describes one successful decode.
type Stats struct {
	Chunks          int           `json:"chunks"`
	ImageDataChunks int           `json:"image_data_chunks"`
	CompressedBytes int           `json:"compressed_bytes"`
	RawBytes        int           `json:"raw_bytes"`
	InflateAttempts int           `json:"inflate_attempts"`
	Duration        time.Duration `json:"duration"`
}

// Result is a decoded image.
type Result struct {
	Meta   *types.DecodeMeta
	Header *types.ImageHeader
	Pixels *types.PixelBuffer
	Stats  Stats
}

// Decoder decodes containers with fixed options. Safe for sequential reuse.
type Decoder struct {
	opts Options
}

// New creates a Decoder.
func New(opts Options) *Decoder {
	if opts.Inflater == nil {
		opts.Inflater = inflate.Zlib{}
	}
	return &Decoder{opts: opts}
}

// Decode decodes a stream with default options.
func Decode(r io.Reader) (*Result, error) {
	return New(Options{}).Decode(r, types.NewDecodeMeta(""))
}

// DecodeFile opens path and decodes it.
func (d *Decoder) DecodeFile(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer iox.DiscardClose(f)

	return d.Decode(f, types.NewDecodeMeta(path))
}

// Decode reads a complete container from r.
func (d *Decoder) Decode(r io.Reader, meta *types.DecodeMeta) (*Result, error) {
	if err := meta.Validate(); err != nil {
		return nil, fmt.Errorf("invalid decode metadata: %w", err)
	}

	start := time.Now()
	logger := d.opts.Logger.With(meta)
	d.opts.Collector.IncDecodeStarted()

	res, err := d.run(r, logger)
	if err != nil {
		kind := types.ErrorKind(err)
		d.opts.Collector.IncDecodeFailed(kind)
		logger.Error("decode failed", map[string]any{
			"kind":  kind,
			"error": err.Error(),
		})
		return nil, err
	}

	res.Meta = meta
	res.Stats.Duration = time.Since(start)
	d.opts.Collector.IncDecodeCompleted()
	logger.Info("decode complete", map[string]any{
		"width":        res.Header.Width,
		"height":       res.Header.Height,
		"chunks":       res.Stats.Chunks,
		"idat_chunks":  res.Stats.ImageDataChunks,
		"compressed":   res.Stats.CompressedBytes,
		"raw":          res.Stats.RawBytes,
		"duration_ms":  res.Stats.Duration.Milliseconds(),
		"inflate_runs": res.Stats.InflateAttempts,
	})
	return res, nil
}

func (d *Decoder) run(r io.Reader, logger *log.Logger) (*Result, error) {
	if err := chunk.ReadSignature(r); err != nil {
		return nil, err
	}

	seq, err := chunk.NewReader(r).ReadAll()
	if err != nil {
		return nil, err
	}
	d.opts.Collector.AddChunks(seq.Total, seq.ImageData)
	logger.Debug("chunks read", map[string]any{
		"total":     seq.Total,
		"idat":      seq.ImageData,
		"ancillary": ancillaryTypes(seq.Records),
	})

	hdr, err := header.Parse(seq.Records, d.opts.Limits)
	if err != nil {
		return nil, err
	}
	logger.Debug("header", map[string]any{
		"width":              hdr.Width,
		"height":             hdr.Height,
		"bit_depth":          hdr.BitDepth,
		"color_type":         hdr.ColorType,
		"compression_method": hdr.CompressionMethod,
		"filter_method":      hdr.FilterMethod,
		"interlace_method":   hdr.InterlaceMethod,
	})

	compressed, err := payload.Assemble(seq.Records)
	if err != nil {
		return nil, err
	}
	stats := Stats{
		Chunks:          seq.Total,
		ImageDataChunks: seq.ImageData,
		CompressedBytes: len(compressed),
	}
	seq = nil
	logger.Debug("image data assembled", map[string]any{
		"bytes": len(compressed),
		"head":  preview(compressed),
	})

	inflated, err := inflate.Run(d.opts.Inflater, compressed, hdr.RawSize(), d.opts.Inflate)
	if err != nil {
		return nil, err
	}
	compressed = nil
	d.opts.Collector.AddInflate(stats.CompressedBytes, len(inflated.Raw), inflated.Attempts)
	stats.RawBytes = len(inflated.Raw)
	stats.InflateAttempts = inflated.Attempts
	logger.Debug("image data inflated", map[string]any{
		"bytes":    len(inflated.Raw),
		"expected": hdr.RawSize(),
		"hint":     inflated.Hint,
		"attempts": inflated.Attempts,
		"head":     preview(inflated.Raw),
	})

	pixels, err := recon.Reconstruct(inflated.Raw, hdr)
	if err != nil {
		return nil, err
	}
	d.opts.Collector.AddPixels(len(pixels.Pix))

	return &Result{Header: hdr, Pixels: pixels, Stats: stats}, nil
}

func preview(b []byte) string {
	if len(b) > previewBytes {
		b = b[:previewBytes]
	}
	return hex.EncodeToString(b)
}

// ancillaryTypes lists the tags of records that are parsed but not
// interpreted.
func ancillaryTypes(recs []*types.Record) []string {
	var out []string
	for _, rec := range recs {
		if rec.IsHeader() || rec.IsImageData() || rec.IsEnd() {
			continue
		}
		out = append(out, rec.Type)
	}
	return out
}
