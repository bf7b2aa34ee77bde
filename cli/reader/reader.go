package reader

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/pithecene-io/lumen/chunk"
	"github.com/pithecene-io/lumen/decoder"
	"github.com/pithecene-io/lumen/header"
	"github.com/pithecene-io/lumen/iox"
	"github.com/pithecene-io/lumen/types"
)

// Inspect walks the records of r without decompressing image data.
// Walk failures are reported in the returned InspectReport, never as an
// error; the rows read before the failure are kept.
func Inspect(r io.Reader, source string, limits header.Limits) *InspectReport {
	report := &InspectReport{Source: source, Chunks: []ChunkRow{}}

	if err := chunk.ReadSignature(r); err != nil {
		report.fail(err)
		return report
	}
	report.Signature = true

	cr := chunk.NewReader(r)
	for i := 0; ; i++ {
		rec, err := cr.Next()
		if err != nil {
			report.fail(err)
			return report
		}
		report.Chunks = append(report.Chunks, ChunkRow{
			Index:    i,
			Type:     rec.Type,
			Length:   rec.Length,
			CRC:      fmt.Sprintf("%08x", rec.CRC),
			Critical: rec.IsCritical(),
		})

		if i == 0 {
			h, err := header.Decode([]*types.Record{rec})
			if err != nil {
				report.fail(err)
				return report
			}
			report.Header = h
			if err := header.Validate(h, limits); err != nil {
				report.HeaderError = err.Error()
			}
		}
		if rec.IsImageData() {
			report.ImageDataBytes += len(rec.Payload)
		}
		if rec.IsEnd() {
			report.Complete = true
			return report
		}
	}
}

// InspectFile opens path and inspects it. Only open failures are returned
// as errors.
func InspectFile(path string, limits header.Limits) (*InspectReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer iox.DiscardClose(f)
	return Inspect(bufio.NewReader(f), path, limits), nil
}

func (r *InspectReport) fail(err error) {
	r.err = err
	r.Error = err.Error()
	r.ErrorKind = types.ErrorKind(err)
}

// Summarize converts a decode result into its printed form.
func Summarize(res *decoder.Result) *DecodeSummary {
	s := &DecodeSummary{
		Chunks:          res.Stats.Chunks,
		ImageDataChunks: res.Stats.ImageDataChunks,
		CompressedBytes: res.Stats.CompressedBytes,
		RawBytes:        res.Stats.RawBytes,
		InflateAttempts: res.Stats.InflateAttempts,
		DurationMS:      float64(res.Stats.Duration.Microseconds()) / 1000,
	}
	if res.Meta != nil {
		s.Source = res.Meta.Source
		s.DecodeID = res.Meta.DecodeID
	}
	if res.Header != nil {
		s.Header = *res.Header
	}
	if res.Pixels != nil {
		s.PixelBytes = len(res.Pixels.Pix)
	}
	return s
}

// Failure converts a decode error into its printed form.
func Failure(source string, err error) *FailedDecode {
	return &FailedDecode{Source: source, Error: err.Error(), Kind: types.ErrorKind(err)}
}
