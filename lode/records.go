package lode

import (
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/pithecene-io/lumen/decoder"
	"github.com/pithecene-io/lumen/types"
)

// RecordKindDecode is the record_kind discriminator of decode records.
const RecordKindDecode = "decode"

// Sidecar file names.
const (
	PixelsFile = "pixels.rgba"
	HeaderFile = "header.msgpack"
)

// Sidecar content types.
const (
	contentTypePixels = "application/octet-stream"
	contentTypeHeader = "application/msgpack"
)

// DecodeRecord is the storage format of one decode.
// Written as a map (see toDecodeRecordMap); this struct documents the shape
// and is used when reading records back.
type DecodeRecord struct {
	RecordKind    string `json:"record_kind"`
	LayoutVersion string `json:"layout_version"`
	DecodeID      string `json:"decode_id"`
	Path          string `json:"path"`
	DecodedAt     string `json:"decoded_at"`

	Width             uint32 `json:"width"`
	Height            uint32 `json:"height"`
	BitDepth          uint8  `json:"bit_depth"`
	ColorType         uint8  `json:"color_type"`
	CompressionMethod uint8  `json:"compression_method"`
	FilterMethod      uint8  `json:"filter_method"`
	InterlaceMethod   uint8  `json:"interlace_method"`

	Chunks          int   `json:"chunks"`
	ImageDataChunks int   `json:"image_data_chunks"`
	CompressedBytes int   `json:"compressed_bytes"`
	RawBytes        int   `json:"raw_bytes"`
	PixelBytes      int   `json:"pixel_bytes"`
	InflateAttempts int   `json:"inflate_attempts"`
	DurationMS      int64 `json:"duration_ms"`

	PixelsFile string `json:"pixels_file"`
	HeaderFile string `json:"header_file"`

	// Partition keys
	Source string `json:"source"`
	Day    string `json:"day"`
}

// toDecodeRecordMap converts a decode result to a map for Lode storage.
// Lode HiveLayout requires records as map[string]any.
func toDecodeRecordMap(res *decoder.Result, cfg Config, at time.Time) map[string]any {
	h := res.Header
	return map[string]any{
		"record_kind":        RecordKindDecode,
		"layout_version":     types.RecordLayoutVersion,
		"decode_id":          res.Meta.DecodeID,
		"path":               res.Meta.Source,
		"decoded_at":         at.UTC().Format(time.RFC3339Nano),
		"width":              h.Width,
		"height":             h.Height,
		"bit_depth":          h.BitDepth,
		"color_type":         h.ColorType,
		"compression_method": h.CompressionMethod,
		"filter_method":      h.FilterMethod,
		"interlace_method":   h.InterlaceMethod,
		"chunks":             res.Stats.Chunks,
		"image_data_chunks":  res.Stats.ImageDataChunks,
		"compressed_bytes":   res.Stats.CompressedBytes,
		"raw_bytes":          res.Stats.RawBytes,
		"pixel_bytes":        len(res.Pixels.Pix),
		"inflate_attempts":   res.Stats.InflateAttempts,
		"duration_ms":        res.Stats.Duration.Milliseconds(),
		"pixels_file":        PixelsFile,
		"header_file":        HeaderFile,
		"source":             cfg.Source,
		"day":                DeriveDay(at),
	}
}

// HeaderSidecar is the msgpack body of HeaderFile.
type HeaderSidecar struct {
	LayoutVersion string            `msgpack:"layout_version"`
	DecodeID      string            `msgpack:"decode_id"`
	Header        types.ImageHeader `msgpack:"header"`
	Stride        int               `msgpack:"stride"`
	Chunks        int               `msgpack:"chunks"`
	ImageData     int               `msgpack:"image_data_chunks"`
	Compressed    int               `msgpack:"compressed_bytes"`
	Raw           int               `msgpack:"raw_bytes"`
}

func newHeaderSidecar(res *decoder.Result) HeaderSidecar {
	return HeaderSidecar{
		LayoutVersion: types.RecordLayoutVersion,
		DecodeID:      res.Meta.DecodeID,
		Header:        *res.Header,
		Stride:        res.Pixels.Stride,
		Chunks:        res.Stats.Chunks,
		ImageData:     res.Stats.ImageDataChunks,
		Compressed:    res.Stats.CompressedBytes,
		Raw:           res.Stats.RawBytes,
	}
}

// EncodeHeaderSidecar encodes the header summary of res.
func EncodeHeaderSidecar(res *decoder.Result) ([]byte, error) {
	data, err := msgpack.Marshal(newHeaderSidecar(res))
	if err != nil {
		return nil, fmt.Errorf("encode header sidecar: %w", err)
	}
	return data, nil
}

// DecodeHeaderSidecar decodes a HeaderFile body.
func DecodeHeaderSidecar(data []byte) (*HeaderSidecar, error) {
	var s HeaderSidecar
	if err := msgpack.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode header sidecar: %w", err)
	}
	return &s, nil
}
