// Package reader builds the read-side payloads of the lumen CLI: chunk
// inspection reports, decode summaries and stored decode listings.
//
// Table, JSON, YAML and TUI output all render these same payloads.
package reader

import "github.com/pithecene-io/lumen/types"

// ChunkRow describes one record seen by inspect.
type ChunkRow struct {
	Index    int    `json:"index" yaml:"index"`
	Type     string `json:"type" yaml:"type"`
	Length   uint32 `json:"length" yaml:"length"`
	CRC      string `json:"crc" yaml:"crc"`
	Critical bool   `json:"critical" yaml:"critical"`
}

// InspectReport is the result of walking a container's records.
// Records are reported up to the first failure; Error names the failure.
type InspectReport struct {
	Source    string             `json:"source" yaml:"source"`
	Signature bool               `json:"signature_ok" yaml:"signature_ok"`
	Chunks    []ChunkRow         `json:"chunks" yaml:"chunks"`
	Header    *types.ImageHeader `json:"header,omitempty" yaml:"header,omitempty"`
	// HeaderError is set when the header decodes but is outside the
	// supported subset.
	HeaderError string `json:"header_error,omitempty" yaml:"header_error,omitempty"`
	// ImageDataBytes is the summed payload length of image-data records.
	ImageDataBytes int    `json:"image_data_bytes" yaml:"image_data_bytes"`
	Complete       bool   `json:"complete" yaml:"complete"`
	Error          string `json:"error,omitempty" yaml:"error,omitempty"`
	ErrorKind      string `json:"error_kind,omitempty" yaml:"error_kind,omitempty"`

	err error
}

// Err returns the failure that stopped the walk, if any.
func (r *InspectReport) Err() error { return r.err }

// DecodeSummary is the printed result of one decode.
type DecodeSummary struct {
	Source          string            `json:"source" yaml:"source"`
	DecodeID        string            `json:"decode_id" yaml:"decode_id"`
	Header          types.ImageHeader `json:"header" yaml:"header"`
	PixelBytes      int               `json:"pixel_bytes" yaml:"pixel_bytes"`
	Chunks          int               `json:"chunks" yaml:"chunks"`
	ImageDataChunks int               `json:"image_data_chunks" yaml:"image_data_chunks"`
	CompressedBytes int               `json:"compressed_bytes" yaml:"compressed_bytes"`
	RawBytes        int               `json:"raw_bytes" yaml:"raw_bytes"`
	InflateAttempts int               `json:"inflate_attempts" yaml:"inflate_attempts"`
	DurationMS      float64           `json:"duration_ms" yaml:"duration_ms"`
	Output          string            `json:"output,omitempty" yaml:"output,omitempty"`
	Stored          bool              `json:"stored" yaml:"stored"`
}

// FailedDecode is the printed result of a decode that failed.
type FailedDecode struct {
	Source string `json:"source" yaml:"source"`
	Error  string `json:"error" yaml:"error"`
	Kind   string `json:"kind" yaml:"kind"`
}

// StoredDecode is one decode record read back from storage.
type StoredDecode struct {
	DecodeID        string `json:"decode_id" yaml:"decode_id"`
	Path            string `json:"path" yaml:"path"`
	Source          string `json:"source" yaml:"source"`
	Day             string `json:"day" yaml:"day"`
	DecodedAt       string `json:"decoded_at" yaml:"decoded_at"`
	Width           int64  `json:"width" yaml:"width"`
	Height          int64  `json:"height" yaml:"height"`
	Chunks          int64  `json:"chunks" yaml:"chunks"`
	CompressedBytes int64  `json:"compressed_bytes" yaml:"compressed_bytes"`
	RawBytes        int64  `json:"raw_bytes" yaml:"raw_bytes"`
	DurationMS      int64  `json:"duration_ms" yaml:"duration_ms"`
	LayoutVersion   string `json:"layout_version" yaml:"layout_version"`
}
