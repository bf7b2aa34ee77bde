package types

// HeaderSize is the exact payload length of the header record.
const HeaderSize = 13

// BytesPerPixel is the sample width of truecolor+alpha at 8 bits per channel.
const BytesPerPixel = 4

// MaxDimension is the largest width or height the container can express.
const MaxDimension = 1<<31 - 1

// Supported header field values. Anything else is rejected.
const (
	SupportedBitDepth          = 8
	SupportedColorType         = 6 // truecolor with alpha
	SupportedCompressionMethod = 0
	SupportedFilterMethod      = 0
	SupportedInterlaceMethod   = 0
)

// Header field names, used in UnsupportedFormatError.
const (
	FieldWidth             = "width"
	FieldHeight            = "height"
	FieldBitDepth          = "bit_depth"
	FieldColorType         = "color_type"
	FieldCompressionMethod = "compression_method"
	FieldFilterMethod      = "filter_method"
	FieldInterlaceMethod   = "interlace_method"
)

// ImageHeader is the decoded structural header.
type ImageHeader struct {
	Width             uint32 `json:"width" yaml:"width" msgpack:"width"`
	Height            uint32 `json:"height" yaml:"height" msgpack:"height"`
	BitDepth          uint8  `json:"bit_depth" yaml:"bit_depth" msgpack:"bit_depth"`
	ColorType         uint8  `json:"color_type" yaml:"color_type" msgpack:"color_type"`
	CompressionMethod uint8  `json:"compression_method" yaml:"compression_method" msgpack:"compression_method"`
	FilterMethod      uint8  `json:"filter_method" yaml:"filter_method" msgpack:"filter_method"`
	InterlaceMethod   uint8  `json:"interlace_method" yaml:"interlace_method" msgpack:"interlace_method"`
}

// Stride returns the number of reconstructed bytes per row.
func (h *ImageHeader) Stride() int {
	return int(h.Width) * BytesPerPixel
}

// RawSize returns the exact length of the decompressed scanline stream:
// one filter byte plus Stride sample bytes per row.
func (h *ImageHeader) RawSize() int {
	return int(h.Height) * (1 + h.Stride())
}

// PixelSize returns the length of the reconstructed pixel buffer.
func (h *ImageHeader) PixelSize() int {
	return int(h.Height) * h.Stride()
}
