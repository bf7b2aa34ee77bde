// Package header decodes and validates the structural header record.
package header

import (
	"encoding/binary"
	"math"

	"github.com/pithecene-io/lumen/types"
)

// Limits bounds the accepted image dimensions. Zero means the container
// maximum, types.MaxDimension.
type Limits struct {
	MaxWidth  uint32
	MaxHeight uint32
}

// Parse decodes the header from the first record of seq and validates it
// against the supported subset and limits.
func Parse(seq []*types.Record, limits Limits) (*types.ImageHeader, error) {
	h, err := Decode(seq)
	if err != nil {
		return nil, err
	}
	if err := Validate(h, limits); err != nil {
		return nil, err
	}
	return h, nil
}

// Decode extracts the header fields without checking the supported subset.
// The first record must be the header and its payload exactly
// types.HeaderSize bytes.
func Decode(seq []*types.Record) (*types.ImageHeader, error) {
	if len(seq) == 0 {
		return nil, &types.MissingHeaderError{}
	}
	first := seq[0]
	if !first.IsHeader() {
		return nil, &types.MissingHeaderError{Got: first.Type}
	}
	p := first.Payload
	if len(p) != types.HeaderSize {
		return nil, &types.MalformedHeaderError{Length: len(p)}
	}

	return &types.ImageHeader{
		Width:             binary.BigEndian.Uint32(p[0:4]),
		Height:            binary.BigEndian.Uint32(p[4:8]),
		BitDepth:          p[8],
		ColorType:         p[9],
		CompressionMethod: p[10],
		FilterMethod:      p[11],
		InterlaceMethod:   p[12],
	}, nil
}

// Validate applies the supported subset. Fields are checked in wire order
// and the first violation is reported.
func Validate(h *types.ImageHeader, limits Limits) error {
	checks := []struct {
		field string
		value uint32
		ok    bool
	}{
		{types.FieldWidth, h.Width, within(h.Width, limits.MaxWidth)},
		{types.FieldHeight, h.Height, within(h.Height, limits.MaxHeight)},
		{types.FieldBitDepth, uint32(h.BitDepth), h.BitDepth == types.SupportedBitDepth},
		{types.FieldColorType, uint32(h.ColorType), h.ColorType == types.SupportedColorType},
		{types.FieldCompressionMethod, uint32(h.CompressionMethod), h.CompressionMethod == types.SupportedCompressionMethod},
		{types.FieldFilterMethod, uint32(h.FilterMethod), h.FilterMethod == types.SupportedFilterMethod},
		{types.FieldInterlaceMethod, uint32(h.InterlaceMethod), h.InterlaceMethod == types.SupportedInterlaceMethod},
	}

	for _, c := range checks {
		if !c.ok {
			return &types.UnsupportedFormatError{Field: c.field, Value: c.value}
		}
	}

	// Stride and RawSize are int; the scanline stream must fit.
	raw := uint64(h.Height) * (1 + uint64(h.Width)*types.BytesPerPixel)
	if raw > math.MaxInt {
		return &types.UnsupportedFormatError{Field: types.FieldHeight, Value: h.Height}
	}
	return nil
}

// within reports whether a dimension is in 1..limit. A zero limit means
// types.MaxDimension.
func within(v, limit uint32) bool {
	if limit == 0 || limit > types.MaxDimension {
		limit = types.MaxDimension
	}
	return v > 0 && v <= limit
}
