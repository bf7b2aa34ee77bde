// Package recon undoes the per-scanline predictive filters.
//
// Each row of the raw stream is one filter byte followed by Stride filtered
// bytes. Predictors read the already reconstructed output: A is the byte one
// pixel to the left, B the byte above, C the byte above-left; out-of-image
// neighbours are zero. All arithmetic wraps modulo 256.
package recon

import (
	"fmt"

	"github.com/pithecene-io/lumen/types"
)

// Filter is a scanline filter type.
type Filter byte

// Filter types.
const (
	FilterNone    Filter = 0
	FilterSub     Filter = 1
	FilterUp      Filter = 2
	FilterAverage Filter = 3
	FilterPaeth   Filter = 4

	numFilters = 5
)

func (f Filter) String() string {
	switch f {
	case FilterNone:
		return "none"
	case FilterSub:
		return "sub"
	case FilterUp:
		return "up"
	case FilterAverage:
		return "average"
	case FilterPaeth:
		return "paeth"
	default:
		return fmt.Sprintf("filter(%d)", byte(f))
	}
}

// Valid reports whether f is one of the five defined filters.
func (f Filter) Valid() bool { return f < numFilters }

const bpp = types.BytesPerPixel

// Reconstruct turns the raw scanline stream into a pixel buffer for h.
// raw must hold at least h.RawSize() bytes; extra bytes are ignored.
// Rows are processed top to bottom and left to right, since each row reads
// the reconstructed row above it. No partial buffer is returned on error.
func Reconstruct(raw []byte, h *types.ImageHeader) (*types.PixelBuffer, error) {
	stride := h.Stride()
	height := int(h.Height)
	if want := h.RawSize(); len(raw) < want {
		return nil, &types.TruncatedError{Field: "scanlines", Want: want, Got: len(raw)}
	}

	buf := &types.PixelBuffer{
		Width:  int(h.Width),
		Height: height,
		Stride: stride,
		Pix:    make([]byte, h.PixelSize()),
	}
	// Row -1 is all zeros.
	prev := make([]byte, stride)

	for r := 0; r < height; r++ {
		line := raw[r*(stride+1) : (r+1)*(stride+1)]
		f := Filter(line[0])
		cur := buf.Row(r)

		if !unfilter(f, cur, line[1:], prev) {
			return nil, &types.FilterError{Row: r, Filter: byte(f)}
		}
		prev = cur
	}

	return buf, nil
}

// unfilter reconstructs one row into cur. It returns false for an unknown
// filter type.
func unfilter(f Filter, cur, src, prev []byte) bool {
	switch f {
	case FilterNone:
		copy(cur, src)
	case FilterSub:
		for c := range src {
			cur[c] = src[c] + left(cur, c)
		}
	case FilterUp:
		for c := range src {
			cur[c] = src[c] + prev[c]
		}
	case FilterAverage:
		for c := range src {
			cur[c] = src[c] + uint8((int(left(cur, c))+int(prev[c]))/2)
		}
	case FilterPaeth:
		for c := range src {
			cur[c] = src[c] + Paeth(left(cur, c), prev[c], left(prev, c))
		}
	default:
		return false
	}
	return true
}

// left returns row[c-bpp], or zero in the first pixel.
func left(row []byte, c int) uint8 {
	if c < bpp {
		return 0
	}
	return row[c-bpp]
}

// Paeth returns whichever of a (left), b (above) and c (upper left) is
// closest to a+b-c. Ties go to a, then b.
func Paeth(a, b, c uint8) uint8 {
	p := int(a) + int(b) - int(c)
	pa := abs(p - int(a))
	pb := abs(p - int(b))
	pc := abs(p - int(c))

	if pa <= pb && pa <= pc {
		return a
	} else if pb <= pc {
		return b
	}
	return c
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
