package types

// PixelBuffer is a reconstructed image: Height rows of Stride bytes,
// row-major RGBA with 8 bits per channel and no padding or filter markers.
type PixelBuffer struct {
	Width  int
	Height int
	Stride int
	Pix    []byte
}

// Row returns the bytes of row y. The slice aliases Pix.
func (p *PixelBuffer) Row(y int) []byte {
	return p.Pix[y*p.Stride : (y+1)*p.Stride]
}
