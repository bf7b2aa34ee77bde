// Package fixture builds synthetic container streams for tests.
package fixture

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"

	"github.com/klauspost/compress/zlib"

	"github.com/pithecene-io/lumen/types"
)

// Chunk encodes one record with a correct CRC.
func Chunk(tag string, payload []byte) []byte {
	var b bytes.Buffer
	var u32 [4]byte
	binary.BigEndian.PutUint32(u32[:], uint32(len(payload)))
	b.Write(u32[:])
	b.WriteString(tag)
	b.Write(payload)
	crc := crc32.NewIEEE()
	crc.Write([]byte(tag))
	crc.Write(payload)
	binary.BigEndian.PutUint32(u32[:], crc.Sum32())
	b.Write(u32[:])
	return b.Bytes()
}

// HeaderPayload encodes a 13-byte header payload.
func HeaderPayload(h types.ImageHeader) []byte {
	p := make([]byte, types.HeaderSize)
	binary.BigEndian.PutUint32(p[0:4], h.Width)
	binary.BigEndian.PutUint32(p[4:8], h.Height)
	p[8] = h.BitDepth
	p[9] = h.ColorType
	p[10] = h.CompressionMethod
	p[11] = h.FilterMethod
	p[12] = h.InterlaceMethod
	return p
}

// RGBA8 returns a supported header of the given size.
func RGBA8(width, height uint32) types.ImageHeader {
	return types.ImageHeader{
		Width:     width,
		Height:    height,
		BitDepth:  types.SupportedBitDepth,
		ColorType: types.SupportedColorType,
	}
}

// Deflate compresses raw with zlib framing.
func Deflate(raw []byte) []byte {
	var b bytes.Buffer
	w := zlib.NewWriter(&b)
	if _, err := w.Write(raw); err != nil {
		panic(err)
	}
	if err := w.Close(); err != nil {
		panic(err)
	}
	return b.Bytes()
}

// Image describes a stream to build.
type Image struct {
	Header types.ImageHeader
	// Raw is the filter-tagged scanline stream before compression.
	Raw []byte
	// Splits cuts the compressed stream into this many image-data records
	// (default 1).
	Splits int
	// Extra records inserted between the header and the first image-data record.
	Extra [][]byte
}

// Build encodes a complete stream: signature, header, extras, image data, end.
func Build(img Image) []byte {
	var b bytes.Buffer
	b.WriteString(types.Signature)
	b.Write(Chunk(types.TagHeader, HeaderPayload(img.Header)))
	for _, e := range img.Extra {
		b.Write(e)
	}

	compressed := Deflate(img.Raw)
	splits := img.Splits
	if splits < 1 {
		splits = 1
	}
	size := (len(compressed) + splits - 1) / splits
	for start := 0; start < len(compressed); start += size {
		end := min(start+size, len(compressed))
		b.Write(Chunk(types.TagImageData, compressed[start:end]))
	}

	b.Write(Chunk(types.TagEnd, nil))
	return b.Bytes()
}

// NoneFiltered prefixes every row of pix with filter type 0.
func NoneFiltered(pix []byte, stride int) []byte {
	rows := len(pix) / stride
	raw := make([]byte, 0, rows*(stride+1))
	for y := 0; y < rows; y++ {
		raw = append(raw, 0)
		raw = append(raw, pix[y*stride:(y+1)*stride]...)
	}
	return raw
}
