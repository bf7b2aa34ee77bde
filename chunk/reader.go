// Package chunk reads the container's record stream.
//
// Wire layout after the 8-byte signature, repeated until the end record:
//
//	length:u32be  type:4 bytes  payload:length bytes  crc:u32be
//
// The CRC covers type and payload.
package chunk

import (
	"bytes"
	"encoding/binary"
	"hash"
	"hash/crc32"
	"io"

	"github.com/pithecene-io/lumen/types"
)

// Field sizes in bytes.
const (
	// LengthPrefixSize is the size of the big-endian length prefix.
	LengthPrefixSize = 4
	// TypeSize is the size of the ASCII type tag.
	TypeSize = 4
	// CRCSize is the size of the trailing checksum.
	CRCSize = 4
)

// Field names reported in TruncatedError.
const (
	fieldSignature = "signature"
	fieldLength    = "length"
	fieldType      = "type"
	fieldPayload   = "payload"
	fieldCRC       = "crc"
)

// ReadSignature consumes the 8-byte signature from r and verifies it.
func ReadSignature(r io.Reader) error {
	var sig [types.SignatureSize]byte
	n, err := io.ReadFull(r, sig[:])
	if err != nil {
		return &types.TruncatedError{Field: fieldSignature, Want: types.SignatureSize, Got: n, Err: err}
	}
	if !bytes.Equal(sig[:], []byte(types.Signature)) {
		return &types.SignatureError{Got: append([]byte(nil), sig[:]...)}
	}
	return nil
}

// Sequence is the ordered list of records of one stream, ending with the
// end record, plus diagnostic counters.
type Sequence struct {
	Records []*types.Record
	// Total counts every record read, including the end record.
	Total int
	// ImageData counts image-data records.
	ImageData int
}

// Reader decodes records from a byte stream positioned just after the
// signature.
type Reader struct {
	reader io.Reader
	crc    hash.Hash32
}

// NewReader creates a new record reader.
func NewReader(r io.Reader) *Reader {
	return &Reader{reader: r, crc: crc32.NewIEEE()}
}

// Next reads and verifies a single record.
//
// Errors:
//   - *types.TruncatedError: the stream ended inside a field
//   - *types.ChunkTooLargeError: declared length above types.MaxRecordLength
//   - *types.ChecksumError: stored and computed CRC differ
func (d *Reader) Next() (*types.Record, error) {
	var head [LengthPrefixSize + TypeSize]byte
	n, err := io.ReadFull(d.reader, head[:LengthPrefixSize])
	if err != nil {
		return nil, &types.TruncatedError{Field: fieldLength, Want: LengthPrefixSize, Got: n, Err: err}
	}
	length := binary.BigEndian.Uint32(head[:LengthPrefixSize])
	if length > types.MaxRecordLength {
		return nil, &types.ChunkTooLargeError{Length: length}
	}

	n, err = io.ReadFull(d.reader, head[LengthPrefixSize:])
	if err != nil {
		return nil, &types.TruncatedError{Field: fieldType, Want: TypeSize, Got: n, Err: err}
	}
	tag := string(head[LengthPrefixSize:])

	payload, err := readPayload(d.reader, length)
	if err != nil {
		return nil, err
	}

	var crcBuf [CRCSize]byte
	n, err = io.ReadFull(d.reader, crcBuf[:])
	if err != nil {
		return nil, &types.TruncatedError{Field: fieldCRC, Want: CRCSize, Got: n, Err: err}
	}
	stored := binary.BigEndian.Uint32(crcBuf[:])

	d.crc.Reset()
	d.crc.Write(head[LengthPrefixSize:])
	d.crc.Write(payload)
	computed := d.crc.Sum32()
	if computed != stored {
		return nil, &types.ChecksumError{Type: tag, Stored: stored, Computed: computed}
	}

	return &types.Record{
		Type:    tag,
		Length:  length,
		Payload: payload,
		CRC:     stored,
	}, nil
}

// ReadAll reads records until the end record has been consumed.
// Bytes after the end record are left unread. On failure the records read
// so far are dropped and only the error is returned.
func (d *Reader) ReadAll() (*Sequence, error) {
	seq := &Sequence{}
	for {
		rec, err := d.Next()
		if err != nil {
			return nil, err
		}
		seq.Records = append(seq.Records, rec)
		seq.Total++
		if rec.IsImageData() {
			seq.ImageData++
		}
		if rec.IsEnd() {
			return seq, nil
		}
	}
}

// payloadStep bounds each allocation step while reading a payload, so a
// corrupt length on a short stream fails before allocating the full length.
const payloadStep = 1 << 20

func readPayload(r io.Reader, length uint32) ([]byte, error) {
	want := int(length)
	if want <= payloadStep {
		payload := make([]byte, want)
		n, err := io.ReadFull(r, payload)
		if err != nil {
			return nil, &types.TruncatedError{Field: fieldPayload, Want: want, Got: n, Err: err}
		}
		return payload, nil
	}

	var buf bytes.Buffer
	n, err := io.CopyN(&buf, r, int64(want))
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, &types.TruncatedError{Field: fieldPayload, Want: want, Got: int(n), Err: err}
	}
	return buf.Bytes(), nil
}
