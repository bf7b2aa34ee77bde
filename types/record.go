// Package types defines the core domain types shared by every decode stage.
//
//nolint:revive // types is a common Go package naming convention
package types

// Signature is the fixed 8-byte prefix of every container.
const Signature = "\x89PNG\r\n\x1a\n"

// SignatureSize is the length of Signature in bytes.
const SignatureSize = len(Signature)

// Reserved chunk tags.
const (
	// TagHeader marks the structural header record. It must come first.
	TagHeader = "IHDR"
	// TagImageData marks a slice of the compressed pixel stream.
	TagImageData = "IDAT"
	// TagEnd marks the terminal record.
	TagEnd = "IEND"
)

// MaxRecordLength is the largest payload length a record may declare (2^31-1).
const MaxRecordLength = 1<<31 - 1

// Record is one typed, length-prefixed, checksummed unit of the wire format.
// CRC equals CRC-32 (IEEE) of Type followed by Payload.
// Records are never mutated after the chunk reader creates them.
type Record struct {
	// Type is the 4-byte ASCII tag.
	Type string `json:"type" msgpack:"type"`
	// Length is the declared payload length.
	Length uint32 `json:"length" msgpack:"length"`
	// Payload holds exactly Length bytes.
	Payload []byte `json:"-" msgpack:"-"`
	// CRC is the stored checksum.
	CRC uint32 `json:"crc" msgpack:"crc"`
}

// IsHeader reports whether the record is the structural header.
func (r *Record) IsHeader() bool { return r.Type == TagHeader }

// IsImageData reports whether the record carries compressed pixel data.
func (r *Record) IsImageData() bool { return r.Type == TagImageData }

// IsEnd reports whether the record terminates the stream.
func (r *Record) IsEnd() bool { return r.Type == TagEnd }

// IsCritical reports whether the tag's ancillary bit is clear
// (first letter upper case).
func (r *Record) IsCritical() bool {
	return len(r.Type) == 4 && r.Type[0]&0x20 == 0
}
