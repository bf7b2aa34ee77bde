package types

import (
	"errors"
	"fmt"
)

// Sentinel errors for decode failure classification.
// Use errors.Is(err, ErrXxx) for typed assertions; use errors.As with the
// concrete types below to get the diagnostic context.
var (
	// ErrSignatureMismatch indicates the input does not start with Signature.
	ErrSignatureMismatch = errors.New("signature mismatch")

	// ErrTruncatedStream indicates fewer bytes than a field requires.
	ErrTruncatedStream = errors.New("truncated stream")

	// ErrChecksumMismatch indicates a record's stored CRC differs from the computed one.
	ErrChecksumMismatch = errors.New("checksum mismatch")

	// ErrChunkTooLarge indicates a record declares a length above MaxRecordLength.
	ErrChunkTooLarge = errors.New("chunk too large")

	// ErrMissingHeader indicates the first record is not the header.
	ErrMissingHeader = errors.New("missing header")

	// ErrMalformedHeader indicates the header payload has the wrong size.
	ErrMalformedHeader = errors.New("malformed header")

	// ErrUnsupportedFormat indicates a header field outside the supported subset.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrNoImageData indicates the stream has no image-data records.
	ErrNoImageData = errors.New("no image data")

	// ErrDecompressionFailure indicates the decompression service failed.
	ErrDecompressionFailure = errors.New("decompression failure")

	// ErrUnknownFilterType indicates a scanline filter byte outside 0..4.
	ErrUnknownFilterType = errors.New("unknown filter type")
)

// SignatureError reports the bytes found where the signature was expected.
type SignatureError struct {
	Got []byte
}

func (e *SignatureError) Error() string {
	return fmt.Sprintf("%v: got % x", ErrSignatureMismatch, e.Got)
}

// Is reports whether target is ErrSignatureMismatch.
func (e *SignatureError) Is(target error) bool { return target == ErrSignatureMismatch }

// TruncatedError reports a short read.
type TruncatedError struct {
	// Field names what was being read (e.g. "length", "payload", "scanlines").
	Field string
	// Want is the number of bytes required.
	Want int
	// Got is the number of bytes available.
	Got int
	// Err is the underlying read error, if any.
	Err error
}

func (e *TruncatedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v: %s: want %d bytes, got %d: %v", ErrTruncatedStream, e.Field, e.Want, e.Got, e.Err)
	}
	return fmt.Sprintf("%v: %s: want %d bytes, got %d", ErrTruncatedStream, e.Field, e.Want, e.Got)
}

// Unwrap returns the underlying read error.
func (e *TruncatedError) Unwrap() error { return e.Err }

// Is reports whether target is ErrTruncatedStream.
func (e *TruncatedError) Is(target error) bool { return target == ErrTruncatedStream }

// ChecksumError reports both checksums of a corrupt record.
type ChecksumError struct {
	Type     string
	Stored   uint32
	Computed uint32
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("%v: %s chunk: stored %08x, computed %08x", ErrChecksumMismatch, e.Type, e.Stored, e.Computed)
}

// Is reports whether target is ErrChecksumMismatch.
func (e *ChecksumError) Is(target error) bool { return target == ErrChecksumMismatch }

// ChunkTooLargeError reports a declared length above MaxRecordLength.
type ChunkTooLargeError struct {
	Length uint32
}

func (e *ChunkTooLargeError) Error() string {
	return fmt.Sprintf("%v: declared length %d exceeds %d", ErrChunkTooLarge, e.Length, MaxRecordLength)
}

// Is reports whether target is ErrChunkTooLarge.
func (e *ChunkTooLargeError) Is(target error) bool { return target == ErrChunkTooLarge }

// MissingHeaderError reports the tag found where the header was expected.
// Got is empty when the sequence had no records at all.
type MissingHeaderError struct {
	Got string
}

func (e *MissingHeaderError) Error() string {
	if e.Got == "" {
		return fmt.Sprintf("%v: no records", ErrMissingHeader)
	}
	return fmt.Sprintf("%v: first chunk is %q", ErrMissingHeader, e.Got)
}

// Is reports whether target is ErrMissingHeader.
func (e *MissingHeaderError) Is(target error) bool { return target == ErrMissingHeader }

// MalformedHeaderError reports a header payload of the wrong size.
type MalformedHeaderError struct {
	Length int
}

func (e *MalformedHeaderError) Error() string {
	return fmt.Sprintf("%v: payload is %d bytes, want %d", ErrMalformedHeader, e.Length, HeaderSize)
}

// Is reports whether target is ErrMalformedHeader.
func (e *MalformedHeaderError) Is(target error) bool { return target == ErrMalformedHeader }

// UnsupportedFormatError names the offending header field and its value.
type UnsupportedFormatError struct {
	Field string
	Value uint32
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("%v: %s=%d", ErrUnsupportedFormat, e.Field, e.Value)
}

// Is reports whether target is ErrUnsupportedFormat.
func (e *UnsupportedFormatError) Is(target error) bool { return target == ErrUnsupportedFormat }

// Decompression failure codes.
const (
	// DecompressCodeBuffer means the output never fit within the allowed hint.
	DecompressCodeBuffer = "buffer"
	// DecompressCodeData means the compressed stream is corrupt.
	DecompressCodeData = "data"
	// DecompressCodeStream means any other decompressor error.
	DecompressCodeStream = "stream"
)

// DecompressionError wraps a non-recoverable decompression service error.
type DecompressionError struct {
	Code string
	Err  error
}

func (e *DecompressionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v (%s): %v", ErrDecompressionFailure, e.Code, e.Err)
	}
	return fmt.Sprintf("%v (%s)", ErrDecompressionFailure, e.Code)
}

// Unwrap returns the service error.
func (e *DecompressionError) Unwrap() error { return e.Err }

// Is reports whether target is ErrDecompressionFailure.
func (e *DecompressionError) Is(target error) bool { return target == ErrDecompressionFailure }

// FilterError reports an unknown scanline filter code and the row it was on.
type FilterError struct {
	Row    int
	Filter byte
}

func (e *FilterError) Error() string {
	return fmt.Sprintf("%v: %d at row %d", ErrUnknownFilterType, e.Filter, e.Row)
}

// Is reports whether target is ErrUnknownFilterType.
func (e *FilterError) Is(target error) bool { return target == ErrUnknownFilterType }

// IsFormatRejection reports whether err rejects the input as not decodable
// by this decoder (wrong container, missing or unsupported header).
func IsFormatRejection(err error) bool {
	return errors.Is(err, ErrSignatureMismatch) ||
		errors.Is(err, ErrMissingHeader) ||
		errors.Is(err, ErrMalformedHeader) ||
		errors.Is(err, ErrUnsupportedFormat) ||
		errors.Is(err, ErrNoImageData)
}

// IsCorruption reports whether err indicates damaged data in an otherwise
// recognised container.
func IsCorruption(err error) bool {
	return errors.Is(err, ErrTruncatedStream) ||
		errors.Is(err, ErrChecksumMismatch) ||
		errors.Is(err, ErrChunkTooLarge) ||
		errors.Is(err, ErrDecompressionFailure) ||
		errors.Is(err, ErrUnknownFilterType)
}

// ErrorKind returns a short stable label for err, used as a metrics and log
// dimension. Unclassified errors map to "other".
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrSignatureMismatch):
		return "signature_mismatch"
	case errors.Is(err, ErrTruncatedStream):
		return "truncated_stream"
	case errors.Is(err, ErrChecksumMismatch):
		return "checksum_mismatch"
	case errors.Is(err, ErrChunkTooLarge):
		return "chunk_too_large"
	case errors.Is(err, ErrMissingHeader):
		return "missing_header"
	case errors.Is(err, ErrMalformedHeader):
		return "malformed_header"
	case errors.Is(err, ErrUnsupportedFormat):
		return "unsupported_format"
	case errors.Is(err, ErrNoImageData):
		return "no_image_data"
	case errors.Is(err, ErrDecompressionFailure):
		return "decompression_failure"
	case errors.Is(err, ErrUnknownFilterType):
		return "unknown_filter_type"
	default:
		return "other"
	}
}
