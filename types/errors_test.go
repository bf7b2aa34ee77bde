package types //nolint:revive // types is a valid package name

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
)

func TestTypedErrors_MatchSentinels(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		kind     string
	}{
		{"signature", &SignatureError{Got: []byte("GIF89a\x00\x00")}, ErrSignatureMismatch, "signature_mismatch"},
		{"truncated", &TruncatedError{Field: "payload", Want: 10, Got: 3}, ErrTruncatedStream, "truncated_stream"},
		{"checksum", &ChecksumError{Type: "IDAT", Stored: 1, Computed: 2}, ErrChecksumMismatch, "checksum_mismatch"},
		{"too large", &ChunkTooLargeError{Length: 1 << 31}, ErrChunkTooLarge, "chunk_too_large"},
		{"missing header", &MissingHeaderError{Got: "IDAT"}, ErrMissingHeader, "missing_header"},
		{"malformed header", &MalformedHeaderError{Length: 12}, ErrMalformedHeader, "malformed_header"},
		{"unsupported", &UnsupportedFormatError{Field: FieldColorType, Value: 0}, ErrUnsupportedFormat, "unsupported_format"},
		{"no image data", ErrNoImageData, ErrNoImageData, "no_image_data"},
		{"decompression", &DecompressionError{Code: DecompressCodeData}, ErrDecompressionFailure, "decompression_failure"},
		{"filter", &FilterError{Row: 3, Filter: 9}, ErrUnknownFilterType, "unknown_filter_type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("decode: %w", tt.err)
			if !errors.Is(wrapped, tt.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false, want true", wrapped, tt.sentinel)
			}
			if got := ErrorKind(wrapped); got != tt.kind {
				t.Errorf("ErrorKind = %q, want %q", got, tt.kind)
			}
		})
	}
}

func TestChecksumError_ReportsBothValues(t *testing.T) {
	err := &ChecksumError{Type: "IHDR", Stored: 0xdeadbeef, Computed: 0x0badf00d}
	msg := err.Error()
	for _, want := range []string{"IHDR", "deadbeef", "0badf00d"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error() = %q, missing %q", msg, want)
		}
	}

	var ce *ChecksumError
	if !errors.As(fmt.Errorf("wrap: %w", err), &ce) {
		t.Fatal("errors.As failed for *ChecksumError")
	}
	if ce.Stored != 0xdeadbeef || ce.Computed != 0x0badf00d {
		t.Errorf("got stored=%08x computed=%08x", ce.Stored, ce.Computed)
	}
}

func TestTruncatedError_UnwrapsReadError(t *testing.T) {
	err := &TruncatedError{Field: "crc", Want: 4, Got: 1, Err: io.ErrUnexpectedEOF}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Error("expected TruncatedError to unwrap to io.ErrUnexpectedEOF")
	}
	if !errors.Is(err, ErrTruncatedStream) {
		t.Error("expected TruncatedError to match ErrTruncatedStream")
	}
}

func TestUnsupportedFormatError_NamesField(t *testing.T) {
	err := &UnsupportedFormatError{Field: FieldBitDepth, Value: 16}
	if got, want := err.Error(), "unsupported format: bit_depth=16"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestClassification(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		rejection  bool
		corruption bool
	}{
		{"signature", &SignatureError{}, true, false},
		{"unsupported", &UnsupportedFormatError{}, true, false},
		{"no image data", ErrNoImageData, true, false},
		{"checksum", &ChecksumError{}, false, true},
		{"truncated", &TruncatedError{}, false, true},
		{"filter", &FilterError{}, false, true},
		{"decompression", &DecompressionError{}, false, true},
		{"other", errors.New("boom"), false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsFormatRejection(tt.err); got != tt.rejection {
				t.Errorf("IsFormatRejection = %v, want %v", got, tt.rejection)
			}
			if got := IsCorruption(tt.err); got != tt.corruption {
				t.Errorf("IsCorruption = %v, want %v", got, tt.corruption)
			}
		})
	}

	if got := ErrorKind(errors.New("boom")); got != "other" {
		t.Errorf("ErrorKind(other) = %q, want %q", got, "other")
	}
}

func TestImageHeader_Sizes(t *testing.T) {
	h := &ImageHeader{Width: 3, Height: 2}
	if got := h.Stride(); got != 12 {
		t.Errorf("Stride = %d, want 12", got)
	}
	if got := h.RawSize(); got != 26 {
		t.Errorf("RawSize = %d, want 26", got)
	}
	if got := h.PixelSize(); got != 24 {
		t.Errorf("PixelSize = %d, want 24", got)
	}
}

func TestPixelBuffer_Row(t *testing.T) {
	p := &PixelBuffer{Width: 1, Height: 2, Stride: 4, Pix: []byte{1, 2, 3, 4, 5, 6, 7, 8}}
	row := p.Row(1)
	if len(row) != 4 || row[0] != 5 {
		t.Errorf("Row(1) = %v, want [5 6 7 8]", row)
	}
	row[0] = 9
	if p.Pix[4] != 9 {
		t.Error("Row should alias Pix")
	}
}

func TestRecord_Predicates(t *testing.T) {
	tests := []struct {
		tag                     string
		header, data, end, crit bool
	}{
		{TagHeader, true, false, false, true},
		{TagImageData, false, true, false, true},
		{TagEnd, false, false, true, true},
		{"tEXt", false, false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			r := &Record{Type: tt.tag}
			if r.IsHeader() != tt.header || r.IsImageData() != tt.data || r.IsEnd() != tt.end || r.IsCritical() != tt.crit {
				t.Errorf("predicates for %q = (%v,%v,%v,%v), want (%v,%v,%v,%v)",
					tt.tag, r.IsHeader(), r.IsImageData(), r.IsEnd(), r.IsCritical(),
					tt.header, tt.data, tt.end, tt.crit)
			}
		})
	}
}

func TestDecodeMeta_Validate(t *testing.T) {
	m := NewDecodeMeta("image.png")
	if err := m.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if m.Source != "image.png" {
		t.Errorf("Source = %q, want %q", m.Source, "image.png")
	}

	if err := (&DecodeMeta{}).Validate(); err == nil {
		t.Error("expected error for empty decode_id")
	}
	if err := (&DecodeMeta{DecodeID: "not-a-uuid"}).Validate(); err == nil {
		t.Error("expected error for malformed decode_id")
	}
}
