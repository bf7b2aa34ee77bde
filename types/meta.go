package types

import (
	"errors"

	"github.com/google/uuid"
)

// DecodeMeta identifies one decode invocation for logs, metrics and storage.
type DecodeMeta struct {
	// DecodeID is unique per invocation.
	DecodeID string
	// Source names the input (usually a file path). May be empty for streams.
	Source string
}

// NewDecodeMeta returns metadata with a fresh random decode ID.
func NewDecodeMeta(source string) *DecodeMeta {
	return &DecodeMeta{
		DecodeID: uuid.NewString(),
		Source:   source,
	}
}

// Validate checks that the decode ID is present and well formed.
func (m *DecodeMeta) Validate() error {
	if m.DecodeID == "" {
		return errors.New("decode_id must be non-empty")
	}
	if _, err := uuid.Parse(m.DecodeID); err != nil {
		return errors.New("decode_id must be a UUID")
	}
	return nil
}
