// Package lode persists decode results to a Lode dataset.
//
// Each decode produces one JSONL "decode" record plus two sidecar files
// (raw pixels and a msgpack header summary) under the same Hive partition:
//
//	source=<source>/day=<YYYY-MM-DD>/decode_id=<uuid>/record_kind=decode
package lode

import (
	"context"
	"sync"
	"time"

	"github.com/pithecene-io/lumen/decoder"
)

// DeriveDay computes the partition day from a decode time.
// Format: YYYY-MM-DD in UTC.
func DeriveDay(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Config holds storage configuration shared by every decode of a client.
type Config struct {
	// Dataset is the Lode dataset ID.
	Dataset string
	// Source is the partition key for the producing host or pipeline.
	Source string
}

// Client persists decode results.
type Client interface {
	// WriteDecode writes the sidecar files and then the decode record.
	// A decode record therefore implies its sidecars exist.
	WriteDecode(ctx context.Context, res *decoder.Result) error

	// Close releases client resources.
	Close() error
}

// StubClient records writes without persisting.
type StubClient struct {
	mu      sync.Mutex
	Results []*decoder.Result
	Err     error
	Closed  bool
}

// NewStubClient creates a new stub client.
func NewStubClient() *StubClient {
	return &StubClient{}
}

// WriteDecode implements Client.
func (c *StubClient) WriteDecode(_ context.Context, res *decoder.Result) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	c.Results = append(c.Results, res)
	return nil
}

// Close implements Client.
func (c *StubClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Closed = true
	return nil
}

// Verify StubClient implements Client.
var _ Client = (*StubClient)(nil)
