package lode

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/justapithecus/lode/lode"

	"github.com/pithecene-io/lumen/decoder"
)

// ErrIncompleteResult is returned when a result lacks metadata, header or
// pixels.
var ErrIncompleteResult = errors.New("decode write rejected: incomplete result")

// LodeClient is a Lode-backed implementation of Client.
// Uses Lode's HiveLayout with partition keys: source/day/decode_id/record_kind.
type LodeClient struct {
	dataset lode.Dataset
	config  Config

	storeFactory lode.StoreFactory
	storeOnce    sync.Once
	store        lode.Store
	storeErr     error

	mu  sync.Mutex // serializes WriteDecode
	now func() time.Time
}

// NewLodeClient creates a new Lode client with filesystem storage.
// The root parameter is the base directory for Hive-partitioned storage.
func NewLodeClient(cfg Config, root string) (*LodeClient, error) {
	return NewLodeClientWithFactory(cfg, lode.NewFSFactory(root))
}

// NewLodeClientWithFactory creates a new Lode client with a custom store factory.
// Use lode.NewMemoryFactory() for testing.
func NewLodeClientWithFactory(cfg Config, factory lode.StoreFactory) (*LodeClient, error) {
	ds, err := NewReadDataset(cfg.Dataset, factory)
	if err != nil {
		return nil, WrapInitError(err, cfg.Dataset)
	}
	return newClient(ds, cfg, factory), nil
}

func newClient(ds lode.Dataset, cfg Config, factory lode.StoreFactory) *LodeClient {
	return &LodeClient{
		dataset:      ds,
		config:       cfg,
		storeFactory: factory,
		now:          time.Now,
	}
}

// WriteDecode writes the pixel and header sidecars, then the decode record.
// If a sidecar write fails no record is written.
func (c *LodeClient) WriteDecode(ctx context.Context, res *decoder.Result) error {
	if res == nil || res.Meta == nil || res.Header == nil || res.Pixels == nil {
		return ErrIncompleteResult
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	at := c.now()
	loc := partition{
		source:   c.config.Source,
		day:      DeriveDay(at),
		decodeID: res.Meta.DecodeID,
	}

	if err := c.putFile(ctx, loc, PixelsFile, contentTypePixels, res.Pixels.Pix); err != nil {
		return err
	}

	header, err := EncodeHeaderSidecar(res)
	if err != nil {
		return err
	}
	if err := c.putFile(ctx, loc, HeaderFile, contentTypeHeader, header); err != nil {
		return err
	}

	record := toDecodeRecordMap(res, c.config, at)
	if _, err := c.dataset.Write(ctx, []any{record}, lode.Metadata{}); err != nil {
		return WrapWriteError(err, c.config.Dataset)
	}
	return nil
}

// Close releases client resources.
func (c *LodeClient) Close() error {
	// Dataset doesn't require explicit close in current Lode API
	return nil
}

// Verify LodeClient implements Client.
var _ Client = (*LodeClient)(nil)
