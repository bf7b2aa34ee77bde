package lode

import (
	"context"

	"github.com/pithecene-io/lumen/decoder"
	"github.com/pithecene-io/lumen/metrics"
)

// InstrumentedClient wraps a Client and counts storage writes on a metrics
// collector.
type InstrumentedClient struct {
	inner     Client
	collector *metrics.Collector
}

// NewInstrumentedClient wraps a client with metrics instrumentation.
func NewInstrumentedClient(inner Client, collector *metrics.Collector) *InstrumentedClient {
	return &InstrumentedClient{inner: inner, collector: collector}
}

// WriteDecode delegates to the inner client and records success or failure.
func (c *InstrumentedClient) WriteDecode(ctx context.Context, res *decoder.Result) error {
	err := c.inner.WriteDecode(ctx, res)
	if err != nil {
		c.collector.IncStorageWriteFailure()
	} else {
		c.collector.IncStorageWriteSuccess()
	}
	return err
}

// Close delegates to the inner client.
func (c *InstrumentedClient) Close() error {
	return c.inner.Close()
}

// Verify InstrumentedClient implements Client.
var _ Client = (*InstrumentedClient)(nil)
