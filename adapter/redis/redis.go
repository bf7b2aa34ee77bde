// Package redis implements a Redis pub/sub notification adapter.
//
// Publishes decode completion events as JSON to a configurable Redis channel.
// Retries with exponential backoff on connection errors.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/pithecene-io/lumen/adapter"
)

// DefaultChannel is the default pub/sub channel name.
const DefaultChannel = "lumen:decode_completed"

// DefaultTimeout is the default per-publish timeout.
const DefaultTimeout = 5 * time.Second

// DefaultRetries is the default number of retry attempts.
const DefaultRetries = 3

// Config configures the Redis pub/sub adapter.
type Config struct {
	// URL is the Redis connection URL (required).
	// Format: redis://[:password@]host:port[/db]
	URL string
	// Channel is the pub/sub channel name (default: lumen:decode_completed).
	Channel string
	// Timeout is the per-publish timeout (default 5s).
	Timeout time.Duration
	// Retries is the number of retry attempts on failure (default 3).
	Retries int
	// List, when set, also LPUSHes every event onto this list so consumers
	// that were not subscribed at publish time can still read it.
	List string
	// ListMax trims List to this many newest events (0 = unbounded).
	ListMax int64
}

// Adapter publishes decode completion events via Redis PUBLISH.
type Adapter struct {
	config Config
	client *goredis.Client
}

// New creates a Redis pub/sub adapter from the given config.
// Returns an error if the URL is empty or invalid.
func New(cfg Config) (*Adapter, error) {
	if cfg.URL == "" {
		return nil, errors.New("redis adapter requires a URL")
	}

	opts, err := goredis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("redis adapter: invalid URL: %w", err)
	}

	if cfg.Channel == "" {
		cfg.Channel = DefaultChannel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Retries < 0 {
		return nil, fmt.Errorf("retries must be >= 0, got %d", cfg.Retries)
	}
	if cfg.ListMax < 0 {
		return nil, fmt.Errorf("list max must be >= 0, got %d", cfg.ListMax)
	}

	return &Adapter{
		config: cfg,
		client: goredis.NewClient(opts),
	}, nil
}

// Publish sends the event as a JSON PUBLISH to the configured channel.
// Retries with exponential backoff on failures.
func (a *Adapter) Publish(ctx context.Context, event *adapter.DecodeCompletedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("redis: marshal event: %w", err)
	}

	err = adapter.Retry(ctx, a.config.Retries, func(ctx context.Context) error {
		publishCtx, cancel := context.WithTimeout(ctx, a.config.Timeout)
		defer cancel()
		return a.publishOnce(publishCtx, body)
	})
	if err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	return nil
}

// publishOnce sends body to the channel and, when configured, the list.
// The list writes run in one MULTI/EXEC transaction.
func (a *Adapter) publishOnce(ctx context.Context, body []byte) error {
	if a.config.List == "" {
		return a.client.Publish(ctx, a.config.Channel, body).Err()
	}
	_, err := a.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Publish(ctx, a.config.Channel, body)
		pipe.LPush(ctx, a.config.List, body)
		if a.config.ListMax > 0 {
			pipe.LTrim(ctx, a.config.List, 0, a.config.ListMax-1)
		}
		return nil
	})
	return err
}

// Close releases adapter resources.
func (a *Adapter) Close() error {
	return a.client.Close()
}

// Verify Adapter implements the adapter interface.
var _ adapter.Adapter = (*Adapter)(nil)
