// Package adapter publishes decode completion notifications to downstream
// systems (HTTP webhooks, Redis pub/sub).
//
// Notifications are sent only for stored decodes, after the decode record
// is written, so a consumer can always read what the event points at.
package adapter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pithecene-io/lumen/decoder"
	"github.com/pithecene-io/lumen/types"
)

// EventTypeDecodeCompleted is the only event type published.
const EventTypeDecodeCompleted = "decode_completed"

// DecodeCompletedEvent is the payload published when a decode is stored.
type DecodeCompletedEvent struct {
	LayoutVersion string `json:"layout_version"`
	EventType     string `json:"event_type"` // always "decode_completed"
	DecodeID      string `json:"decode_id"`
	Dataset       string `json:"dataset"`
	Source        string `json:"source"`
	Day           string `json:"day"`
	Path          string `json:"path"`
	Width         uint32 `json:"width"`
	Height        uint32 `json:"height"`
	PixelBytes    int    `json:"pixel_bytes"`
	DurationMs    int64  `json:"duration_ms"`
	Timestamp     string `json:"timestamp"` // RFC 3339
}

// NewDecodeCompletedEvent builds the event for a stored decode.
// source is the storage partition value; the input path comes from res.Meta.
func NewDecodeCompletedEvent(res *decoder.Result, dataset, source string, at time.Time) *DecodeCompletedEvent {
	at = at.UTC()
	ev := &DecodeCompletedEvent{
		LayoutVersion: types.RecordLayoutVersion,
		EventType:     EventTypeDecodeCompleted,
		Dataset:       dataset,
		Source:        source,
		Day:           at.Format("2006-01-02"),
		DurationMs:    res.Stats.Duration.Milliseconds(),
		Timestamp:     at.Format(time.RFC3339),
	}
	if res.Meta != nil {
		ev.DecodeID = res.Meta.DecodeID
		ev.Path = res.Meta.Source
	}
	if res.Header != nil {
		ev.Width = res.Header.Width
		ev.Height = res.Header.Height
	}
	if res.Pixels != nil {
		ev.PixelBytes = len(res.Pixels.Pix)
	}
	return ev
}

// Adapter publishes decode completion events to a downstream system.
type Adapter interface {
	// Publish sends a decode completion event to the downstream system.
	// Must respect context cancellation and deadlines.
	Publish(ctx context.Context, event *DecodeCompletedEvent) error

	// Close releases adapter resources.
	Close() error
}

// Backoff returns the delay before retry attempt i (i >= 1):
// 500ms, 1s, 2s, ...
func Backoff(i int) time.Duration {
	return time.Duration(1<<uint(i-1)) * 500 * time.Millisecond
}

type permanentError struct{ err error }

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent marks err as non-retriable for Retry.
func Permanent(err error) error {
	return &permanentError{err: err}
}

// Retry calls attempt once plus up to retries more times, waiting Backoff(i)
// before retry i. A Permanent error ends the loop at once and is returned
// unwrapped. Context cancellation is checked before every call.
func Retry(ctx context.Context, retries int, attempt func(ctx context.Context) error) error {
	var lastErr error
	attempts := 1 + retries

	for i := range attempts {
		if i > 0 {
			select {
			case <-ctx.Done():
				return fmt.Errorf("canceled during backoff: %w", ctx.Err())
			case <-time.After(Backoff(i)):
			}
		}
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("canceled: %w", err)
		}

		lastErr = attempt(ctx)
		if lastErr == nil {
			return nil
		}
		var perm *permanentError
		if errors.As(lastErr, &perm) {
			return fmt.Errorf("non-retriable: %w", perm.err)
		}
	}

	return fmt.Errorf("failed after %d attempts: %w", attempts, lastErr)
}

// Fanout publishes to every adapter. A failing adapter does not stop the
// others; their errors are joined.
type Fanout []Adapter

// Publish implements Adapter.
func (f Fanout) Publish(ctx context.Context, event *DecodeCompletedEvent) error {
	var errs []error
	for _, a := range f {
		if err := a.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close implements Adapter.
func (f Fanout) Close() error {
	var errs []error
	for _, a := range f {
		if err := a.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

var _ Adapter = Fanout(nil)
