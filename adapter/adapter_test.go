package adapter

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pithecene-io/lumen/decoder"
	"github.com/pithecene-io/lumen/types"
)

func TestNewDecodeCompletedEvent(t *testing.T) {
	res := &decoder.Result{
		Meta:   &types.DecodeMeta{DecodeID: "d-1", Source: "in/a.png"},
		Header: &types.ImageHeader{Width: 3, Height: 2},
		Pixels: &types.PixelBuffer{Width: 3, Height: 2, Stride: 12, Pix: make([]byte, 24)},
		Stats:  decoder.Stats{Duration: 42 * time.Millisecond},
	}
	at := time.Date(2026, 3, 14, 23, 30, 0, 0, time.FixedZone("X", -2*3600))

	ev := NewDecodeCompletedEvent(res, "lumen", "host-1", at)

	if ev.EventType != EventTypeDecodeCompleted || ev.LayoutVersion != types.RecordLayoutVersion {
		t.Errorf("envelope = %s/%s", ev.EventType, ev.LayoutVersion)
	}
	if ev.DecodeID != "d-1" || ev.Path != "in/a.png" || ev.Source != "host-1" || ev.Dataset != "lumen" {
		t.Errorf("identity = %+v", ev)
	}
	// 23:30 at UTC-2 is the next day in UTC.
	if ev.Day != "2026-03-15" || ev.Timestamp != "2026-03-15T01:30:00Z" {
		t.Errorf("day/timestamp = %s/%s", ev.Day, ev.Timestamp)
	}
	if ev.Width != 3 || ev.Height != 2 || ev.PixelBytes != 24 || ev.DurationMs != 42 {
		t.Errorf("image fields = %+v", ev)
	}
}

func TestBackoff(t *testing.T) {
	want := []time.Duration{500 * time.Millisecond, time.Second, 2 * time.Second}
	for i, w := range want {
		if got := Backoff(i + 1); got != w {
			t.Errorf("Backoff(%d) = %v, want %v", i+1, got, w)
		}
	}
}

type recordingAdapter struct {
	published int
	closed    bool
	err       error
}

func (r *recordingAdapter) Publish(context.Context, *DecodeCompletedEvent) error {
	r.published++
	return r.err
}

func (r *recordingAdapter) Close() error {
	r.closed = true
	return r.err
}

func TestFanout(t *testing.T) {
	boom := errors.New("boom")
	failing := &recordingAdapter{err: boom}
	ok := &recordingAdapter{}
	f := Fanout{failing, ok}

	err := f.Publish(t.Context(), &DecodeCompletedEvent{})
	if !errors.Is(err, boom) {
		t.Errorf("publish error = %v, want boom", err)
	}
	if failing.published != 1 || ok.published != 1 {
		t.Errorf("published = %d/%d, want 1/1", failing.published, ok.published)
	}

	if err := f.Close(); !errors.Is(err, boom) {
		t.Errorf("close error = %v, want boom", err)
	}
	if !ok.closed {
		t.Error("healthy adapter not closed")
	}

	if err := (Fanout{}).Publish(t.Context(), &DecodeCompletedEvent{}); err != nil {
		t.Errorf("empty fanout error = %v", err)
	}
}

func TestRetry_SucceedsFirstTime(t *testing.T) {
	calls := 0
	err := Retry(t.Context(), 3, func(context.Context) error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("Retry: %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRetry_RetriesThenFails(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	err := Retry(t.Context(), 1, func(context.Context) error {
		calls++
		return boom
	})
	if !errors.Is(err, boom) {
		t.Errorf("error = %v, want wrapping %v", err, boom)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2 (1 initial + 1 retry)", calls)
	}
}

func TestRetry_PermanentStops(t *testing.T) {
	boom := errors.New("rejected")
	calls := 0
	err := Retry(t.Context(), 3, func(context.Context) error {
		calls++
		return Permanent(boom)
	})
	if !errors.Is(err, boom) {
		t.Errorf("error = %v, want wrapping %v", err, boom)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRetry_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	calls := 0
	err := Retry(ctx, 3, func(context.Context) error {
		calls++
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	if calls != 0 {
		t.Errorf("calls = %d, want 0", calls)
	}
}
