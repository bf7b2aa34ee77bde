package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/pithecene-io/lumen/types"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("invalid JSON log line %q: %v", line, err)
		}
		out = append(out, entry)
	}
	return out
}

func TestLogger_ContextFields(t *testing.T) {
	var buf bytes.Buffer
	meta := &types.DecodeMeta{DecodeID: "0b7e9a52-3c1d-4d8e-9f00-000000000001", Source: "a.png"}
	l := NewLoggerWithWriter(meta, zapcore.DebugLevel, &buf)

	l.Info("chunks read", map[string]any{"total": 4})

	lines := decodeLines(t, &buf)
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	entry := lines[0]
	if entry["decode_id"] != meta.DecodeID {
		t.Errorf("decode_id = %v, want %v", entry["decode_id"], meta.DecodeID)
	}
	if entry["source"] != "a.png" {
		t.Errorf("source = %v, want a.png", entry["source"])
	}
	if entry["level"] != "info" {
		t.Errorf("level = %v, want info", entry["level"])
	}
	if entry["message"] != "chunks read" {
		t.Errorf("message = %v, want %q", entry["message"], "chunks read")
	}
	fields, ok := entry["fields"].(map[string]any)
	if !ok || fields["total"] != float64(4) {
		t.Errorf("fields = %v, want total=4", entry["fields"])
	}
}

func TestLogger_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWithWriter(types.NewDecodeMeta(""), zapcore.WarnLevel, &buf)

	l.Debug("hidden", nil)
	l.Info("hidden", nil)
	l.Warn("shown", nil)
	l.Error("shown", nil)

	lines := decodeLines(t, &buf)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if _, ok := lines[0]["source"]; ok {
		t.Error("source should be omitted when empty")
	}
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	base := NewLoggerWithWriter(types.NewDecodeMeta("first.png"), zapcore.InfoLevel, &buf)
	second := types.NewDecodeMeta("second.png")

	base.With(second).Info("decoded", nil)

	lines := decodeLines(t, &buf)
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	if lines[0]["source"] != "second.png" {
		t.Errorf("source = %v, want second.png", lines[0]["source"])
	}
}

func TestLogger_NilIsNoop(t *testing.T) {
	var l *Logger
	l.Debug("x", nil)
	l.Info("x", nil)
	l.Warn("x", nil)
	l.Error("x", nil)
	l.Sugar().Infof("x %d", 1)
	if l.With(types.NewDecodeMeta("")) != nil {
		t.Error("With on nil logger should return nil")
	}
	if err := l.Sync(); err != nil {
		t.Errorf("Sync on nil logger: %v", err)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zapcore.Level
		wantErr bool
	}{
		{"", zapcore.InfoLevel, false},
		{"debug", zapcore.DebugLevel, false},
		{"INFO", zapcore.InfoLevel, false},
		{"warn", zapcore.WarnLevel, false},
		{"warning", zapcore.WarnLevel, false},
		{"error", zapcore.ErrorLevel, false},
		{"loud", zapcore.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
