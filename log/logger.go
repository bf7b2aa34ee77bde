// Package log provides structured logging with decode context.
//
// Two logger variants are available:
//   - Logger: Non-sugared zap.Logger for the decode pipeline (structured fields)
//   - SugaredLogger: Printf-style logging for CLI surfaces
//
// Every entry carries decode_id and source. A nil *Logger discards
// everything, so library callers that do not want logs pass nil.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pithecene-io/lumen/types"
)

// Logger provides structured logging with decode context.
type Logger struct {
	base *zap.Logger // no decode context
	zap  *zap.Logger
}

// SugaredLogger provides printf-style logging for CLI surfaces.
type SugaredLogger struct {
	sugar *zap.SugaredLogger
}

// ParseLevel parses debug, info, warn or error. Empty means info.
func ParseLevel(s string) (zapcore.Level, error) {
	switch strings.ToLower(s) {
	case "", "info":
		return zapcore.InfoLevel, nil
	case "debug":
		return zapcore.DebugLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("invalid log level: %q (must be debug, info, warn, or error)", s)
	}
}

// NewLogger creates a logger with decode context writing to os.Stderr.
func NewLogger(meta *types.DecodeMeta, level zapcore.Level) *Logger {
	return NewLoggerWithWriter(meta, level, os.Stderr)
}

// NewLoggerWithWriter creates a logger writing JSON lines to w.
func NewLoggerWithWriter(meta *types.DecodeMeta, level zapcore.Level, w io.Writer) *Logger {
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig()),
		zapcore.AddSync(w),
		level,
	)

	base := zap.New(core)
	return &Logger{base: base, zap: base.With(contextFields(meta)...)}
}

func contextFields(meta *types.DecodeMeta) []zap.Field {
	fields := []zap.Field{zap.String("decode_id", meta.DecodeID)}
	if meta.Source != "" {
		fields = append(fields, zap.String("source", meta.Source))
	}
	return fields
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:     "timestamp",
		LevelKey:    "level",
		MessageKey:  "message",
		EncodeTime:  zapcore.RFC3339NanoTimeEncoder,
		EncodeLevel: zapcore.LowercaseLevelEncoder,
	}
}

// With returns a logger whose decode context is replaced by meta, keeping
// the output and level of l. Used when one CLI invocation decodes several files.
func (l *Logger) With(meta *types.DecodeMeta) *Logger {
	if l == nil {
		return nil
	}
	return &Logger{base: l.base, zap: l.base.With(contextFields(meta)...)}
}

// Debug logs a debug message.
func (l *Logger) Debug(message string, fields map[string]any) {
	if l == nil {
		return
	}
	l.zap.Debug(message, zap.Any("fields", fields))
}

// Info logs an info message.
func (l *Logger) Info(message string, fields map[string]any) {
	if l == nil {
		return
	}
	l.zap.Info(message, zap.Any("fields", fields))
}

// Warn logs a warning message.
func (l *Logger) Warn(message string, fields map[string]any) {
	if l == nil {
		return
	}
	l.zap.Warn(message, zap.Any("fields", fields))
}

// Error logs an error message.
func (l *Logger) Error(message string, fields map[string]any) {
	if l == nil {
		return
	}
	l.zap.Error(message, zap.Any("fields", fields))
}

// Sync flushes buffered entries.
func (l *Logger) Sync() error {
	if l == nil {
		return nil
	}
	return l.zap.Sync()
}

// Sugar returns a SugaredLogger for printf-style logging.
func (l *Logger) Sugar() *SugaredLogger {
	if l == nil {
		return &SugaredLogger{sugar: zap.NewNop().Sugar()}
	}
	return &SugaredLogger{sugar: l.zap.Sugar()}
}

// Debugf logs a debug message with printf-style formatting.
func (s *SugaredLogger) Debugf(template string, args ...any) {
	s.sugar.Debugf(template, args...)
}

// Infof logs an info message with printf-style formatting.
func (s *SugaredLogger) Infof(template string, args ...any) {
	s.sugar.Infof(template, args...)
}

// Warnf logs a warning message with printf-style formatting.
func (s *SugaredLogger) Warnf(template string, args ...any) {
	s.sugar.Warnf(template, args...)
}

// Errorf logs an error message with printf-style formatting.
func (s *SugaredLogger) Errorf(template string, args ...any) {
	s.sugar.Errorf(template, args...)
}
