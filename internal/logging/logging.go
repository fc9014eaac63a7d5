// Package logging provides the production core.Logger implementation,
// backed by log/slog with selectable level and output format.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/planforge/homeplan/core"
)

// Logger adapts an slog.Logger to the core.Logger interface
type Logger struct {
	slog *slog.Logger
}

// New creates a logger writing to stdout
func New(level, format string) *Logger {
	return NewWithWriter(os.Stdout, level, format)
}

// NewWithWriter creates a logger writing to w. Format "json" selects the
// JSON handler, anything else the text handler.
func NewWithWriter(w io.Writer, level, format string) *Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return &Logger{slog: slog.New(handler)}
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *Logger) Info(msg string, fields map[string]interface{}) {
	l.slog.Info(msg, attrs(fields)...)
}

func (l *Logger) Error(msg string, fields map[string]interface{}) {
	l.slog.Error(msg, attrs(fields)...)
}

func (l *Logger) Warn(msg string, fields map[string]interface{}) {
	l.slog.Warn(msg, attrs(fields)...)
}

func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	l.slog.Debug(msg, attrs(fields)...)
}

// attrs converts a field map to slog key/value arguments. Keys are sorted
// by slog's handler, not here.
func attrs(fields map[string]interface{}) []any {
	out := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		out = append(out, k, v)
	}
	return out
}

// compile-time interface check
var _ core.Logger = (*Logger)(nil)
