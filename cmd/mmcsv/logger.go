package main

import (
	"io"
	"log/slog"

	"github.com/cockroachdb/errors"
)

// Logger wraps slog.Logger with mmcsv-specific context.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a Logger with the given handler.
func NewLogger(handler slog.Handler) *Logger {
	return &Logger{Logger: slog.New(handler)}
}

// newLoggerFromFlags builds a text or JSON logger writing to w at the named level.
func newLoggerFromFlags(w io.Writer, format, level string) (*Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, errors.Wrapf(err, "log level %q", level)
	}
	opts := &slog.HandlerOptions{Level: lvl}

	switch format {
	case "text":
		return NewLogger(slog.NewTextHandler(w, opts)), nil
	case "json":
		return NewLogger(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, errors.Newf("unknown log format %q (want text or json)", format)
	}
}

// WithFile adds the input path to every record.
func (l *Logger) WithFile(path string) *Logger {
	return &Logger{Logger: l.Logger.With("file", path)}
}
