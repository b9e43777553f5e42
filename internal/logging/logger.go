// Package logging provides structured logging configuration using log/slog.
//
// A run id and the family name being processed travel in the context so
// that every entry emitted by a worker can be correlated with its task.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

type contextKey string

const (
	ctxKeyRunID      contextKey = "run_id"
	ctxKeyFamilyName contextKey = "family_name"
)

// Setup configures the global slog logger based on level and format.
//
// Level values: "debug", "info", "warn", "error" (default: "info")
// Format values: "text", "json" (default: "text")
func Setup(level, format string) {
	slog.SetDefault(New(os.Stdout, level, format))
}

// New builds a logger writing to w. Setup uses it with stdout.
func New(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
	}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

// parseLevel converts a string log level to slog.Level.
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

// WithRunID stores the batch run id in the context.
func WithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKeyRunID, id)
}

// WithFamilyName stores the family name a worker is processing.
func WithFamilyName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, ctxKeyFamilyName, name)
}

// FromContext returns the default logger enriched with run_id and
// family_name when the context carries them.
//
// Usage:
//
//	logger := logging.FromContext(ctx)
//	logger.Info("search started", "files", len(files))
func FromContext(ctx context.Context) *slog.Logger {
	logger := slog.Default()

	if id, ok := ctx.Value(ctxKeyRunID).(string); ok && id != "" {
		logger = logger.With("run_id", id)
	}
	if name, ok := ctx.Value(ctxKeyFamilyName).(string); ok && name != "" {
		logger = logger.With("family_name", name)
	}

	return logger
}

// WithFields returns a context logger with additional structured fields.
func WithFields(ctx context.Context, args ...any) *slog.Logger {
	return FromContext(ctx).With(args...)
}
