package logger

import (
	"context"
	"log/slog"
)

// ctxKey is the private context key type for logger values.
type ctxKey struct{}

// WithLogger returns a copy of ctx carrying the given logger. Handlers and
// middleware use this to propagate request-scoped loggers (with trace IDs
// attached) down to stores and tasks.
func WithLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// FromContext retrieves the logger carried by ctx, if any.
func FromContext(ctx context.Context) (*slog.Logger, bool) {
	log, ok := ctx.Value(ctxKey{}).(*slog.Logger)
	return log, ok
}

// FromContextOrDefault retrieves the logger carried by ctx, falling back
// to the provided default when none is present. The fallback may not be
// nil; callers pass their component logger.
func FromContextOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if log, ok := FromContext(ctx); ok {
		return log
	}
	if fallback == nil {
		return slog.Default()
	}
	return fallback
}
