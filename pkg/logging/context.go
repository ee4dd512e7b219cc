package logging

import (
	"context"

	"github.com/rs/zerolog"
)

type contextKey struct{}

// WithLogger attaches a logger to the context.
func WithLogger(ctx context.Context, logger *zerolog.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext returns the logger attached to the context, or nil.
func FromContext(ctx context.Context) *zerolog.Logger {
	if logger, ok := ctx.Value(contextKey{}).(*zerolog.Logger); ok {
		return logger
	}
	return nil
}

// Ctx returns the context logger if present, otherwise the default logger.
func Ctx(ctx context.Context) *zerolog.Logger {
	if logger := FromContext(ctx); logger != nil {
		return logger
	}
	return Default()
}

// WithRunID attaches a reconciliation run identifier to the context logger.
func WithRunID(ctx context.Context, runID string) context.Context {
	logger := Ctx(ctx).With().Str("run_id", runID).Logger()
	return WithLogger(ctx, &logger)
}

// WithSource attaches the input source name being processed.
func WithSource(ctx context.Context, source string) context.Context {
	logger := Ctx(ctx).With().Str("source", source).Logger()
	return WithLogger(ctx, &logger)
}

// WithOperation attaches the pipeline operation name (merge, categories, variants).
func WithOperation(ctx context.Context, operation string) context.Context {
	logger := Ctx(ctx).With().Str("operation", operation).Logger()
	return WithLogger(ctx, &logger)
}

// WithCode attaches a product catalog code.
func WithCode(ctx context.Context, code string) context.Context {
	logger := Ctx(ctx).With().Str("code", code).Logger()
	return WithLogger(ctx, &logger)
}
