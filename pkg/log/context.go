package log

import (
	"context"

	"github.com/rs/zerolog"
)

type ctxKey struct{}

// WithLogger returns a child context carrying the given logger. The Gin
// middleware uses this to attach a request-scoped logger before handlers run.
func WithLogger(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// Ctx returns the request-scoped logger carried by ctx, falling back to the
// global logger when none was attached. Safe to call anywhere in the request
// path; fields set by the middleware (request id) ride along automatically.
func Ctx(ctx context.Context) zerolog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(zerolog.Logger); ok {
		return l
	}
	return L()
}
