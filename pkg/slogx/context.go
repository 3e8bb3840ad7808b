package slogx

import (
	"context"
	"log/slog"
)

type (
	loggerKey struct{}
	entryKey  struct{}
)

// entry collects request facts learned after the middleware ran, so the
// closing http_request line can report them.
type entry struct {
	userID string
}

func WithContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext returns the request scoped logger, or slog.Default.
func FromContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}

func WithRequestID(ctx context.Context, reqID string) context.Context {
	return WithContext(ctx, FromContext(ctx).With("req_id", reqID))
}

// WithUserID tags every later log line of the request with the caller,
// including the access line HTTPMiddleware writes on the way out.
func WithUserID(ctx context.Context, userID string) context.Context {
	if e, ok := ctx.Value(entryKey{}).(*entry); ok {
		e.userID = userID
	}
	return WithContext(ctx, FromContext(ctx).With("user_id", userID))
}
