// Copyright (c) 2026 Facetrace. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxutil stores and reads the per-request values shared by the
// middleware chain and the handlers: correlation ID, logger and the id of
// the session holder.
package ctxutil

import (
	"context"
	"log/slog"
)

// key is unexported so no other package can collide with these entries.
type key int

const (
	keyRequestID key = iota
	keyLogger
	keyUserID
)

// lookup returns the value stored under k, or the zero value of T.
func lookup[T any](ctx context.Context, k key) T {
	value, _ := ctx.Value(k).(T)
	return value
}

// # Request Tracing

// WithRequestID returns a new context with the provided request ID attached.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, keyRequestID, id)
}

// GetRequestID returns the request ID, or "" outside a request.
func GetRequestID(ctx context.Context) string {
	return lookup[string](ctx, keyRequestID)
}

// # Structured Logging

// WithLogger returns a new context with the provided logger attached.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, keyLogger, logger)
}

// GetLogger returns the request logger, falling back to [slog.Default].
func GetLogger(ctx context.Context) *slog.Logger {
	if logger := lookup[*slog.Logger](ctx, keyLogger); logger != nil {
		return logger
	}
	return slog.Default()
}

// # Identity

// WithUserID returns a new context carrying the id of the cookie holder.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, keyUserID, userID)
}

// GetUserID retrieves the cookie holder's id. Anonymous requests yield "".
func GetUserID(ctx context.Context) string {
	return lookup[string](ctx, keyUserID)
}
