// Basketrec - Purchase-History Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketrec

package logging

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type contextKey string

const (
	// requestIDKey carries the ops HTTP request ID.
	requestIDKey contextKey = "request_id"

	// triggerKey carries what started a rebuild (startup, schedule, http, signal).
	triggerKey contextKey = "trigger"
)

// GenerateRequestID creates a new unique request ID.
func GenerateRequestID() string {
	return uuid.New().String()
}

// ContextWithRequestID returns a new context with the given request ID.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext retrieves the request ID from context.
// Returns empty string if not present.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// ContextWithTrigger records what caused a rebuild.
//
//	ctx = logging.ContextWithTrigger(ctx, "schedule")
func ContextWithTrigger(ctx context.Context, trigger string) context.Context {
	return context.WithValue(ctx, triggerKey, trigger)
}

// TriggerFromContext returns the rebuild trigger, or empty string.
func TriggerFromContext(ctx context.Context) string {
	if t, ok := ctx.Value(triggerKey).(string); ok {
		return t
	}
	return ""
}

// Ctx returns l with the request_id and trigger carried by ctx added.
//
//	logging.Ctx(ctx, logger).Info().Msg("Rebuild requested")
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func Ctx(ctx context.Context, l zerolog.Logger) *zerolog.Logger {
	logCtx := l.With()
	if id := RequestIDFromContext(ctx); id != "" {
		logCtx = logCtx.Str("request_id", id)
	}
	if t := TriggerFromContext(ctx); t != "" {
		logCtx = logCtx.Str("trigger", t)
	}
	out := logCtx.Logger()
	return &out
}
