// Mirrarr - Sonarr/Radarr Webhook Relay and Library Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mirrarr

package logging

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type contextKey string

const (
	// requestIDKey is the context key for HTTP request IDs.
	requestIDKey contextKey = "request_id"

	// webhookIDKey is the context key for webhook delivery IDs. Each inbound
	// webhook gets its own ID so a multi-target sync run can be followed
	// across log lines.
	webhookIDKey contextKey = "webhook_id"
)

// GenerateRequestID creates a new unique request ID (full UUID).
func GenerateRequestID() string {
	return uuid.New().String()
}

// GenerateWebhookID creates a short webhook delivery ID.
// The first 8 characters of a UUID are enough to correlate log lines.
func GenerateWebhookID() string {
	return uuid.New().String()[:8]
}

// ContextWithRequestID returns a new context carrying the given request ID.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext retrieves the request ID from context, or "".
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// ContextWithWebhookID returns a new context carrying the given webhook ID.
func ContextWithWebhookID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, webhookIDKey, id)
}

// WebhookIDFromContext retrieves the webhook ID from context, or "".
func WebhookIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(webhookIDKey).(string); ok {
		return id
	}
	return ""
}

// Ctx returns a logger with request_id and webhook_id from the context
// automatically attached. This is the recommended way to log inside
// handlers and sync runs.
//
//	logging.Ctx(ctx).Info().Msg("Processing webhook")
func Ctx(ctx context.Context) *zerolog.Logger {
	logger := Logger()
	if id := RequestIDFromContext(ctx); id != "" {
		logger = logger.With().Str("request_id", id).Logger()
	}
	if id := WebhookIDFromContext(ctx); id != "" {
		logger = logger.With().Str("webhook_id", id).Logger()
	}
	return &logger
}
