package logging

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

type (
	loggerKey    struct{}
	traceIDKey   struct{}
	requestIDKey struct{}
)

func value[T any](ctx context.Context, key any) (T, bool) {
	v, ok := ctx.Value(key).(T)
	return v, ok
}

// WithLogger stores the request-scoped logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext returns the request-scoped logger, or slog.Default outside a request.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := value[*slog.Logger](ctx, loggerKey{}); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, traceID)
}

func TraceIDFromContext(ctx context.Context) string {
	traceID, _ := value[string](ctx, traceIDKey{})
	return traceID
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

func RequestIDFromContext(ctx context.Context) string {
	requestID, _ := value[string](ctx, requestIDKey{})
	return requestID
}

// GenerateTraceID returns 32 hex characters.
func GenerateTraceID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return strings.ReplaceAll(uuid.NewString(), "-", "")
	}
	return hex.EncodeToString(buf)
}

// NewRequestLogger derives a logger carrying the request and trace IDs found in ctx.
func NewRequestLogger(ctx context.Context, baseLogger *slog.Logger) *slog.Logger {
	var attrs []any
	if id := RequestIDFromContext(ctx); id != "" {
		attrs = append(attrs, slog.String("request_id", id))
	}
	if id := TraceIDFromContext(ctx); id != "" {
		attrs = append(attrs, slog.String("trace_id", id))
	}
	if len(attrs) == 0 {
		return baseLogger
	}
	return baseLogger.With(attrs...)
}
