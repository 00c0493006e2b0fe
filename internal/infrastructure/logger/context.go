package logger

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type scopeKey struct{}

// scope is the logging state of one request. Every With* call stores a copy.
type scope struct {
	logger    *zap.Logger
	requestID string
	adminID   string
}

func scopeOf(ctx context.Context) scope {
	s, _ := ctx.Value(scopeKey{}).(scope)
	return s
}

func withScope(ctx context.Context, edit func(*scope)) context.Context {
	s := scopeOf(ctx)
	edit(&s)
	return context.WithValue(ctx, scopeKey{}, s)
}

// WithContext stores l as the request logger
func WithContext(ctx context.Context, l *zap.Logger) context.Context {
	return withScope(ctx, func(s *scope) { s.logger = l })
}

// WithRequestID stores the X-Request-ID value
func WithRequestID(ctx context.Context, id string) context.Context {
	return withScope(ctx, func(s *scope) { s.requestID = id })
}

// WithAdminID stores the authenticated admin
func WithAdminID(ctx context.Context, id string) context.Context {
	return withScope(ctx, func(s *scope) { s.adminID = id })
}

// RequestID returns the stored request ID, or ""
func RequestID(ctx context.Context) string {
	return scopeOf(ctx).requestID
}

// AdminID returns the stored admin ID, or ""
func AdminID(ctx context.Context) string {
	return scopeOf(ctx).adminID
}

// FromContext returns the request logger with request_id, admin_id,
// trace_id and span_id fields. It is a no-op logger outside a request.
func FromContext(ctx context.Context) *zap.Logger {
	s := scopeOf(ctx)
	if s.logger == nil {
		return zap.NewNop()
	}

	var fields []zap.Field
	if s.requestID != "" {
		fields = append(fields, zap.String("request_id", s.requestID))
	}
	if s.adminID != "" {
		fields = append(fields, zap.String("admin_id", s.adminID))
	}
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		fields = append(fields,
			zap.Stringer("trace_id", sc.TraceID()),
			zap.Stringer("span_id", sc.SpanID()),
		)
	}
	return s.logger.With(fields...)
}
