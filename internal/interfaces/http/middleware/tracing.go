// Package middleware provides HTTP middleware for the village portal API.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/laiyolobaru/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

func passThrough(c *gin.Context) { c.Next() }

// Tracing starts a server span named "METHOD route" for every request except
// health probes
func Tracing(serviceName string, enabled bool) gin.HandlerFunc {
	if !enabled {
		return passThrough
	}
	return otelgin.Middleware(serviceName, otelgin.WithFilter(func(r *http.Request) bool {
		return !strings.HasSuffix(r.URL.Path, "/health")
	}))
}

// SpanDecorator annotates the request span once the handlers have run, so the
// admin set by route-level JWT middleware is known. Server errors mark the
// span as failed and gin errors are recorded as span events.
func SpanDecorator() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		span := trace.SpanFromContext(c.Request.Context())
		if !span.IsRecording() {
			return
		}

		route := routePattern(c)
		attrs := []attribute.KeyValue{telemetry.AttrSurface.String(surface(route))}
		if id := c.GetString(RequestIDKey); id != "" {
			attrs = append(attrs, attribute.String("request_id", id))
		}
		if adminID := GetJWTUserID(c); adminID != "" {
			attrs = append(attrs, attribute.String("user_id", adminID))
		}
		span.SetAttributes(attrs...)

		for _, e := range c.Errors {
			span.RecordError(e.Err)
		}
		if status := c.Writer.Status(); status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		}
	}
}
