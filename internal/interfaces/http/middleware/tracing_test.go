package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func setupTestTracer(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)

	t.Cleanup(func() {
		_ = tp.Shutdown(t.Context())
		otel.SetTracerProvider(previous)
	})
	return sr
}

func spanAttr(span sdktrace.ReadOnlySpan, key string) (attribute.Value, bool) {
	for _, kv := range span.Attributes() {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestTracing_Disabled(t *testing.T) {
	sr := setupTestTracer(t)

	router := gin.New()
	router.Use(Tracing("desa", false))
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, sr.Ended())
}

func TestTracing_SkipsHealth(t *testing.T) {
	sr := setupTestTracer(t)

	router := gin.New()
	router.Use(Tracing("desa", true))
	router.GET("/api/v1/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	assert.Empty(t, sr.Ended())
}

func TestSpanDecorator(t *testing.T) {
	sr := setupTestTracer(t)

	router := gin.New()
	router.Use(RequestID(), Tracing("desa", true), SpanDecorator())
	router.Use(func(c *gin.Context) {
		c.Set(JWTUserIDKey, "admin-1")
		c.Next()
	})
	router.GET("/api/v1/articles/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	router.GET("/api/v1/public/infografis", func(c *gin.Context) {
		_ = c.Error(errors.New("stats unavailable"))
		c.Status(http.StatusInternalServerError)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/articles/abc", nil)
	req.Header.Set(RequestIDHeader, "req-1")
	router.ServeHTTP(httptest.NewRecorder(), req)
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/public/infografis", nil))

	spans := sr.Ended()
	require.Len(t, spans, 2)

	notFound := spans[0]
	assert.Equal(t, "GET /api/v1/articles/:id", notFound.Name())
	assert.NotEqual(t, codes.Error, notFound.Status().Code, "client errors do not fail the span")
	requestID, ok := spanAttr(notFound, "request_id")
	require.True(t, ok)
	assert.Equal(t, "req-1", requestID.AsString())
	userID, ok := spanAttr(notFound, "user_id")
	require.True(t, ok)
	assert.Equal(t, "admin-1", userID.AsString())
	where, ok := spanAttr(notFound, "desa.surface")
	require.True(t, ok)
	assert.Equal(t, SurfaceDashboard, where.AsString())

	failed := spans[1]
	assert.Equal(t, codes.Error, failed.Status().Code)
	where, _ = spanAttr(failed, "desa.surface")
	assert.Equal(t, SurfacePublic, where.AsString())
	require.NotEmpty(t, failed.Events())
	assert.Equal(t, "exception", failed.Events()[0].Name)
}
