package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/laiyolobaru/backend/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap/zaptest"
)

func collectMetrics(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	out := make(map[string]metricdata.Metrics)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func TestHTTPMetrics_NoopMeter(t *testing.T) {
	router := gin.New()
	router.Use(HTTPMetrics(noop.NewMeterProvider().Meter("test"), nil))
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHTTPMetrics_RecordsRoutePattern(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	router := gin.New()
	router.Use(HTTPMetrics(mp.Meter("test"), zaptest.NewLogger(t)))
	router.GET("/api/v1/public/umkm/:id", func(c *gin.Context) { c.String(http.StatusOK, "warung") })

	for _, id := range []string{"a", "b"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/public/umkm/"+id, nil))
		require.Equal(t, http.StatusOK, w.Code)
	}

	metrics := collectMetrics(t, reader)

	total, ok := metrics["http_server_request_total"]
	require.True(t, ok)
	sum := total.Data.(metricdata.Sum[int64])
	require.Len(t, sum.DataPoints, 1)
	assert.Equal(t, int64(2), sum.DataPoints[0].Value)
	route, ok := sum.DataPoints[0].Attributes.Value(telemetry.AttrHTTPRoute)
	require.True(t, ok)
	assert.Equal(t, "/api/v1/public/umkm/:id", route.AsString())
	surfaceAttr, ok := sum.DataPoints[0].Attributes.Value(telemetry.AttrSurface)
	require.True(t, ok)
	assert.Equal(t, SurfacePublic, surfaceAttr.AsString())
	status, ok := sum.DataPoints[0].Attributes.Value(telemetry.AttrHTTPStatusCode)
	require.True(t, ok)
	assert.Equal(t, int64(http.StatusOK), status.AsInt64())

	assert.Contains(t, metrics, "http_server_request_duration_seconds")
	assert.Contains(t, metrics, "http_server_response_size_bytes")
	assert.Contains(t, metrics, "http_server_active_requests")
}

func TestRoutePattern_Unmatched(t *testing.T) {
	router := gin.New()
	var got string
	router.NoRoute(func(c *gin.Context) {
		got = routePattern(c)
		c.Status(http.StatusNotFound)
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, "unknown", got)
}

func TestSurface(t *testing.T) {
	tests := map[string]string{
		"/api/v1/public/articles":       SurfacePublic,
		"/api/v1/public/monografis/pdf": SurfacePublic,
		"/api/v1/articles/:id":          SurfaceDashboard,
		"/api/v1/stunting/predict":      SurfaceDashboard,
		"/api/v1/health":                SurfaceSystem,
		"/health":                       SurfaceSystem,
		"/api/v1/system/info":           SurfaceSystem,
		"/swagger/*any":                 SurfaceSystem,
		"unknown":                       SurfaceSystem,
	}
	for route, want := range tests {
		assert.Equal(t, want, surface(route), route)
	}
}
