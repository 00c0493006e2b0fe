package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/laiyolobaru/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// Request surfaces, used as the desa.surface attribute
const (
	SurfacePublic    = "public"
	SurfaceDashboard = "dashboard"
	SurfaceSystem    = "system"
)

type httpInstruments struct {
	requests metric.Int64Counter
	duration metric.Float64Histogram
	size     metric.Int64Histogram
	inFlight metric.Int64UpDownCounter
}

func newHTTPInstruments(meter metric.Meter) (*httpInstruments, error) {
	var (
		in  httpInstruments
		err error
	)
	if in.requests, err = meter.Int64Counter("http_server_request_total",
		metric.WithDescription("HTTP requests by route, status and surface"),
		metric.WithUnit("{request}")); err != nil {
		return nil, err
	}
	if in.duration, err = meter.Float64Histogram("http_server_request_duration_seconds",
		metric.WithDescription("HTTP request latency"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(telemetry.HTTPDurationBuckets...)); err != nil {
		return nil, err
	}
	// PDF exports and infographic payloads fill the upper buckets
	if in.size, err = meter.Int64Histogram("http_server_response_size_bytes",
		metric.WithDescription("HTTP response body size"),
		metric.WithUnit("By"),
		metric.WithExplicitBucketBoundaries(100, 1e3, 1e4, 1e5, 5e5, 1e6, 5e6)); err != nil {
		return nil, err
	}
	if in.inFlight, err = meter.Int64UpDownCounter("http_server_active_requests",
		metric.WithDescription("HTTP requests in flight"),
		metric.WithUnit("{request}")); err != nil {
		return nil, err
	}
	return &in, nil
}

// HTTPMetrics records request count, latency, response size and in-flight
// requests labelled by method, route pattern and surface. Instrument errors
// disable the middleware instead of failing startup.
func HTTPMetrics(meter metric.Meter, logger *zap.Logger) gin.HandlerFunc {
	in, err := newHTTPInstruments(meter)
	if err != nil {
		if logger != nil {
			logger.Warn("HTTP metrics disabled", zap.Error(err))
		}
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		start := time.Now()
		route := routePattern(c)
		base := []attribute.KeyValue{
			telemetry.AttrHTTPMethod.String(c.Request.Method),
			telemetry.AttrHTTPRoute.String(route),
			telemetry.AttrSurface.String(surface(route)),
		}
		attrs := metric.WithAttributes(base...)

		in.inFlight.Add(ctx, 1, attrs)
		defer in.inFlight.Add(ctx, -1, attrs)

		c.Next()

		in.requests.Add(ctx, 1, metric.WithAttributes(append(base, telemetry.AttrHTTPStatusCode.Int(c.Writer.Status()))...))
		in.duration.Record(ctx, time.Since(start).Seconds(), attrs)
		if n := c.Writer.Size(); n > 0 {
			in.size.Record(ctx, int64(n), attrs)
		}
	}
}

// routePattern returns the matched route instead of the raw path to keep cardinality low
func routePattern(c *gin.Context) string {
	if route := c.FullPath(); route != "" {
		return route
	}
	return "unknown"
}

// surface tells public site traffic from dashboard traffic
func surface(route string) string {
	switch {
	case strings.Contains(route, "/public/"), strings.HasSuffix(route, "/public"):
		return SurfacePublic
	case route == "unknown", strings.HasSuffix(route, "/health"), strings.HasPrefix(route, "/swagger"),
		strings.HasSuffix(route, "/system/info"):
		return SurfaceSystem
	default:
		return SurfaceDashboard
	}
}
