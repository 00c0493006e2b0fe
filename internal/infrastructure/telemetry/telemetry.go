// Package telemetry wires OpenTelemetry traces, metrics and logs to an OTLP
// collector, plus optional Pyroscope continuous profiling.
package telemetry

import (
	"context"
	"fmt"
	"time"

	"github.com/laiyolobaru/backend/internal/infrastructure/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentationName names the tracer and meter used by application code
const InstrumentationName = "github.com/laiyolobaru/backend"

const serviceVersion = "1.0.0"

const shutdownTimeout = 10 * time.Second

// Config is the subset of application settings the providers need
type Config struct {
	ServiceName       string
	Environment       string
	CollectorEndpoint string
	Insecure          bool

	TracesEnabled bool
	SamplingRatio float64
	SpanProfiles  bool

	MetricsEnabled  bool
	MetricsInterval time.Duration

	LogsEnabled bool
}

// FromAppConfig extracts the telemetry settings
func FromAppConfig(cfg *config.Config) Config {
	return Config{
		ServiceName:       cfg.Telemetry.ServiceName,
		Environment:       cfg.App.Env,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		Insecure:          cfg.Telemetry.Insecure,
		TracesEnabled:     cfg.Telemetry.Enabled,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		SpanProfiles:      cfg.Telemetry.ProfilingEnabled,
		MetricsEnabled:    cfg.Telemetry.MetricsEnabled,
		MetricsInterval:   cfg.Telemetry.MetricsInterval,
		LogsEnabled:       cfg.Telemetry.LogsEnabled,
	}
}

// otlpOptions builds the gRPC exporter options shared by traces, metrics and logs
func otlpOptions[O any](cfg Config, withEndpoint func(string) O, withInsecure func() O) []O {
	opts := []O{withEndpoint(cfg.CollectorEndpoint)}
	if cfg.Insecure {
		opts = append(opts, withInsecure())
	}
	return opts
}

// shutdownProvider flushes a provider, giving up after shutdownTimeout
func shutdownProvider(ctx context.Context, signal string, shutdown func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown %s provider: %w", signal, err)
	}
	return nil
}

func newResource(cfg Config) (*resource.Resource, error) {
	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(serviceVersion),
			semconv.DeploymentEnvironmentName(cfg.Environment),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}
	return res, nil
}

// StartSpan starts an internal span on the global tracer.
// The caller must end the returned span.
//
//	ctx, span := telemetry.StartSpan(ctx, "article.publish", AttrEntityID.String(id.String()))
//	defer span.End()
func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer(InstrumentationName).Start(ctx, name, trace.WithAttributes(attrs...))
}

// RecordError marks span as failed. It is a no-op for a nil error.
func RecordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// Attribute keys shared by spans and metrics
var (
	AttrHTTPMethod     = attribute.Key("http.method")
	AttrHTTPRoute      = attribute.Key("http.route")
	AttrHTTPStatusCode = attribute.Key("http.status_code")
	AttrSurface        = attribute.Key("desa.surface")

	AttrEntity   = attribute.Key("desa.entity")
	AttrEntityID = attribute.Key("desa.entity_id")
	AttrFolder   = attribute.Key("desa.upload.folder")
	AttrOutcome  = attribute.Key("desa.outcome")
	AttrDusun    = attribute.Key("desa.dusun")
	AttrCategory = attribute.Key("desa.category")
	AttrStatus   = attribute.Key("desa.status")
)

// HTTPDurationBuckets are bucket boundaries for request duration in seconds
var HTTPDurationBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}
