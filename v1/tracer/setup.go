package tracer

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

// instrumentationName names the tracer used for every protobench span.
const instrumentationName = "github.com/Aleph-Alpha/protobench"

// Logger is the subset of logger.Logger the tracer needs.
//
//go:generate mockgen -source=setup.go -destination=mock_logger.go -package=tracer
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Fatal(msg string, err error, fields ...map[string]interface{})
}

// Tracer provides a simplified API for distributed tracing with OpenTelemetry.
// It wraps the TracerProvider and offers helpers for spans, errors, attributes
// and trace context propagation across HTTP calls to target APIs.
//
// The Tracer is safe for concurrent use.
type Tracer struct {
	tracer     *trace.TracerProvider
	propagator propagation.TextMapPropagator
	logger     Logger
}

// NewClient creates and initializes a new Tracer.
//
// If export is enabled an OTLP HTTP exporter is installed behind a batcher;
// failure to create it is fatal. The provider and a W3C TraceContext+Baggage
// propagator are registered globally.
//
// Example:
//
//	t := tracer.NewClient(tracer.Config{ServiceName: "protobench", AppEnv: "local"}, log)
//	ctx, span := t.StartSpan(ctx, "dispatch")
//	defer span.End()
func NewClient(cfg Config, logger Logger) *Tracer {
	var options []trace.TracerProviderOption

	if cfg.EnableExport {
		var clientOpts []otlptracehttp.Option
		if cfg.EndpointURL != "" {
			clientOpts = append(clientOpts, otlptracehttp.WithEndpointURL(cfg.EndpointURL))
		}
		exporter, err := otlptrace.New(context.Background(), otlptracehttp.NewClient(clientOpts...))
		if err != nil {
			logger.Fatal("cannot initiate tracer", err, nil)
			return nil
		}
		options = append(options, trace.WithBatcher(exporter))
	}

	options = append(options, trace.WithResource(resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.DeploymentEnvironment(cfg.AppEnv),
		attribute.String("environment", cfg.AppEnv),
	)))

	tp := trace.NewTracerProvider(options...)
	propagator := propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{})

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagator)

	return &Tracer{tracer: tp, propagator: propagator, logger: logger}
}

// NewNop returns a Tracer whose spans are recorded nowhere and which leaves
// the global provider untouched. Components fall back to it when no tracer
// is wired in.
func NewNop() *Tracer {
	return &Tracer{
		tracer:     trace.NewTracerProvider(),
		propagator: propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}),
	}
}
