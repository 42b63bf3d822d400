package server

import (
	"context"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/Aleph-Alpha/protobench/v1/probe"
)

// Service is implemented by *probe.Service.
type Service interface {
	Upload(ctx context.Context, filename string, content []byte) (*probe.UploadResult, error)
	Test(ctx context.Context, req probe.TestRequest) *probe.TestResult
	MessageTypes(ctx context.Context, filename string) ([]string, error)
	AllMessageTypes(ctx context.Context) (map[string][]string, error)
	GenerateSample(ctx context.Context, typeName string) (*probe.Sample, error)
}

// Metrics is the subset of metrics.MetricsCollector used per request.
type Metrics interface {
	IncrementRequests(route, status string)
	RecordRequestDuration(start time.Time, route string)
}

// Tracer is the subset of *tracer.Tracer used per request.
type Tracer interface {
	ExtractHTTPHeaders(ctx context.Context, h http.Header) context.Context
	StartSpan(ctx context.Context, name string) (context.Context, trace.Span)
}

// Logger is the subset of logger.Logger the server uses.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
	ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}
