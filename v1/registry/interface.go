package registry

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

// Logger is the subset of logger.Logger the registry uses.
type Logger interface {
	WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}

// Tracer is the subset of *tracer.Tracer the registry uses.
type Tracer interface {
	StartSpan(ctx context.Context, name string) (context.Context, trace.Span)
	RecordErrorOnSpan(span trace.Span, err error)
}
