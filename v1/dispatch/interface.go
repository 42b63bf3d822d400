package dispatch

import (
	"context"
	"net/http"
)

// Logger is the subset of logger.Logger the engine uses.
type Logger interface {
	InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}

// Propagator writes the trace context of ctx into outgoing headers.
// *tracer.Tracer implements it.
type Propagator interface {
	InjectHTTPHeaders(ctx context.Context, h http.Header)
}

// Reporter receives a Record for every dispatch. Implementations must not
// block the caller for long and must not fail it; report.KafkaPublisher is
// the production one.
type Reporter interface {
	Report(ctx context.Context, rec Record)
}
