// Package tracer wires OpenTelemetry tracing into protobench.
//
// Spans are opened around schema compilation, registry lookups and outbound
// dispatches; the dispatch engine injects the W3C trace context into requests
// sent to target APIs so a bench run can be followed into the system under
// test.
//
//	t := tracer.NewClient(tracer.Config{
//	    ServiceName:  "protobench",
//	    AppEnv:       "local",
//	    EnableExport: true,
//	    EndpointURL:  "http://localhost:4318",
//	}, log)
//
//	ctx, span := t.StartSpan(ctx, "dispatch")
//	defer span.End()
//	t.InjectHTTPHeaders(ctx, req.Header)
package tracer
