// Package observability defines the hook through which protobench components
// report the operations they perform.
//
// Components never talk to Prometheus or OpenTelemetry directly; they describe
// each operation with an OperationContext and hand it to an Observer, if one
// is attached. The metrics package ships the Prometheus-backed implementation.
package observability

import "time"

// Observer receives a notification for every completed operation.
// Implementations must be safe for concurrent use and must not block.
type Observer interface {
	ObserveOperation(ctx OperationContext)
}

// OperationContext describes one completed operation.
type OperationContext struct {
	// Component is the reporting package, e.g. "compiler", "registry", "dispatch".
	Component string

	// Operation is the action, e.g. "compile", "resolve", "dispatch".
	Operation string

	// Resource is the main subject: a schema filename or a target URL.
	Resource string

	// SubResource narrows the subject: a message type name or an HTTP method.
	SubResource string

	// Duration is the wall time the operation took.
	Duration time.Duration

	// Error is the failure, nil on success.
	Error error

	// Size is the payload size in bytes, when one applies.
	Size int64

	// Metadata carries component-specific extras (status code, encoding, ...).
	Metadata map[string]interface{}
}

// Status returns "success" or "error" for the operation.
func (o OperationContext) Status() string {
	if o.Error != nil {
		return "error"
	}
	return "success"
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(ctx OperationContext)

// ObserveOperation calls f(ctx).
func (f ObserverFunc) ObserveOperation(ctx OperationContext) {
	f(ctx)
}

// Multi fans a notification out to several observers, skipping nil entries.
func Multi(observers ...Observer) Observer {
	return ObserverFunc(func(ctx OperationContext) {
		for _, o := range observers {
			if o != nil {
				o.ObserveOperation(ctx)
			}
		}
	})
}
