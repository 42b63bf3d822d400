package registry

import (
	"github.com/Aleph-Alpha/protobench/v1/artifact"
	"github.com/Aleph-Alpha/protobench/v1/observability"
	"github.com/Aleph-Alpha/protobench/v1/tracer"
)

// Registry answers questions about compiled schemas. It reads artifacts
// from the store on every call and keeps no state of its own, so it always
// reflects the latest compilation.
type Registry struct {
	store       artifact.Store
	concurrency int
	logger      Logger
	tracer      Tracer
	observer    observability.Observer
}

// New returns a Registry reading from store.
func New(cfg Config, store artifact.Store) *Registry {
	concurrency := cfg.ScanConcurrency
	if concurrency <= 0 {
		concurrency = DefaultScanConcurrency
	}
	return &Registry{
		store:       store,
		concurrency: concurrency,
		tracer:      tracer.NewNop(),
	}
}

// WithLogger attaches a logger used to report skipped artifacts.
func (r *Registry) WithLogger(logger Logger) *Registry {
	r.logger = logger
	return r
}

// WithTracer replaces the no-op tracer.
func (r *Registry) WithTracer(t Tracer) *Registry {
	if t != nil {
		r.tracer = t
	}
	return r
}

// WithObserver attaches an observer notified of every resolution.
func (r *Registry) WithObserver(observer observability.Observer) *Registry {
	r.observer = observer
	return r
}
