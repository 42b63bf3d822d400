package compiler

import (
	"github.com/Aleph-Alpha/protobench/v1/artifact"
	"github.com/Aleph-Alpha/protobench/v1/observability"
	"github.com/Aleph-Alpha/protobench/v1/tracer"
)

// Compiler turns schema sources into descriptor-set artifacts.
//
// Compiling the same filename concurrently is allowed; the last write to
// the store wins. Callers that need ordering serialize themselves.
type Compiler struct {
	cfg       Config
	toolchain Toolchain
	store     artifact.Store
	logger    Logger
	tracer    Tracer
	observer  observability.Observer
}

// New returns a Compiler that runs toolchain and publishes into store.
func New(cfg Config, toolchain Toolchain, store artifact.Store) *Compiler {
	return &Compiler{
		cfg:       cfg.withDefaults(),
		toolchain: toolchain,
		store:     store,
		tracer:    tracer.NewNop(),
	}
}

// WithLogger attaches a logger.
func (c *Compiler) WithLogger(logger Logger) *Compiler {
	c.logger = logger
	return c
}

// WithTracer replaces the no-op tracer.
func (c *Compiler) WithTracer(t Tracer) *Compiler {
	if t != nil {
		c.tracer = t
	}
	return c
}

// WithObserver attaches an observer notified of every compilation.
func (c *Compiler) WithObserver(observer observability.Observer) *Compiler {
	c.observer = observer
	return c
}
