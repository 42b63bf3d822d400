package registry

import (
	"go.uber.org/fx"

	"github.com/Aleph-Alpha/protobench/v1/artifact"
	"github.com/Aleph-Alpha/protobench/v1/observability"
)

// FXModule provides the *Registry.
var FXModule = fx.Module("registry",
	fx.Provide(NewWithDI),
)

// Params groups the registry's dependencies.
type Params struct {
	fx.In

	Config   Config
	Store    artifact.Store
	Logger   Logger                 `optional:"true"`
	Tracer   Tracer                 `optional:"true"`
	Observer observability.Observer `optional:"true"`
}

// NewWithDI builds a Registry from injected dependencies.
func NewWithDI(p Params) *Registry {
	return New(p.Config, p.Store).
		WithLogger(p.Logger).
		WithTracer(p.Tracer).
		WithObserver(p.Observer)
}
