package dispatch

import (
	"go.uber.org/fx"

	"github.com/Aleph-Alpha/protobench/v1/observability"
)

// FXModule provides the *Engine.
var FXModule = fx.Module("dispatch",
	fx.Provide(NewWithDI),
)

// Params groups the engine's dependencies.
type Params struct {
	fx.In

	Config     Config
	Propagator Propagator             `optional:"true"`
	Reporter   Reporter               `optional:"true"`
	Logger     Logger                 `optional:"true"`
	Observer   observability.Observer `optional:"true"`
}

// NewWithDI builds an Engine from injected dependencies.
func NewWithDI(p Params) *Engine {
	return New(p.Config).
		WithPropagator(p.Propagator).
		WithReporter(p.Reporter).
		WithLogger(p.Logger).
		WithObserver(p.Observer)
}
