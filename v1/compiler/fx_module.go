package compiler

import (
	"go.uber.org/fx"

	"github.com/Aleph-Alpha/protobench/v1/artifact"
	"github.com/Aleph-Alpha/protobench/v1/observability"
)

// FXModule provides a *Compiler running protoc from Config.ProtocPath.
// A Toolchain provided elsewhere in the graph takes precedence.
var FXModule = fx.Module("compiler",
	fx.Provide(NewWithDI),
)

// Params groups the compiler's dependencies.
type Params struct {
	fx.In

	Config    Config
	Store     artifact.Store
	Toolchain Toolchain              `optional:"true"`
	Logger    Logger                 `optional:"true"`
	Tracer    Tracer                 `optional:"true"`
	Observer  observability.Observer `optional:"true"`
}

// NewWithDI builds a Compiler from injected dependencies.
func NewWithDI(p Params) *Compiler {
	toolchain := p.Toolchain
	if toolchain == nil {
		toolchain = NewProtoc(p.Config.withDefaults().ProtocPath)
	}
	return New(p.Config, toolchain, p.Store).
		WithLogger(p.Logger).
		WithTracer(p.Tracer).
		WithObserver(p.Observer)
}
