package probe

import (
	"context"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/protobench/v1/artifact"
	"github.com/Aleph-Alpha/protobench/v1/codec"
	"github.com/Aleph-Alpha/protobench/v1/compiler"
	"github.com/Aleph-Alpha/protobench/v1/dispatch"
	"github.com/Aleph-Alpha/protobench/v1/generator"
	"github.com/Aleph-Alpha/protobench/v1/registry"
)

// FXModule provides the *Service and bootstraps the sample schema on start.
var FXModule = fx.Module("probe",
	fx.Provide(NewWithDI),
	fx.Invoke(RegisterBootstrap),
)

// Params groups the service's dependencies.
type Params struct {
	fx.In

	Config    Config
	Sources   *artifact.SourceStore
	Compiler  *compiler.Compiler
	Registry  *registry.Registry
	Generator *generator.Generator
	Codec     *codec.Codec
	Engine    *dispatch.Engine
	Logger    Logger `optional:"true"`
}

// NewWithDI builds a Service from injected dependencies.
func NewWithDI(p Params) *Service {
	return New(p.Config, p.Sources, p.Compiler, p.Registry, p.Generator, p.Codec, p.Engine).
		WithLogger(p.Logger)
}

// RegisterBootstrap compiles the sample schema on start unless disabled.
// A failure is logged but does not stop the application; the rest of the
// service works without the sample.
func RegisterBootstrap(lc fx.Lifecycle, cfg Config, s *Service) {
	if cfg.SkipSampleBootstrap {
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := s.BootstrapSample(ctx); err != nil && s.logger != nil {
				s.logger.ErrorWithContext(ctx, "sample schema unavailable", err)
			}
			return nil
		},
	})
}
