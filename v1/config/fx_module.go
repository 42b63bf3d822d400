package config

import (
	"go.uber.org/fx"

	"github.com/Aleph-Alpha/protobench/v1/artifact"
	"github.com/Aleph-Alpha/protobench/v1/compiler"
	"github.com/Aleph-Alpha/protobench/v1/dispatch"
	"github.com/Aleph-Alpha/protobench/v1/generator"
	"github.com/Aleph-Alpha/protobench/v1/logger"
	"github.com/Aleph-Alpha/protobench/v1/metrics"
	"github.com/Aleph-Alpha/protobench/v1/probe"
	"github.com/Aleph-Alpha/protobench/v1/registry"
	"github.com/Aleph-Alpha/protobench/v1/report"
	"github.com/Aleph-Alpha/protobench/v1/server"
	"github.com/Aleph-Alpha/protobench/v1/tracer"
)

// FXModule supplies cfg and provides each section as its package's Config.
func FXModule(cfg Config) fx.Option {
	return fx.Module("config",
		fx.Supply(cfg),
		fx.Provide(
			func(c Config) logger.Config { return c.Logger },
			func(c Config) metrics.Config { return c.Metrics },
			func(c Config) tracer.Config { return c.Tracer },
			func(c Config) artifact.Config { return c.Artifact },
			func(c Config) compiler.Config { return c.Compiler },
			func(c Config) registry.Config { return c.Registry },
			func(c Config) generator.Config { return c.Generator },
			func(c Config) dispatch.Config { return c.Dispatch },
			func(c Config) report.Config { return c.Report },
			func(c Config) probe.Config { return c.Probe },
			func(c Config) server.Config { return c.Server },
		),
	)
}
