package app

import (
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/Aleph-Alpha/protobench/v1/artifact"
	"github.com/Aleph-Alpha/protobench/v1/codec"
	"github.com/Aleph-Alpha/protobench/v1/compiler"
	"github.com/Aleph-Alpha/protobench/v1/config"
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

// Core wires everything except the HTTP server: configuration, logging,
// metrics, tracing, storage, the pipeline and the probe service.
func Core(cfg config.Config) fx.Option {
	return fx.Options(
		config.FXModule(cfg),
		logger.FXModule,
		metrics.FXModule,
		tracer.FXModule,
		adapters,
		artifact.FXModule,
		compiler.FXModule,
		registry.FXModule,
		generator.FXModule,
		codec.FXModule,
		report.FXModule,
		dispatch.FXModule,
		probe.FXModule,
	)
}

// Server is Core plus the HTTP server, with fx events logged through zap.
func Server(cfg config.Config) fx.Option {
	return fx.Options(
		Core(cfg),
		server.FXModule,
		fx.WithLogger(func(l *logger.LoggerClient) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: l.Zap}
		}),
	)
}

// adapters expose the shared logger, tracer and metrics under the narrow
// interfaces each package declares.
var adapters = fx.Provide(
	func(l logger.Logger) tracer.Logger { return l },
	func(l logger.Logger) metrics.Logger { return l },
	func(l logger.Logger) artifact.Logger { return l },
	func(l logger.Logger) compiler.Logger { return l },
	func(l logger.Logger) registry.Logger { return l },
	func(l logger.Logger) dispatch.Logger { return l },
	func(l logger.Logger) report.Logger { return l },
	func(l logger.Logger) probe.Logger { return l },
	func(l logger.Logger) server.Logger { return l },

	func(t *tracer.Tracer) compiler.Tracer { return t },
	func(t *tracer.Tracer) registry.Tracer { return t },
	func(t *tracer.Tracer) server.Tracer { return t },
	func(t *tracer.Tracer) dispatch.Propagator { return t },

	func(m metrics.MetricsCollector) server.Metrics { return m },
)
