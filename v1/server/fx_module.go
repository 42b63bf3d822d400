package server

import (
	"context"
	"errors"
	"net"
	"net/http"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/protobench/v1/codec"
	"github.com/Aleph-Alpha/protobench/v1/probe"
)

// FXModule provides the *Server and runs it for the application's lifetime.
var FXModule = fx.Module("server",
	fx.Provide(
		NewDemoWithDI,
		NewWithDI,
	),
	fx.Invoke(RegisterServerLifecycle),
)

// NewDemoWithDI returns nil when the demo endpoints are disabled.
func NewDemoWithDI(cfg Config, c *codec.Codec) (*Demo, error) {
	if cfg.DisableDemo {
		return nil, nil
	}
	return NewDemo(c)
}

// Params groups the server's dependencies.
type Params struct {
	fx.In

	Config  Config
	Service *probe.Service
	Demo    *Demo
	Metrics Metrics `optional:"true"`
	Tracer  Tracer  `optional:"true"`
	Logger  Logger  `optional:"true"`
}

// NewWithDI builds a Server from injected dependencies.
func NewWithDI(p Params) *Server {
	return New(p.Config, p.Service, p.Demo).
		WithMetrics(p.Metrics).
		WithTracer(p.Tracer).
		WithLogger(p.Logger)
}

// RegisterServerLifecycle binds the listener on start, so a busy port fails
// the application, and shuts the server down gracefully on stop.
func RegisterServerLifecycle(lc fx.Lifecycle, s *Server) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", s.HTTP.Addr)
			if err != nil {
				return err
			}
			s.HTTP.Handler = s.Handler()
			if s.logger != nil {
				s.logger.Info("Starting HTTP server", nil, map[string]interface{}{"address": ln.Addr().String()})
			}
			go func() {
				if err := s.HTTP.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) && s.logger != nil {
					s.logger.Error("HTTP server stopped", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if s.logger != nil {
				s.logger.Info("Shutting down HTTP server", nil)
			}
			return s.HTTP.Shutdown(ctx)
		},
	})
}
