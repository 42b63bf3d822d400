package probe

import (
	"github.com/Aleph-Alpha/protobench/v1/artifact"
	"github.com/Aleph-Alpha/protobench/v1/codec"
	"github.com/Aleph-Alpha/protobench/v1/generator"
)

// Service is the entry point for uploads, introspection and tests. Every
// call is independent; the service holds no per-request state.
type Service struct {
	cfg        Config
	sources    *artifact.SourceStore
	compiler   Compiler
	registry   Registry
	generator  *generator.Generator
	codec      *codec.Codec
	dispatcher Dispatcher
	logger     Logger
}

// New wires a Service from its collaborators.
func New(
	cfg Config,
	sources *artifact.SourceStore,
	compiler Compiler,
	registry Registry,
	gen *generator.Generator,
	c *codec.Codec,
	dispatcher Dispatcher,
) *Service {
	if cfg.DefaultProtocol == "" {
		cfg.DefaultProtocol = "rest"
	}
	return &Service{
		cfg:        cfg,
		sources:    sources,
		compiler:   compiler,
		registry:   registry,
		generator:  gen,
		codec:      c,
		dispatcher: dispatcher,
	}
}

// WithLogger attaches a logger.
func (s *Service) WithLogger(logger Logger) *Service {
	s.logger = logger
	return s
}
