package server

import (
	"net/http"

	"github.com/Aleph-Alpha/protobench/v1/tracer"
)

// Server is protobench's HTTP front end.
type Server struct {
	cfg     Config
	svc     Service
	demo    *Demo
	metrics Metrics
	tracer  Tracer
	logger  Logger

	// HTTP is the underlying server; its handler is Handler().
	HTTP *http.Server
}

// New builds a Server for svc. demo may be nil, in which case the demo
// endpoints are not registered.
func New(cfg Config, svc Service, demo *Demo) *Server {
	cfg = cfg.withDefaults()
	s := &Server{
		cfg:    cfg,
		svc:    svc,
		demo:   demo,
		tracer: tracer.NewNop(),
	}
	s.HTTP = &http.Server{
		Addr:              cfg.Address,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
	return s
}

// WithMetrics records request counts and durations in m.
func (s *Server) WithMetrics(m Metrics) *Server {
	s.metrics = m
	return s
}

// WithTracer replaces the no-op tracer. A nil t is ignored.
func (s *Server) WithTracer(t Tracer) *Server {
	if t != nil {
		s.tracer = t
	}
	return s
}

// WithLogger attaches a logger.
func (s *Server) WithLogger(logger Logger) *Server {
	s.logger = logger
	return s
}

// Handler returns the routed, instrumented handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.route(mux, "POST /upload_proto", s.handleUpload)
	s.route(mux, "POST /test_api", s.handleTest)
	s.route(mux, "GET /schemas/{filename}/types", s.handleSchemaTypes)
	s.route(mux, "GET /list_message_types", s.handleListMessageTypes)
	s.route(mux, "GET /generate_test_data/{messageType}", s.handleGenerate)
	s.route(mux, "GET /healthz", s.handleHealth)

	if s.demo != nil && !s.cfg.DisableDemo {
		s.route(mux, "POST /api/users", s.demo.CreateUser)
		s.route(mux, "GET /api/users", s.demo.ListUsers)
		s.route(mux, "POST /api/products", s.demo.CreateProduct)
		s.route(mux, "GET /api/products", s.demo.ListProducts)
	}
	return mux
}
