package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// payloadBuckets covers encoded message sizes from a few bytes up to 4 MiB.
var payloadBuckets = prometheus.ExponentialBuckets(16, 4, 10)

// Metrics encapsulates the Prometheus registry and HTTP server responsible
// for exposing protobench metrics.
type Metrics struct {
	// Server defines the HTTP server used to expose the /metrics endpoint.
	Server *http.Server

	// Registry is the Prometheus registry where all metrics are registered.
	Registry *prometheus.Registry

	cfg        Config
	registerer prometheus.Registerer

	requestsTotal     *prometheus.CounterVec
	requestDuration   *prometheus.HistogramVec
	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	payloadBytes      *prometheus.HistogramVec
	responseStatus    *prometheus.CounterVec
}

// NewMetrics initializes and returns a new instance of the Metrics struct.
// It sets up a dedicated Prometheus registry, wraps it with a constant
// `service` label, registers the protobench metrics and creates the HTTP
// server exposing /metrics.
//
// Example:
//
//	m := metrics.NewMetrics(metrics.Config{
//	    Address:     ":9090",
//	    Namespace:   "protobench",
//	    ServiceName: "protobench",
//	})
//	go m.Server.ListenAndServe()
func NewMetrics(cfg Config) *Metrics {
	if cfg.Address == "" {
		cfg.Address = DefaultMetricsAddress
	}

	registry := prometheus.NewRegistry()

	var registerer prometheus.Registerer = registry
	if cfg.ServiceName != "" {
		registerer = prometheus.WrapRegistererWith(
			prometheus.Labels{"service": cfg.ServiceName},
			registry,
		)
	}

	m := &Metrics{
		Registry:   registry,
		cfg:        cfg,
		registerer: registerer,
	}

	m.requestsTotal = createCounterVec(cfg.Namespace, "http_requests_total", "Total number of HTTP requests served", []string{"route", "status"})
	m.requestDuration = createHistogramVec(cfg.Namespace, "http_request_duration_seconds", "Duration of HTTP requests in seconds", []string{"route"}, prometheus.DefBuckets)
	m.operationsTotal = createCounterVec(cfg.Namespace, "operations_total", "Total number of component operations", []string{"component", "operation", "status"})
	m.operationDuration = createHistogramVec(cfg.Namespace, "operation_duration_seconds", "Duration of component operations in seconds", []string{"component", "operation"}, prometheus.DefBuckets)
	m.payloadBytes = createHistogramVec(cfg.Namespace, "payload_bytes", "Size of encoded payloads in bytes", []string{"component", "operation"}, payloadBuckets)
	m.responseStatus = createCounterVec(cfg.Namespace, "dispatch_responses_total", "Target responses by HTTP status code", []string{"status_code"})

	registerer.MustRegister(
		m.requestsTotal,
		m.requestDuration,
		m.operationsTotal,
		m.operationDuration,
		m.payloadBytes,
		m.responseStatus,
	)

	if cfg.EnableDefaultCollectors {
		registerer.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	m.Server = &http.Server{
		Addr:    cfg.Address,
		Handler: mux,
	}
	return m
}
