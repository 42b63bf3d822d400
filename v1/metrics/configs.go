package metrics

// DefaultMetricsAddress is used when Config.Address is empty.
const DefaultMetricsAddress = ":9090"

// Config defines the configuration structure for the Prometheus metrics server.
type Config struct {
	// Enabled starts the /metrics HTTP server. Metrics are still collected
	// in-process when disabled.
	Enabled bool `toml:"enabled" yaml:"enabled" envconfig:"METRICS_ENABLED"`

	// Address determines the network address where the metrics server listens.
	//
	// Example values:
	//   - ":9090"          → all interfaces, port 9090
	//   - "127.0.0.1:9100" → localhost only
	//
	// Default: ":9090"
	Address string `toml:"address" yaml:"address" envconfig:"METRICS_ADDRESS"`

	// EnableDefaultCollectors registers the Go runtime, process and build info collectors.
	EnableDefaultCollectors bool `toml:"enable_default_collectors" yaml:"enable_default_collectors" envconfig:"METRICS_ENABLE_DEFAULT_COLLECTORS"`

	// Namespace prefixes every metric name.
	//
	// Example:
	//   Namespace: "protobench"
	//   → "protobench_operations_total"
	Namespace string `toml:"namespace" yaml:"namespace" envconfig:"METRICS_NAMESPACE"`

	// ServiceName is attached to every metric as the "service" label.
	ServiceName string `toml:"service_name" yaml:"service_name" envconfig:"METRICS_SERVICE_NAME"`
}
