package tracer

// Config holds tracer settings.
type Config struct {
	// ServiceName is the service.name resource attribute.
	ServiceName string `toml:"service_name" yaml:"service_name" envconfig:"TRACER_SERVICE_NAME"`

	// AppEnv is the deployment environment, e.g. "local" or "production".
	AppEnv string `toml:"app_env" yaml:"app_env" envconfig:"APP_ENV"`

	// EnableExport ships spans over OTLP/HTTP. Without it spans are created
	// (so trace IDs still reach logs and outgoing headers) but never exported.
	EnableExport bool `toml:"enable_export" yaml:"enable_export" envconfig:"TRACER_ENABLE_EXPORT"`

	// EndpointURL overrides OTEL_EXPORTER_OTLP_ENDPOINT, e.g. "http://localhost:4318".
	EndpointURL string `toml:"endpoint_url" yaml:"endpoint_url" envconfig:"TRACER_ENDPOINT_URL"`
}
