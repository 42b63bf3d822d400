package logger

const (
	Debug   = "debug"
	Info    = "info"
	Warning = "warning"
	Error   = "error"
)

// Config holds the logger settings.
type Config struct {
	// Level is one of debug, info, warning, error. Anything else falls back to info.
	Level string `toml:"level" yaml:"level" envconfig:"ZAP_LOGGER_LEVEL"`

	// EnableTracing adds trace_id and span_id to entries logged through the
	// *WithContext methods.
	EnableTracing bool `toml:"enable_tracing" yaml:"enable_tracing" envconfig:"LOGGER_ENABLE_TRACING"`

	// ServiceName is attached to every entry as the "service" field.
	ServiceName string `toml:"service_name" yaml:"service_name" envconfig:"LOGGER_SERVICE_NAME"`

	// Development switches to the console encoder with colored levels.
	Development bool `toml:"development" yaml:"development" envconfig:"LOGGER_DEVELOPMENT"`
}
