package dispatch

import "time"

// DefaultTimeout bounds one dispatch, connection to last body byte.
const DefaultTimeout = 30 * time.Second

// Config configures the HTTP client used for dispatch.
type Config struct {
	Timeout time.Duration `toml:"timeout" yaml:"timeout" envconfig:"DISPATCH_TIMEOUT"`

	// UserAgent is sent unless the caller supplies its own.
	UserAgent string `toml:"user_agent" yaml:"user_agent" envconfig:"DISPATCH_USER_AGENT"`

	// MaxResponseBytes caps how much of a response body is read. Zero means
	// no limit.
	MaxResponseBytes int64 `toml:"max_response_bytes" yaml:"max_response_bytes" envconfig:"DISPATCH_MAX_RESPONSE_BYTES"`
}

func (c Config) withDefaults() Config {
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.UserAgent == "" {
		c.UserAgent = "protobench"
	}
	return c
}
