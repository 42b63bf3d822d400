package server

import "time"

// Defaults applied when the corresponding Config field is zero.
const (
	DefaultAddress           = ":8080"
	DefaultMaxUploadBytes    = 1 << 20
	DefaultReadHeaderTimeout = 10 * time.Second
)

// Config configures the HTTP server.
type Config struct {
	// Address is the listen address, e.g. ":8080" or "127.0.0.1:8080".
	Address string `toml:"address" yaml:"address" envconfig:"SERVER_ADDRESS"`

	// MaxUploadBytes caps the size of an uploaded schema and of a
	// /test_api request body.
	MaxUploadBytes int64 `toml:"max_upload_bytes" yaml:"max_upload_bytes" envconfig:"SERVER_MAX_UPLOAD_BYTES"`

	ReadHeaderTimeout time.Duration `toml:"read_header_timeout" yaml:"read_header_timeout" envconfig:"SERVER_READ_HEADER_TIMEOUT"`

	// DisableDemo removes the /api/users and /api/products endpoints.
	DisableDemo bool `toml:"disable_demo" yaml:"disable_demo" envconfig:"SERVER_DISABLE_DEMO"`
}

func (c Config) withDefaults() Config {
	if c.Address == "" {
		c.Address = DefaultAddress
	}
	if c.MaxUploadBytes <= 0 {
		c.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if c.ReadHeaderTimeout == 0 {
		c.ReadHeaderTimeout = DefaultReadHeaderTimeout
	}
	return c
}
