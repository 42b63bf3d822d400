package probe

// Config configures the probe service.
type Config struct {
	// SkipSampleBootstrap disables writing and compiling the bundled sample
	// schema on start.
	SkipSampleBootstrap bool `toml:"skip_sample_bootstrap" yaml:"skip_sample_bootstrap" envconfig:"PROBE_SKIP_SAMPLE_BOOTSTRAP"`

	// DefaultProtocol is used when a test request names none. It defaults
	// to "rest".
	DefaultProtocol string `toml:"default_protocol" yaml:"default_protocol" envconfig:"PROBE_DEFAULT_PROTOCOL"`
}
