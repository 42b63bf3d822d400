package compiler

import "time"

const (
	// DefaultProtocPath resolves protoc through PATH.
	DefaultProtocPath = "protoc"

	// DefaultTimeout bounds one protoc invocation.
	DefaultTimeout = time.Minute
)

// Config configures the schema compiler.
type Config struct {
	// ProtocPath is the protoc executable, either a name looked up in PATH
	// or an absolute path.
	ProtocPath string `toml:"protoc_path" yaml:"protoc_path" envconfig:"PROTOC_PATH"`

	// Timeout bounds a single compilation.
	Timeout time.Duration `toml:"timeout" yaml:"timeout" envconfig:"COMPILE_TIMEOUT"`
}

func (c Config) withDefaults() Config {
	if c.ProtocPath == "" {
		c.ProtocPath = DefaultProtocPath
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}
