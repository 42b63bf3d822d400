package generator

// DefaultMaxDepth is how many levels of nested messages are filled in.
const DefaultMaxDepth = 3

// Config configures sample generation.
type Config struct {
	// MaxDepth limits recursion into nested message fields. Zero means
	// DefaultMaxDepth; a negative value leaves every nested message unset.
	MaxDepth int `toml:"max_depth" yaml:"max_depth" envconfig:"GENERATOR_MAX_DEPTH"`
}
