package registry

// DefaultScanConcurrency bounds how many artifacts FindMessage parses at once.
const DefaultScanConcurrency = 8

// Config configures the registry.
type Config struct {
	ScanConcurrency int `toml:"scan_concurrency" yaml:"scan_concurrency" envconfig:"REGISTRY_SCAN_CONCURRENCY"`
}
