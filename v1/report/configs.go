package report

import "time"

const (
	// DefaultTopic receives one record per dispatch.
	DefaultTopic = "protobench.dispatches"

	// DefaultWriteTimeout bounds a synchronous publish.
	DefaultWriteTimeout = 5 * time.Second
)

// Config configures the dispatch report publisher. Publishing is off unless
// Enabled is set.
type Config struct {
	Enabled bool     `toml:"enabled" yaml:"enabled" envconfig:"REPORT_ENABLED"`
	Brokers []string `toml:"brokers" yaml:"brokers" envconfig:"KAFKA_BROKERS"`
	Topic   string   `toml:"topic" yaml:"topic" envconfig:"REPORT_TOPIC"`

	// Async hands records to the writer's background batcher instead of
	// waiting for the broker acknowledgement.
	Async bool `toml:"async" yaml:"async" envconfig:"REPORT_ASYNC"`

	BatchSize    int           `toml:"batch_size" yaml:"batch_size" envconfig:"REPORT_BATCH_SIZE"`
	BatchTimeout time.Duration `toml:"batch_timeout" yaml:"batch_timeout" envconfig:"REPORT_BATCH_TIMEOUT"`
	WriteTimeout time.Duration `toml:"write_timeout" yaml:"write_timeout" envconfig:"REPORT_WRITE_TIMEOUT"`

	// CompressionCodec is one of "gzip", "snappy", "lz4", "zstd" or empty.
	CompressionCodec string `toml:"compression" yaml:"compression" envconfig:"REPORT_COMPRESSION"`

	SASL SASLConfig `toml:"sasl" yaml:"sasl"`
	TLS  TLSConfig  `toml:"tls" yaml:"tls"`
}

// SASLConfig enables SASL authentication when Mechanism is set.
type SASLConfig struct {
	// Mechanism is "PLAIN", "SCRAM-SHA-256" or "SCRAM-SHA-512".
	Mechanism string `toml:"mechanism" yaml:"mechanism" envconfig:"KAFKA_SASL_MECHANISM"`
	Username  string `toml:"username" yaml:"username" envconfig:"KAFKA_SASL_USERNAME"`
	Password  string `toml:"password" yaml:"password" envconfig:"KAFKA_SASL_PASSWORD"`
}

// TLSConfig enables TLS towards the brokers.
type TLSConfig struct {
	Enabled            bool   `toml:"enabled" yaml:"enabled" envconfig:"KAFKA_TLS_ENABLED"`
	InsecureSkipVerify bool   `toml:"insecure_skip_verify" yaml:"insecure_skip_verify" envconfig:"KAFKA_TLS_INSECURE_SKIP_VERIFY"`
	CACertPath         string `toml:"ca_cert_path" yaml:"ca_cert_path" envconfig:"KAFKA_TLS_CA_CERT_PATH"`
}

func (c Config) withDefaults() Config {
	if len(c.Brokers) == 0 {
		c.Brokers = []string{"localhost:9092"}
	}
	if c.Topic == "" {
		c.Topic = DefaultTopic
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = DefaultWriteTimeout
	}
	if c.BatchSize == 0 {
		c.BatchSize = 100
	}
	if c.BatchTimeout == 0 {
		c.BatchTimeout = time.Second
	}
	return c
}
