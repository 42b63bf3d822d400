package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"

	"github.com/Aleph-Alpha/protobench/v1/artifact"
	"github.com/Aleph-Alpha/protobench/v1/compiler"
	"github.com/Aleph-Alpha/protobench/v1/dispatch"
	"github.com/Aleph-Alpha/protobench/v1/generator"
	"github.com/Aleph-Alpha/protobench/v1/logger"
	"github.com/Aleph-Alpha/protobench/v1/metrics"
	"github.com/Aleph-Alpha/protobench/v1/probe"
	"github.com/Aleph-Alpha/protobench/v1/registry"
	"github.com/Aleph-Alpha/protobench/v1/report"
	"github.com/Aleph-Alpha/protobench/v1/server"
	"github.com/Aleph-Alpha/protobench/v1/tracer"
)

// ServiceName labels logs, metrics and traces unless configured otherwise.
const ServiceName = "protobench"

// ErrUnknownKeys is returned by Load when the file has keys no field takes.
var ErrUnknownKeys = errors.New("config: unknown keys")

// Config is the complete application configuration. Each section is the
// owning package's own Config, so the TOML tables and environment variable
// names are those documented on the package types.
type Config struct {
	Logger    logger.Config    `toml:"logger" yaml:"logger"`
	Metrics   metrics.Config   `toml:"metrics" yaml:"metrics"`
	Tracer    tracer.Config    `toml:"tracer" yaml:"tracer"`
	Artifact  artifact.Config  `toml:"artifact" yaml:"artifact"`
	Compiler  compiler.Config  `toml:"compiler" yaml:"compiler"`
	Registry  registry.Config  `toml:"registry" yaml:"registry"`
	Generator generator.Config `toml:"generator" yaml:"generator"`
	Dispatch  dispatch.Config  `toml:"dispatch" yaml:"dispatch"`
	Report    report.Config    `toml:"report" yaml:"report"`
	Probe     probe.Config     `toml:"probe" yaml:"probe"`
	Server    server.Config    `toml:"server" yaml:"server"`
}

// Default returns the configuration used when nothing is set. Package
// level defaults (timeouts, directories, addresses) are applied by the
// packages themselves.
func Default() Config {
	return Config{
		Logger: logger.Config{
			Level:       logger.Info,
			ServiceName: ServiceName,
		},
		Metrics: metrics.Config{
			Namespace:   ServiceName,
			ServiceName: ServiceName,
		},
		Tracer: tracer.Config{
			ServiceName: ServiceName,
		},
	}
}

// Load builds the configuration: Default, then the TOML file at path if
// path is not empty, then environment variables. Keys in the file that no
// field takes are an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		meta, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return Config{}, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return Config{}, fmt.Errorf("%w in %s: %s", ErrUnknownKeys, path, strings.Join(keys, ", "))
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyEnv overrides cfg from the environment. Variable names are the
// envconfig tags as written, without a prefix; nested sections are
// processed on their own so their names stay flat too.
func applyEnv(cfg *Config) error {
	targets := []interface{}{
		&cfg.Logger,
		&cfg.Metrics,
		&cfg.Tracer,
		&cfg.Artifact,
		&cfg.Artifact.Minio,
		&cfg.Artifact.Cache,
		&cfg.Compiler,
		&cfg.Registry,
		&cfg.Generator,
		&cfg.Dispatch,
		&cfg.Report,
		&cfg.Report.SASL,
		&cfg.Report.TLS,
		&cfg.Probe,
		&cfg.Server,
	}
	for _, t := range targets {
		if err := envconfig.Process("", t); err != nil {
			return fmt.Errorf("failed to read environment: %w", err)
		}
	}
	return nil
}
