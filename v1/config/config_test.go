package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/Aleph-Alpha/protobench/v1/artifact"
	"github.com/Aleph-Alpha/protobench/v1/dispatch"
	"github.com/Aleph-Alpha/protobench/v1/server"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "protobench.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "protobench", cfg.Logger.ServiceName)
	assert.Equal(t, "protobench", cfg.Metrics.Namespace)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
[server]
address = "127.0.0.1:9999"
disable_demo = true

[artifact]
backend = "minio"

[artifact.minio]
endpoint = "minio:9000"
bucket = "schemas"

[artifact.cache]
enabled = true
ttl = "1m"

[dispatch]
timeout = "5s"

[report]
brokers = ["k1:9092", "k2:9092"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9999", cfg.Server.Address)
	assert.True(t, cfg.Server.DisableDemo)
	assert.Equal(t, artifact.BackendMinio, cfg.Artifact.Backend)
	assert.Equal(t, "minio:9000", cfg.Artifact.Minio.Endpoint)
	assert.Equal(t, "schemas", cfg.Artifact.Minio.BucketName)
	assert.True(t, cfg.Artifact.Cache.Enabled)
	assert.Equal(t, time.Minute, cfg.Artifact.Cache.TTL)
	assert.Equal(t, 5*time.Second, cfg.Dispatch.Timeout)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Report.Brokers)

	// untouched sections keep their defaults
	assert.Equal(t, "protobench", cfg.Tracer.ServiceName)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
[server]
address = ":1111"

[dispatch]
timeout = "5s"
`)
	t.Setenv("SERVER_ADDRESS", ":2222")
	t.Setenv("MINIO_ENDPOINT", "env-minio:9000")
	t.Setenv("KAFKA_SASL_MECHANISM", "plain")
	t.Setenv("KAFKA_BROKERS", "a:1,b:2")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":2222", cfg.Server.Address)
	assert.Equal(t, 5*time.Second, cfg.Dispatch.Timeout)
	assert.Equal(t, "env-minio:9000", cfg.Artifact.Minio.Endpoint)
	assert.Equal(t, "plain", cfg.Report.SASL.Mechanism)
	assert.Equal(t, []string{"a:1", "b:2"}, cfg.Report.Brokers)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
		assert.Error(t, err)
	})

	t.Run("unknown key", func(t *testing.T) {
		path := writeConfig(t, "[server]\nadress = \":1\"\n")
		_, err := Load(path)
		assert.ErrorIs(t, err, ErrUnknownKeys)
		assert.Contains(t, err.Error(), "server.adress")
	})

	t.Run("bad env value", func(t *testing.T) {
		t.Setenv("DISPATCH_TIMEOUT", "soon")
		_, err := Load("")
		assert.Error(t, err)
	})
}

func TestFXModuleProvidesSections(t *testing.T) {
	cfg := Default()
	cfg.Server.Address = ":7000"
	cfg.Dispatch.UserAgent = "bench-test"

	var (
		serverCfg   server.Config
		dispatchCfg dispatch.Config
	)
	app := fxtest.New(t,
		FXModule(cfg),
		fx.Populate(&serverCfg, &dispatchCfg),
	)
	app.RequireStart()
	app.RequireStop()

	assert.Equal(t, ":7000", serverCfg.Address)
	assert.Equal(t, "bench-test", dispatchCfg.UserAgent)
}
