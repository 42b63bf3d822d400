package artifact

import "time"

// Backend names accepted in Config.Backend.
const (
	BackendFile  = "file"
	BackendMinio = "minio"
)

const (
	// DefaultSchemaDir holds uploaded .proto sources.
	DefaultSchemaDir = "schemas"

	// DefaultArtifactDir holds compiled descriptor sets for the file backend.
	DefaultArtifactDir = "compiled"

	// DefaultCacheTTL bounds how long a cached artifact survives without a write.
	DefaultCacheTTL = 10 * time.Minute

	// DefaultCachePrefix namespaces artifact keys in Redis.
	DefaultCachePrefix = "protobench:artifact:"
)

// Config selects and configures the artifact store.
type Config struct {
	// Backend is either "file" (default) or "minio".
	Backend string `toml:"backend" yaml:"backend" envconfig:"ARTIFACT_BACKEND"`

	// SchemaDir is where uploaded sources are written. protoc uses it as the
	// import root, so it is always on local disk.
	SchemaDir string `toml:"schema_dir" yaml:"schema_dir" envconfig:"ARTIFACT_SCHEMA_DIR"`

	// Dir is the artifact directory of the file backend.
	Dir string `toml:"dir" yaml:"dir" envconfig:"ARTIFACT_DIR"`

	Minio MinioConfig `toml:"minio" yaml:"minio"`
	Cache CacheConfig `toml:"cache" yaml:"cache"`
}

// MinioConfig holds the connection settings of the MinIO backend.
type MinioConfig struct {
	Endpoint        string `toml:"endpoint" yaml:"endpoint" envconfig:"MINIO_ENDPOINT"`
	AccessKeyID     string `toml:"access_key_id" yaml:"access_key_id" envconfig:"MINIO_ACCESS_KEY_ID"`
	SecretAccessKey string `toml:"secret_access_key" yaml:"secret_access_key" envconfig:"MINIO_SECRET_ACCESS_KEY"`
	UseSSL          bool   `toml:"use_ssl" yaml:"use_ssl" envconfig:"MINIO_USE_SSL"`
	Region          string `toml:"region" yaml:"region" envconfig:"MINIO_REGION"`
	BucketName      string `toml:"bucket" yaml:"bucket" envconfig:"MINIO_BUCKET"`

	// Prefix is prepended to every object key, e.g. "artifacts/".
	Prefix string `toml:"prefix" yaml:"prefix" envconfig:"MINIO_PREFIX"`

	// CreateBucket creates BucketName on start when it does not exist.
	CreateBucket bool `toml:"create_bucket" yaml:"create_bucket" envconfig:"MINIO_CREATE_BUCKET"`
}

// CacheConfig enables the Redis read cache in front of the store.
type CacheConfig struct {
	Enabled  bool          `toml:"enabled" yaml:"enabled" envconfig:"ARTIFACT_CACHE_ENABLED"`
	Addr     string        `toml:"addr" yaml:"addr" envconfig:"REDIS_ADDR"`
	Username string        `toml:"username" yaml:"username" envconfig:"REDIS_USERNAME"`
	Password string        `toml:"password" yaml:"password" envconfig:"REDIS_PASSWORD"`
	DB       int           `toml:"db" yaml:"db" envconfig:"REDIS_DB"`
	TTL      time.Duration `toml:"ttl" yaml:"ttl" envconfig:"ARTIFACT_CACHE_TTL"`
	Prefix   string        `toml:"prefix" yaml:"prefix" envconfig:"ARTIFACT_CACHE_PREFIX"`
}

func (c Config) withDefaults() Config {
	if c.Backend == "" {
		c.Backend = BackendFile
	}
	if c.SchemaDir == "" {
		c.SchemaDir = DefaultSchemaDir
	}
	if c.Dir == "" {
		c.Dir = DefaultArtifactDir
	}
	if c.Cache.Addr == "" {
		c.Cache.Addr = "localhost:6379"
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = DefaultCacheTTL
	}
	if c.Cache.Prefix == "" {
		c.Cache.Prefix = DefaultCachePrefix
	}
	return c
}
