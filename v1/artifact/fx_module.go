package artifact

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/Aleph-Alpha/protobench/v1/observability"
)

// FXModule provides the artifact Store selected by Config.Backend and the
// SourceStore for uploaded schemas.
//
// Dependencies required by this module:
// - An artifact.Config instance
// - Optionally an artifact.Logger and an observability.Observer
var FXModule = fx.Module("artifact",
	fx.Provide(
		NewSourceStoreWithDI,
		NewStoreWithDI,
	),
)

// StoreParams groups the dependencies needed to build the store.
type StoreParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    Config
	Logger    Logger                 `optional:"true"`
	Observer  observability.Observer `optional:"true"`
}

// NewSourceStoreWithDI builds the SourceStore under Config.SchemaDir.
func NewSourceStoreWithDI(cfg Config) (*SourceStore, error) {
	return NewSourceStore(cfg.withDefaults().SchemaDir)
}

// NewStoreWithDI builds the configured backend, wraps it in the Redis cache
// when enabled, and hooks connection checks and shutdown into the lifecycle.
func NewStoreWithDI(p StoreParams) (Store, error) {
	cfg := p.Config.withDefaults()

	var store Store
	switch cfg.Backend {
	case BackendFile:
		fs, err := NewFileStore(cfg.Dir)
		if err != nil {
			return nil, err
		}
		store = fs.WithObserver(p.Observer)
	case BackendMinio:
		ms, err := NewMinioStore(cfg.Minio)
		if err != nil {
			return nil, err
		}
		ms.WithObserver(p.Observer).WithLogger(p.Logger)
		p.Lifecycle.Append(fx.Hook{
			OnStart: ms.EnsureBucket,
		})
		store = ms
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}

	if !cfg.Cache.Enabled {
		return store, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Cache.Addr,
		Username: cfg.Cache.Username,
		Password: cfg.Cache.Password,
		DB:       cfg.Cache.DB,
	})
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := client.Ping(ctx).Err(); err != nil {
				return fmt.Errorf("failed to ping artifact cache: %w", err)
			}
			if p.Logger != nil {
				p.Logger.Info("Artifact cache connected", nil, map[string]interface{}{"addr": cfg.Cache.Addr})
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
	return NewCachedStore(store, client, cfg.Cache, p.Logger).WithObserver(p.Observer), nil
}
