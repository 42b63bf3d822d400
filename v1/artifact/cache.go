package artifact

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Aleph-Alpha/protobench/v1/observability"
)

// cacheClient is the part of redis.Cmdable CachedStore needs.
type cacheClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
}

// CachedStore serves reads from Redis and falls back to the wrapped store.
//
// Cached bytes live under a per-name generation: every Put and Delete bumps
// the generation after the inner write succeeds, so a read following a
// recompile never sees the old artifact, and a read that raced the write
// can only populate a generation nobody looks up any more.
// Redis failures are logged and bypassed; the inner store stays authoritative.
type CachedStore struct {
	inner    Store
	cache    cacheClient
	prefix   string
	ttl      time.Duration
	logger   Logger
	observer observability.Observer
}

// NewCachedStore wraps inner with a Redis cache.
func NewCachedStore(inner Store, client cacheClient, cfg CacheConfig, logger Logger) *CachedStore {
	if cfg.Prefix == "" {
		cfg.Prefix = DefaultCachePrefix
	}
	if cfg.TTL == 0 {
		cfg.TTL = DefaultCacheTTL
	}
	return &CachedStore{
		inner:  inner,
		cache:  client,
		prefix: cfg.Prefix,
		ttl:    cfg.TTL,
		logger: logger,
	}
}

// WithObserver attaches an observer notified of cache hits and misses.
func (s *CachedStore) WithObserver(observer observability.Observer) *CachedStore {
	s.observer = observer
	return s
}

func (s *CachedStore) generationKey(name string) string {
	return s.prefix + name + ":gen"
}

func (s *CachedStore) dataKey(name string, generation int64) string {
	return s.prefix + name + ":" + strconv.FormatInt(generation, 10)
}

// generation returns the current write generation of name; a missing
// counter is generation zero.
func (s *CachedStore) generation(ctx context.Context, name string) (int64, error) {
	gen, err := s.cache.Get(ctx, s.generationKey(name)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// Get returns the cached bytes when present, otherwise reads through and
// populates the cache under the generation observed before the read.
func (s *CachedStore) Get(ctx context.Context, name string) ([]byte, error) {
	start := time.Now()
	gen, err := s.generation(ctx, name)
	if err != nil {
		s.warn("artifact cache read failed", err, name)
		observeOperation(s.observer, "cache", "miss", name, start, nil, 0)
		return s.inner.Get(ctx, name)
	}

	key := s.dataKey(name, gen)
	data, err := s.cache.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		observeOperation(s.observer, "cache", "hit", name, start, nil, int64(len(data)))
		return data, nil
	case !errors.Is(err, redis.Nil):
		s.warn("artifact cache read failed", err, name)
	}
	observeOperation(s.observer, "cache", "miss", name, start, nil, 0)

	data, err = s.inner.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, key, data, s.ttl).Err(); err != nil {
		s.warn("artifact cache write failed", err, name)
	}
	return data, nil
}

// Put writes through to the inner store and invalidates the cache entry.
func (s *CachedStore) Put(ctx context.Context, name string, data []byte) error {
	if err := s.inner.Put(ctx, name, data); err != nil {
		return err
	}
	s.invalidate(ctx, name)
	return nil
}

// Delete removes name from the inner store and the cache.
func (s *CachedStore) Delete(ctx context.Context, name string) error {
	if err := s.inner.Delete(ctx, name); err != nil {
		return err
	}
	s.invalidate(ctx, name)
	return nil
}

// List is not cached.
func (s *CachedStore) List(ctx context.Context) ([]string, error) {
	return s.inner.List(ctx)
}

func (s *CachedStore) invalidate(ctx context.Context, name string) {
	gen, err := s.cache.Incr(ctx, s.generationKey(name)).Result()
	if err != nil {
		s.warn("artifact cache invalidation failed", err, name)
		return
	}
	// The previous generation is unreachable now; dropping it only frees memory.
	if err := s.cache.Del(ctx, s.dataKey(name, gen-1)).Err(); err != nil {
		s.warn("artifact cache invalidation failed", err, name)
	}
}

func (s *CachedStore) warn(msg string, err error, name string) {
	if s.logger != nil {
		s.logger.Warn(msg, err, map[string]interface{}{"artifact": name})
	}
}
