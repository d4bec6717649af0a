package services

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"gopet/internal/observability"
	"gopet/pkg/cache"
	"gopet/pkg/logger"
)

// SnapshotCacheKey is where the dashboard snapshot is cached.
const SnapshotCacheKey = "dashboard:snapshot"

// CacheService is the subset of pkg/cache the services rely on.
// *cache.RedisCache satisfies it.
type CacheService interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// Dependencies carries the optional collaborators shared by the services.
// Cache and Metrics may be nil.
type Dependencies struct {
	Cache    CacheService
	CacheTTL time.Duration
	Metrics  *observability.Metrics
	Logger   *logger.Logger
}

func (d Dependencies) logger() *logger.Logger {
	if d.Logger == nil {
		return logger.NewNop()
	}
	return d.Logger
}

// snapshotCache wraps the optional cache with hit/miss accounting. Cache
// failures are logged and never surface to callers.
//
// generation is bumped by every invalidation. A snapshot built under an
// older generation is never left in the cache.
type snapshotCache struct {
	cache      CacheService
	ttl        time.Duration
	metrics    *observability.Metrics
	logger     *logger.Logger
	generation atomic.Uint64
}

func newSnapshotCache(deps Dependencies) *snapshotCache {
	return &snapshotCache{
		cache:   deps.Cache,
		ttl:     deps.CacheTTL,
		metrics: deps.Metrics,
		logger:  deps.logger().WithField("component", "snapshot_cache"),
	}
}

func (s *snapshotCache) load(ctx context.Context, dest interface{}) bool {
	if s.cache == nil {
		return false
	}

	err := s.cache.Get(ctx, SnapshotCacheKey, dest)
	switch {
	case err == nil:
		s.metrics.SnapshotCacheLookup("hit")
		return true
	case errors.Is(err, cache.ErrCacheMiss):
		s.metrics.SnapshotCacheLookup("miss")
	default:
		s.metrics.SnapshotCacheLookup("error")
		s.logger.WithError(err).Warn("Snapshot cache read failed")
	}
	return false
}

// current returns the generation a reader must capture before it starts
// building a snapshot.
func (s *snapshotCache) current() uint64 {
	return s.generation.Load()
}

// store caches value built under generation gen. If a write invalidated the
// cache meanwhile the value is dropped, or removed again when the write raced
// with Set.
func (s *snapshotCache) store(ctx context.Context, value interface{}, gen uint64) {
	if s.cache == nil || s.current() != gen {
		return
	}
	if err := s.cache.Set(ctx, SnapshotCacheKey, value, s.ttl); err != nil {
		s.logger.WithError(err).Warn("Snapshot cache write failed")
		return
	}
	if s.current() != gen {
		s.delete(ctx)
	}
}

func (s *snapshotCache) invalidate(ctx context.Context) {
	s.generation.Add(1)
	s.delete(ctx)
}

func (s *snapshotCache) delete(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, SnapshotCacheKey); err != nil {
		s.logger.WithError(err).Warn("Snapshot cache invalidation failed")
	}
}
