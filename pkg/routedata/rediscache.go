package routedata

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sblrm/cultural-trip-planner/pkg/datastructure"
	"go.uber.org/zap"
)

// RedisCache shared route-sample cache for multi-instance deployments. cache
// misses on redis errors, never failures: a broken cache must not break
// planning.
type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
	log *zap.Logger
}

func NewRedisCache(rdb *redis.Client, ttl time.Duration, log *zap.Logger) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &RedisCache{
		rdb: rdb,
		ttl: ttl,
		log: log,
	}
}

func (c *RedisCache) Get(ctx context.Context, key string) (datastructure.RouteSample, bool) {
	buf, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("redis route cache read failed", zap.String("key", key), zap.Error(err))
		}
		return datastructure.RouteSample{}, false
	}

	var sample datastructure.RouteSample
	if err := json.Unmarshal(buf, &sample); err != nil {
		c.log.Warn("redis route cache entry corrupt", zap.String("key", key), zap.Error(err))
		return datastructure.RouteSample{}, false
	}
	return sample, true
}

func (c *RedisCache) Put(ctx context.Context, key string, sample datastructure.RouteSample) {
	buf, err := json.Marshal(sample)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, buf, c.ttl).Err(); err != nil {
		c.log.Warn("redis route cache write failed", zap.String("key", key), zap.Error(err))
	}
}
