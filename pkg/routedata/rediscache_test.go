package routedata

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRedisCache(t *testing.T, ttl time.Duration) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisCache(client, ttl, zap.NewNop()), mr
}

func TestRedisCachePutGet(t *testing.T) {
	ctx := context.Background()
	cache, _ := newTestRedisCache(t, time.Hour)

	_, ok := cache.Get(ctx, "route:1:2:balanced")
	assert.False(t, ok)

	cache.Put(ctx, "route:1:2:balanced", sampleFixture())

	got, ok := cache.Get(ctx, "route:1:2:balanced")
	require.True(t, ok)
	assert.Equal(t, sampleFixture(), got)
}

func TestRedisCacheTTL(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestRedisCache(t, time.Hour)

	cache.Put(ctx, "k", sampleFixture())

	mr.FastForward(59 * time.Minute)
	_, ok := cache.Get(ctx, "k")
	assert.True(t, ok)

	mr.FastForward(2 * time.Minute)
	_, ok = cache.Get(ctx, "k")
	assert.False(t, ok)
}

func TestRedisCacheFailsOpen(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestRedisCache(t, time.Hour)

	cache.Put(ctx, "k", sampleFixture())
	mr.Close()

	// a dead cache is a miss, not an error
	_, ok := cache.Get(ctx, "k")
	assert.False(t, ok)
	cache.Put(ctx, "k2", sampleFixture())
}

func TestRedisCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestRedisCache(t, time.Hour)

	require.NoError(t, mr.Set("bad", "{not json"))

	_, ok := cache.Get(ctx, "bad")
	assert.False(t, ok)
}
