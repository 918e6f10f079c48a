package routedata

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golang/geo/s2"
	"github.com/sblrm/cultural-trip-planner/pkg"
	"github.com/sblrm/cultural-trip-planner/pkg/datastructure"
	"github.com/sblrm/cultural-trip-planner/pkg/geo"
)

const (
	// s2 cells at level 17 are ~100m wide, close enough that two queries from
	// the same block share a cache entry
	cacheCellLevel = 17

	DefaultCacheTTL = time.Hour
)

// Cache stores route samples keyed by snapped coordinate pair + mode.
// entries are idempotent pure function results, so last-write-wins on a
// concurrent race is fine.
type Cache interface {
	Get(ctx context.Context, key string) (datastructure.RouteSample, bool)
	Put(ctx context.Context, key string, sample datastructure.RouteSample)
}

// CacheKey snaps both endpoints to s2 cells so nearby coordinates map to the
// same entry.
func CacheKey(from, to geo.Coordinate, mode pkg.OptimizationMode) string {
	fromCell := s2.CellIDFromLatLng(s2.LatLngFromDegrees(from.Lat, from.Lon)).Parent(cacheCellLevel)
	toCell := s2.CellIDFromLatLng(s2.LatLngFromDegrees(to.Lat, to.Lon)).Parent(cacheCellLevel)
	return fmt.Sprintf("route:%d:%d:%s", uint64(fromCell), uint64(toCell), mode)
}

type cacheEntry struct {
	sample   datastructure.RouteSample
	storedAt time.Time
}

// MemoryCache process-local TTL cache. expired entries are dropped lazily on
// read; Sweep evicts them in bulk.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &MemoryCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (c *MemoryCache) Get(_ context.Context, key string) (datastructure.RouteSample, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return datastructure.RouteSample{}, false
	}

	if c.now().Sub(entry.storedAt) >= c.ttl {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return datastructure.RouteSample{}, false
	}

	return entry.sample, true
}

func (c *MemoryCache) Put(_ context.Context, key string, sample datastructure.RouteSample) {
	c.mu.Lock()
	c.entries[key] = cacheEntry{sample: sample, storedAt: c.now()}
	c.mu.Unlock()
}

// Sweep evicts all expired entries, returns how many were dropped.
func (c *MemoryCache) Sweep() int {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	evicted := 0
	for key, entry := range c.entries {
		if now.Sub(entry.storedAt) >= c.ttl {
			delete(c.entries, key)
			evicted++
		}
	}
	return evicted
}

// StartSweeper runs Sweep every interval until ctx is canceled.
func (c *MemoryCache) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.Sweep()
			}
		}
	}()
}

func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
