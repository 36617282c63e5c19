package store

import (
	"sync"
	"time"

	"github.com/frostwatch/frostwatch/internal/weather"
)

// entry is one cached archive fetch.
type entry struct {
	result   weather.HistoryResult
	storedAt time.Time
}

// SeriesCache is a concurrency-safe in-memory cache of fetched history
// series keyed by request key. Historical archive data never changes, so
// entries stay valid until the TTL expires or the cache fills up.
type SeriesCache struct {
	mu sync.RWMutex

	data map[string]entry

	maxEntries int           // max number of cached series (0 = unlimited)
	ttl        time.Duration // max entry age (0 = never expires)

	now func() time.Time // test hook
}

// NewSeriesCache creates a SeriesCache with optional limits. maxEntries <= 0
// means unlimited; ttl <= 0 means entries never expire.
func NewSeriesCache(maxEntries int, ttl time.Duration) *SeriesCache {
	return &SeriesCache{
		data:       make(map[string]entry),
		maxEntries: maxEntries,
		ttl:        ttl,
		now:        time.Now,
	}
}

// Get returns the cached result for key, if present and fresh.
func (c *SeriesCache) Get(key string) (weather.HistoryResult, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.data[key]
	if !ok {
		return weather.HistoryResult{}, false
	}
	if c.ttl > 0 && c.now().Sub(e.storedAt) > c.ttl {
		return weather.HistoryResult{}, false
	}
	return e.result, true
}

// Put stores a result. When the cache is full the oldest entry is evicted.
func (c *SeriesCache) Put(key string, result weather.HistoryResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.maxEntries > 0 && len(c.data) >= c.maxEntries {
		if _, exists := c.data[key]; !exists {
			c.evictOldestLocked()
		}
	}

	c.data[key] = entry{result: result, storedAt: c.now()}
}

func (c *SeriesCache) evictOldestLocked() {
	var (
		oldestKey string
		oldestAt  time.Time
		found     bool
	)
	for k, e := range c.data {
		if !found || e.storedAt.Before(oldestAt) {
			oldestKey, oldestAt, found = k, e.storedAt, true
		}
	}
	if found {
		delete(c.data, oldestKey)
	}
}

// Prune drops expired entries and reports how many were removed.
func (c *SeriesCache) Prune() int {
	if c.ttl <= 0 {
		return 0
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	cutoff := c.now().Add(-c.ttl)
	removed := 0
	for k, e := range c.data {
		if e.storedAt.Before(cutoff) {
			delete(c.data, k)
			removed++
		}
	}
	return removed
}

// Len reports the number of cached series, fresh or not.
func (c *SeriesCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}
