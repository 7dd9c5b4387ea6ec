package service

import (
	"sync/atomic"

	"myinventory/domain"
	"myinventory/helpers"

	lru "github.com/hashicorp/golang-lru/v2"
)

// TickSource hands out strictly increasing recency ticks. One source is shared by every
// region's WindowCache so ticks are comparable process-wide.
type TickSource struct {
	last atomic.Uint64
}

// Next returns a tick greater than every tick returned before.
func (t *TickSource) Next() uint64 {
	return t.last.Add(1)
}

type windowEntry struct {
	records []domain.InstanceRecord
	tick    atomic.Uint64
}

// WindowCache is the bounded LRU of sorted windows of one region.
// Len never exceeds the capacity; a full cache evicts the entry with the smallest tick.
type WindowCache struct {
	entries *lru.Cache[domain.CacheKey, *windowEntry]
	ticks   *TickSource
	metrics *Metrics
}

// NewWindowCache creates a cache holding at most capacity windows. Panics on non-positive capacity
// or nil ticks/metrics.
//
// Called from RegionStore when a region is first seen.
func NewWindowCache(capacity int, ticks *TickSource, metrics *Metrics) *WindowCache {
	entries, err := lru.New[domain.CacheKey, *windowEntry](
		helpers.PositivePanic(capacity, "service.window_cache.go: capacity must be positive"))
	if err != nil {
		panic(err)
	}
	return &WindowCache{
		entries: entries,
		ticks:   helpers.NilPanic(ticks, "service.window_cache.go: ticks is required"),
		metrics: helpers.NilPanic(metrics, "service.window_cache.go: metrics is required"),
	}
}

// Has reports whether a window for key is cached without touching its recency.
func (c *WindowCache) Has(key domain.CacheKey) bool {
	return c.entries.Contains(key)
}

// Get returns the window for key and marks it most recently used.
func (c *WindowCache) Get(key domain.CacheKey) (domain.Window, bool) {
	e, ok := c.entries.Get(key)
	if !ok {
		return domain.Window{}, false
	}
	tick := c.ticks.Next()
	e.tick.Store(tick)
	return domain.Window{Records: e.records, Tick: tick}, true
}

// Set stores records under key with a fresh tick, evicting the least recently used window when full.
func (c *WindowCache) Set(key domain.CacheKey, records []domain.InstanceRecord) domain.Window {
	e := &windowEntry{records: records}
	tick := c.ticks.Next()
	e.tick.Store(tick)
	if evicted := c.entries.Add(key, e); evicted {
		c.metrics.windowEvictions.Inc()
	}
	return domain.Window{Records: records, Tick: tick}
}

// Tick returns the recency tick of the window for key without touching it.
func (c *WindowCache) Tick(key domain.CacheKey) (uint64, bool) {
	e, ok := c.entries.Peek(key)
	if !ok {
		return 0, false
	}
	return e.tick.Load(), true
}

func (c *WindowCache) IsEmpty() bool {
	return c.entries.Len() == 0
}

func (c *WindowCache) Len() int {
	return c.entries.Len()
}

// Clear drops every window.
func (c *WindowCache) Clear() {
	c.entries.Purge()
}
