// ============================================================================
// chronos - Civil time and timezone library
// ============================================================================
//
// Package:     zonecache
// Description: TTL cache for resolved zone providers
// Created:     2025-12-14
// License:     MIT
// ============================================================================

// Package zonecache memoizes resolved zone providers for a bounded time so
// repeated lookups of one name skip the store and the tz database.
package zonecache

import (
	"sync"
	"time"

	"github.com/msto63/chronos/pkg/civil"
	"github.com/msto63/chronos/pkg/instant"
	"github.com/msto63/chronos/pkg/zone"
)

// Entry represents a cached item with expiration
type Entry[V any] struct {
	Value   V
	Expires instant.Instant[zone.UTCZone]
	never   bool
}

// expired reports whether e has expired at now.
func (e *Entry[V]) expired(now instant.Instant[zone.UTCZone]) bool {
	return !e.never && !now.Before(e.Expires)
}

// Cache is a thread-safe in-memory cache with TTL support
type Cache[V any] struct {
	mu       sync.Mutex
	items    map[string]*Entry[V]
	maxItems int
	ttl      civil.Duration
	clock    instant.Clock

	// Metrics
	hits   int64
	misses int64
}

// Config holds cache configuration
type Config struct {
	MaxItems int
	TTL      time.Duration
}

// DefaultConfig returns default cache configuration
func DefaultConfig() Config {
	return Config{
		MaxItems: 256,
		TTL:      5 * time.Minute,
	}
}

// New creates a new cache reading time from clock. Expired entries are
// dropped lazily on access and when the cache is full.
func New[V any](cfg Config, clock instant.Clock) *Cache[V] {
	if cfg.MaxItems <= 0 {
		cfg.MaxItems = DefaultConfig().MaxItems
	}
	if cfg.TTL < 0 {
		cfg.TTL = DefaultConfig().TTL
	}
	return &Cache[V]{
		items:    make(map[string]*Entry[V]),
		maxItems: cfg.MaxItems,
		ttl:      civil.FromStd(cfg.TTL),
		clock:    clock,
	}
}

func (c *Cache[V]) now() instant.Instant[zone.UTCZone] {
	return instant.Now(c.clock, zone.UTC)
}

// Get retrieves a value from the cache
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.items[key]
	if ok && entry.expired(c.now()) {
		delete(c.items, key)
		ok = false
	}
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}
	c.hits++
	return entry.Value, true
}

// Set stores a value in the cache with the default TTL. A zero TTL keeps
// the value until it is evicted.
func (c *Cache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if _, exists := c.items[key]; !exists && len(c.items) >= c.maxItems {
		c.evict(now)
	}

	e := &Entry[V]{Value: value, never: c.ttl.IsZero()}
	if !e.never {
		exp, ok := now.CheckedAdd(c.ttl)
		e.Expires, e.never = exp, !ok
	}
	c.items[key] = e
}

// Delete removes a value from the cache
func (c *Cache[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

// Clear removes all items from the cache
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]*Entry[V])
}

// Size returns the number of items in the cache
func (c *Cache[V]) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Stats returns cache statistics
func (c *Cache[V]) Stats() (hits, misses int64, hitRate float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	hits = c.hits
	misses = c.misses
	total := hits + misses
	if total > 0 {
		hitRate = float64(hits) / float64(total) * 100
	}
	return
}

// evict drops expired entries, or the entry closest to expiry when none
// has expired. Must be called with the lock held.
func (c *Cache[V]) evict(now instant.Instant[zone.UTCZone]) {
	var oldestKey string
	var oldest *Entry[V]
	for key, e := range c.items {
		if e.expired(now) {
			delete(c.items, key)
			continue
		}
		if e.never {
			if oldest == nil {
				oldestKey, oldest = key, e
			}
			continue
		}
		if oldest == nil || oldest.never || e.Expires.Before(oldest.Expires) {
			oldestKey, oldest = key, e
		}
	}
	if len(c.items) >= c.maxItems && oldest != nil {
		delete(c.items, oldestKey)
	}
}

// GetOrSet gets a value or computes and stores it if not present. Errors
// are not cached.
func (c *Cache[V]) GetOrSet(key string, fn func() (V, error)) (V, error) {
	if val, ok := c.Get(key); ok {
		return val, nil
	}
	val, err := fn()
	if err != nil {
		return val, err
	}
	c.Set(key, val)
	return val, nil
}
