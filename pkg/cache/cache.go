// Package cache provides an in-memory LRU cache for analysis reports,
// keyed by graph fingerprint. Entries expire on TTL so a long-lived
// service does not serve reports for catalogs that changed shape.
package cache

import (
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
)

// Config controls cache capacity and entry lifetime.
type Config struct {
	MaxEntries int
	TTL        time.Duration
}

// DefaultConfig returns the configuration used when none is supplied.
func DefaultConfig() *Config {
	return &Config{
		MaxEntries: 512,
		TTL:        5 * time.Minute,
	}
}

// Cache is a fixed-size LRU with TTL expiry and hit/miss accounting.
// The zero value is not usable; construct with New.
type Cache[V any] struct {
	lru    *lru.LRU[string, V]
	hits   atomic.Int64
	misses atomic.Int64
}

// New creates a cache. A nil config selects DefaultConfig.
func New[V any](config *Config) *Cache[V] {
	if config == nil {
		config = DefaultConfig()
	}
	maxEntries := config.MaxEntries
	if maxEntries < 1 {
		maxEntries = 1
	}
	return &Cache[V]{
		lru: lru.NewLRU[string, V](maxEntries, nil, config.TTL),
	}
}

// Get retrieves a cached value by key.
func (c *Cache[V]) Get(key string) (V, bool) {
	value, ok := c.lru.Get(key)
	if !ok {
		c.misses.Add(1)
		return value, false
	}
	c.hits.Add(1)
	return value, true
}

// Set stores a value under key, evicting the least recently used entry
// when the cache is full.
func (c *Cache[V]) Set(key string, value V) {
	c.lru.Add(key, value)
}

// Purge drops every entry. Counters are kept.
func (c *Cache[V]) Purge() {
	c.lru.Purge()
}

// Len returns the current number of live entries.
func (c *Cache[V]) Len() int {
	return c.lru.Len()
}

// Stats reports cache effectiveness since process start.
type Stats struct {
	Hits    int64   `json:"hits"`
	Misses  int64   `json:"misses"`
	Entries int     `json:"entries"`
	HitRate float64 `json:"hit_rate"`
}

// Stats returns a snapshot of the counters.
func (c *Cache[V]) Stats() Stats {
	stats := Stats{
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
		Entries: c.lru.Len(),
	}
	if total := stats.Hits + stats.Misses; total > 0 {
		stats.HitRate = float64(stats.Hits) / float64(total)
	}
	return stats
}
