package cache

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_GetSet(t *testing.T) {
	c := New[string](nil)

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Set("k", "v")
	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", got)
}

func TestCache_Eviction(t *testing.T) {
	c := New[int](&Config{MaxEntries: 3, TTL: time.Minute})

	for i := 0; i < 5; i++ {
		c.Set(fmt.Sprintf("key-%d", i), i)
	}

	assert.Equal(t, 3, c.Len())

	// The two oldest entries were evicted.
	_, ok := c.Get("key-0")
	assert.False(t, ok)
	_, ok = c.Get("key-4")
	assert.True(t, ok)
}

func TestCache_TTLExpiry(t *testing.T) {
	c := New[string](&Config{MaxEntries: 10, TTL: 10 * time.Millisecond})

	c.Set("k", "v")
	time.Sleep(30 * time.Millisecond)

	_, ok := c.Get("k")
	assert.False(t, ok)
}

func TestCache_Stats(t *testing.T) {
	c := New[string](nil)
	c.Set("k", "v")

	c.Get("k")
	c.Get("k")
	c.Get("absent")

	stats := c.Stats()
	assert.Equal(t, int64(2), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.InDelta(t, 2.0/3.0, stats.HitRate, 0.001)
	assert.Equal(t, 1, stats.Entries)
}

func TestCache_Purge(t *testing.T) {
	c := New[string](nil)
	c.Set("a", "1")
	c.Set("b", "2")

	c.Purge()

	assert.Equal(t, 0, c.Len())
	_, ok := c.Get("a")
	assert.False(t, ok)
}
