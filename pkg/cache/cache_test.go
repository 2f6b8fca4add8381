package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	t time.Time
}

func (f *fakeClock) Now() time.Time { return f.t }

func (f *fakeClock) Advance(d time.Duration) { f.t = f.t.Add(d) }

func TestLRUCache(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		ttl      time.Duration
		actions  func(t *testing.T, c *LRUCache, clock *fakeClock)
	}{
		{
			name:     "set and get within TTL",
			capacity: 2,
			ttl:      time.Minute,
			actions: func(t *testing.T, c *LRUCache, clock *fakeClock) {
				c.Set("order-1", []byte("1"))
				v, ok := c.Get("order-1")
				assert.True(t, ok)
				assert.Equal(t, "1", string(v))
			},
		},
		{
			name:     "get after expiration",
			capacity: 2,
			ttl:      time.Minute,
			actions: func(t *testing.T, c *LRUCache, clock *fakeClock) {
				c.Set("order-1", []byte("1"))
				clock.Advance(2 * time.Minute)
				_, ok := c.Get("order-1")
				assert.False(t, ok)
				assert.Equal(t, 0, c.Size())
			},
		},
		{
			name:     "evict least recently used when over capacity",
			capacity: 2,
			ttl:      time.Minute,
			actions: func(t *testing.T, c *LRUCache, clock *fakeClock) {
				c.Set("a", []byte("1"))
				c.Set("b", []byte("2"))
				c.Get("a")
				c.Set("c", []byte("3"))

				_, ok := c.Get("b")
				assert.False(t, ok, "b should be evicted")
				_, ok = c.Get("a")
				assert.True(t, ok)
				_, ok = c.Get("c")
				assert.True(t, ok)
			},
		},
		{
			name:     "update value resets TTL",
			capacity: 2,
			ttl:      time.Minute,
			actions: func(t *testing.T, c *LRUCache, clock *fakeClock) {
				c.Set("a", []byte("1"))
				clock.Advance(40 * time.Second)
				c.Set("a", []byte("2"))
				clock.Advance(40 * time.Second)
				v, ok := c.Get("a")
				assert.True(t, ok)
				assert.Equal(t, "2", string(v))
			},
		},
		{
			name:     "delete invalidates key",
			capacity: 2,
			ttl:      time.Minute,
			actions: func(t *testing.T, c *LRUCache, clock *fakeClock) {
				c.Set("order-1", []byte("active"))
				c.Delete("order-1")
				c.Delete("missing")
				_, ok := c.Get("order-1")
				assert.False(t, ok)
				assert.Equal(t, 0, c.Size())
			},
		},
		{
			name:     "set if version without invalidation",
			capacity: 2,
			ttl:      time.Minute,
			actions: func(t *testing.T, c *LRUCache, clock *fakeClock) {
				version := c.Version()
				assert.True(t, c.SetIfVersion("order-1", []byte("active"), version))
				v, ok := c.Get("order-1")
				assert.True(t, ok)
				assert.Equal(t, "active", string(v))
			},
		},
		{
			name:     "set if version skipped after delete",
			capacity: 2,
			ttl:      time.Minute,
			actions: func(t *testing.T, c *LRUCache, clock *fakeClock) {
				version := c.Version()
				c.Delete("order-1")
				assert.Greater(t, c.Version(), version)

				assert.False(t, c.SetIfVersion("order-1", []byte("active"), version))
				_, ok := c.Get("order-1")
				assert.False(t, ok)

				assert.True(t, c.SetIfVersion("order-1", []byte("closed"), c.Version()))
			},
		},
		{
			name:     "cleanup removes only expired",
			capacity: 3,
			ttl:      time.Minute,
			actions: func(t *testing.T, c *LRUCache, clock *fakeClock) {
				c.Set("old", []byte("1"))
				clock.Advance(50 * time.Second)
				c.Set("fresh", []byte("2"))
				clock.Advance(20 * time.Second)

				c.cleanup()

				assert.Equal(t, 1, c.Size())
				_, ok := c.Get("fresh")
				assert.True(t, ok)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := &fakeClock{t: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
			c := NewLRUCache(tt.capacity, tt.ttl)
			c.now = clock.Now
			tt.actions(t, c, clock)
		})
	}
}
