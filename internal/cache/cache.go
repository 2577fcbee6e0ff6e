package cache

import (
	"sync"

	"github.com/csams/tmtext/internal/markup"
	"github.com/golang/groupcache/lru"
	"golang.org/x/sync/singleflight"
)

// Cache memoizes markup.Parse results in a bounded LRU.
// The same display names are rendered over and over while the list redraws.
type Cache struct {
	mu       sync.Mutex
	capacity int
	entries  *lru.Cache
	group    singleflight.Group

	hits      uint64
	misses    uint64
	evictions uint64
}

// Stats is a point-in-time snapshot of cache counters
type Stats struct {
	Hits      uint64 `json:"hits"`
	Misses    uint64 `json:"misses"`
	Evictions uint64 `json:"evictions"`
	Size      int    `json:"size"`
	Capacity  int    `json:"capacity"`
}

// New creates a cache holding at most capacity parsed strings.
// A capacity <= 0 disables storage and every Get parses afresh.
func New(capacity int) *Cache {
	c := &Cache{capacity: capacity}
	if capacity > 0 {
		c.entries = lru.New(capacity)
		c.entries.OnEvicted = func(lru.Key, interface{}) {
			c.evictions++ // called with mu held
		}
	}
	return c
}

// Get returns the runs for s. The returned slice is shared between callers
// and must not be modified; appending to it always reallocates.
func (c *Cache) Get(s string) []markup.Run {
	if c.entries == nil {
		c.mu.Lock()
		c.misses++
		c.mu.Unlock()
		return markup.Parse(s)
	}

	c.mu.Lock()
	if v, ok := c.entries.Get(s); ok {
		c.hits++
		c.mu.Unlock()
		return v.([]markup.Run)
	}
	c.misses++
	c.mu.Unlock()

	v, _, _ := c.group.Do(s, func() (interface{}, error) {
		runs := markup.Parse(s)
		runs = runs[:len(runs):len(runs)]

		c.mu.Lock()
		c.entries.Add(s, runs)
		c.mu.Unlock()
		return runs, nil
	})
	return v.([]markup.Run)
}

// Purge drops every entry. Dropped entries count as evictions.
func (c *Cache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entries != nil {
		c.entries.Clear()
	}
}

// Stats returns the current counters
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := Stats{
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
		Capacity:  c.capacity,
	}
	if c.entries != nil {
		st.Size = c.entries.Len()
	}
	return st
}
