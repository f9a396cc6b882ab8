package travel

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// DefaultCacheSize bounds the cache when no size is configured.
const DefaultCacheSize = 1024

// Key is an ordered pair of normalized locations.
type Key struct {
	Origin      string
	Destination string
}

// Cache memoizes travel estimates. It is safe for concurrent use, evicts the
// least recently used pair once full and, when ttl is positive, stops
// returning entries older than ttl.
type Cache struct {
	lru *expirable.LRU[Key, time.Duration]
}

// NewCache creates a cache holding at most size pairs. A non-positive size
// falls back to DefaultCacheSize and a non-positive ttl keeps entries until
// they are evicted or cleared.
func NewCache(size int, ttl time.Duration) *Cache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	if ttl < 0 {
		ttl = 0
	}
	return &Cache{lru: expirable.NewLRU[Key, time.Duration](size, nil, ttl)}
}

func (c *Cache) Get(k Key) (time.Duration, bool) {
	return c.lru.Get(k)
}

func (c *Cache) Put(k Key, d time.Duration) {
	c.lru.Add(k, d)
}

// Len returns the number of cached pairs.
func (c *Cache) Len() int {
	return c.lru.Len()
}

// Clear empties the cache.
func (c *Cache) Clear() {
	c.lru.Purge()
}
