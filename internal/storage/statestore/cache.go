package statestore

import (
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// cacheItem is a cached entry value with its load time.
type cacheItem struct {
	value    []byte
	loadedAt time.Time
}

// Cache is an LRU read cache in front of a backend. Entries expire after
// the configured TTL so a long-idle store does not serve arbitrarily stale
// reads after external repair of the backing files.
type Cache struct {
	entries *lru.Cache[Key, cacheItem]
	ttl     time.Duration

	hits   uint64
	misses uint64
}

// NewCache creates a cache holding at most size entries.
func NewCache(size int, ttl time.Duration) (*Cache, error) {
	entries, err := lru.New[Key, cacheItem](size)
	if err != nil {
		return nil, err
	}
	return &Cache{entries: entries, ttl: ttl}, nil
}

// Get returns the cached value and true on a hit.
func (c *Cache) Get(key Key) ([]byte, bool) {
	item, ok := c.entries.Get(key)
	if !ok {
		atomic.AddUint64(&c.misses, 1)
		return nil, false
	}
	if c.ttl > 0 && time.Since(item.loadedAt) > c.ttl {
		c.entries.Remove(key)
		atomic.AddUint64(&c.misses, 1)
		return nil, false
	}
	atomic.AddUint64(&c.hits, 1)
	return item.value, true
}

// Put stores a value in the cache.
func (c *Cache) Put(key Key, value []byte) {
	c.entries.Add(key, cacheItem{value: value, loadedAt: time.Now()})
}

// Remove drops a key from the cache.
func (c *Cache) Remove(key Key) {
	c.entries.Remove(key)
}

// Stats returns cumulative hit and miss counts.
func (c *Cache) Stats() (hits, misses uint64) {
	return atomic.LoadUint64(&c.hits), atomic.LoadUint64(&c.misses)
}
