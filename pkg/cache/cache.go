package cache

import (
	"sync"
	"time"
)

type cacheItem[T any] struct {
	value      T
	expiration time.Time // zero means the entry never expires
}

func (i cacheItem[T]) expired(now time.Time) bool {
	return !i.expiration.IsZero() && now.After(i.expiration)
}

// Cache is a thread-safe in-memory cache parameterised on value type.
// A non-positive TTL keeps entries until they are busted or the process exits.
type Cache[T any] struct {
	mu   sync.RWMutex
	data map[string]cacheItem[T]
	ttl  time.Duration
}

// New creates a cache whose entries live for defaultTTL (forever if <= 0).
func New[T any](defaultTTL time.Duration) *Cache[T] {
	return &Cache[T]{
		data: make(map[string]cacheItem[T]),
		ttl:  defaultTTL,
	}
}

// Get returns a cached value if present and not expired.
func (c *Cache[T]) Get(key string) (T, bool) {
	c.mu.RLock()
	item, ok := c.data[key]
	c.mu.RUnlock()
	if !ok {
		var zero T
		return zero, false
	}
	if item.expired(time.Now()) {
		c.mu.Lock()
		// re-check: a concurrent Put may have replaced the entry
		if cur, ok := c.data[key]; ok && cur.expired(time.Now()) {
			delete(c.data, key)
		}
		c.mu.Unlock()
		var zero T
		return zero, false
	}
	return item.value, true
}

// Put inserts or overwrites a cache entry using the default TTL.
func (c *Cache[T]) Put(key string, value T) {
	c.PutWithTTL(key, value, c.ttl)
}

// PutWithTTL inserts or overwrites a cache entry with an explicit TTL.
func (c *Cache[T]) PutWithTTL(key string, value T, ttl time.Duration) {
	item := cacheItem[T]{value: value}
	if ttl > 0 {
		item.expiration = time.Now().Add(ttl)
	}
	c.mu.Lock()
	c.data[key] = item
	c.mu.Unlock()
}

// Bust deletes a single entry from the cache.
func (c *Cache[T]) Bust(key string) {
	c.mu.Lock()
	delete(c.data, key)
	c.mu.Unlock()
}

// Len reports the number of stored entries, expired ones included until cleaned.
func (c *Cache[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

// StartCleaner periodically removes expired cache entries until stop is closed.
func (c *Cache[T]) StartCleaner(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.cleanupExpired()
		case <-stop:
			return
		}
	}
}

func (c *Cache[T]) cleanupExpired() {
	now := time.Now()
	c.mu.Lock()
	for k, v := range c.data {
		if v.expired(now) {
			delete(c.data, k)
		}
	}
	c.mu.Unlock()
}
