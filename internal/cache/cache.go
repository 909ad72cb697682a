// Package cache holds in-memory lookups for hot read paths.
package cache

import (
	"sync"
	"time"
)

// Cache is a concurrency-safe key/value store with per-entry expiry.
type Cache[K comparable, V any] interface {
	Get(key K) (V, bool)
	Set(key K, value V, ttl time.Duration)
	Delete(key K)
	Purge()
	Len() int
}

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

type ttlCache[K comparable, V any] struct {
	mu    sync.RWMutex
	items map[K]entry[V]
	now   func() time.Time
}

// NewTTLCache returns an empty cache reading time from now. A nil now uses
// time.Now.
func NewTTLCache[K comparable, V any](now func() time.Time) Cache[K, V] {
	if now == nil {
		now = time.Now
	}
	return &ttlCache[K, V]{
		items: make(map[K]entry[V]),
		now:   now,
	}
}

func (c *ttlCache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	item, ok := c.items[key]
	c.mu.RUnlock()

	var zero V
	if !ok {
		return zero, false
	}
	if !item.expiresAt.IsZero() && !c.now().Before(item.expiresAt) {
		c.mu.Lock()
		if current, still := c.items[key]; still && current.expiresAt.Equal(item.expiresAt) {
			delete(c.items, key)
		}
		c.mu.Unlock()
		return zero, false
	}
	return item.value, true
}

// Set stores value for ttl. A non-positive ttl keeps the entry until it is
// deleted.
func (c *ttlCache[K, V]) Set(key K, value V, ttl time.Duration) {
	item := entry[V]{value: value}
	if ttl > 0 {
		item.expiresAt = c.now().Add(ttl)
	}

	c.mu.Lock()
	c.items[key] = item
	c.mu.Unlock()
}

func (c *ttlCache[K, V]) Delete(key K) {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
}

func (c *ttlCache[K, V]) Purge() {
	c.mu.Lock()
	c.items = make(map[K]entry[V])
	c.mu.Unlock()
}

func (c *ttlCache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
