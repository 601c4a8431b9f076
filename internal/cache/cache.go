// Package cache provides a small in-memory TTL cache used to front API reads.
package cache

import (
	"sync"
	"time"
)

// Cache stores values for a bounded time. A zero value is not usable; create
// instances with New. Whatever was stored is returned as-is until expiry,
// including nil results for lookups that found nothing.
type Cache[V any] struct {
	mu      sync.Mutex
	now     func() time.Time
	ttl     time.Duration
	entries map[string]entry[V]
}

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

func New[V any](ttl time.Duration) *Cache[V] {
	return NewWithClock[V](ttl, time.Now)
}

// NewWithClock allows tests to control time.
func NewWithClock[V any](ttl time.Duration, now func() time.Time) *Cache[V] {
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	if now == nil {
		now = time.Now
	}
	return &Cache[V]{
		now:     now,
		ttl:     ttl,
		entries: make(map[string]entry[V]),
	}
}

func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	if c.now().After(e.expiresAt) {
		delete(c.entries, key)
		var zero V
		return zero, false
	}
	return e.value, true
}

func (c *Cache[V]) Put(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry[V]{value: value, expiresAt: c.now().Add(c.ttl)}
}

// Invalidate drops every entry. Writes trade hit rate for correctness by
// wiping the whole namespace.
func (c *Cache[V]) Invalidate() {
	c.mu.Lock()
	c.entries = make(map[string]entry[V])
	c.mu.Unlock()
}
