// Package cache provides a small in-memory key/value cache with a fixed
// time-to-live per entry. The clock is injectable so expiry is testable
// without sleeping.
package cache

import (
	"sync"
	"time"
)

// Clock returns the current time. Production code uses time.Now.
type Clock func() time.Time

type entry[V any] struct {
	value    V
	storedAt time.Time
}

// TTLCache is a concurrent map whose entries expire a fixed duration after
// they were stored. A non-positive TTL disables the cache entirely: Get
// always misses and Put is a no-op.
type TTLCache[V any] struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     Clock
	entries map[string]entry[V]
}

// New creates a TTLCache using the real clock.
func New[V any](ttl time.Duration) *TTLCache[V] {
	return NewWithClock[V](ttl, time.Now)
}

// NewWithClock creates a TTLCache with an injected clock.
func NewWithClock[V any](ttl time.Duration, now Clock) *TTLCache[V] {
	return &TTLCache[V]{
		ttl:     ttl,
		now:     now,
		entries: make(map[string]entry[V]),
	}
}

// Get returns the cached value for key if it exists and has not expired.
func (c *TTLCache[V]) Get(key string) (V, bool) {
	var zero V
	if c.ttl <= 0 {
		return zero, false
	}

	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || c.now().Sub(e.storedAt) > c.ttl {
		return zero, false
	}
	return e.value, true
}

// Put stores value under key, resetting its expiry window.
func (c *TTLCache[V]) Put(key string, value V) {
	if c.ttl <= 0 {
		return
	}

	c.mu.Lock()
	c.entries[key] = entry[V]{value: value, storedAt: c.now()}
	c.mu.Unlock()
}

// Invalidate removes a single key.
func (c *TTLCache[V]) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Clear removes every entry.
func (c *TTLCache[V]) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]entry[V])
	c.mu.Unlock()
}

// Len reports the number of stored entries, expired ones included.
func (c *TTLCache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
