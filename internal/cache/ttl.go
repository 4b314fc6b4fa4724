// Package cache holds short-lived in-memory copies of gateway reads.
package cache

import (
	"context"
	"sync"
	"time"
)

// Loader fetches a fresh value on a miss.
type Loader[T any] func(ctx context.Context) (T, error)

// TTL caches one value for a fixed duration. A zero ttl disables caching.
// It is safe for concurrent use; concurrent misses may load more than once.
// A load that overlaps an Invalidate is returned to its caller but not kept.
type TTL[T any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	value   T
	expires time.Time
	valid   bool
	gen     uint64
}

func NewTTL[T any](ttl time.Duration) *TTL[T] {
	return &TTL[T]{ttl: ttl, now: time.Now}
}

// WithClock replaces time.Now.
func (c *TTL[T]) WithClock(now func() time.Time) *TTL[T] {
	c.now = now
	return c
}

// Get returns the cached value, calling load when it is missing or stale.
// Failed loads are not cached.
func (c *TTL[T]) Get(ctx context.Context, load Loader[T]) (T, error) {
	c.mu.Lock()
	if c.valid && c.now().Before(c.expires) {
		v := c.value
		c.mu.Unlock()
		return v, nil
	}
	gen := c.gen
	c.mu.Unlock()

	v, err := load(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	if c.ttl <= 0 {
		return v, nil
	}

	c.mu.Lock()
	if c.gen == gen {
		c.value = v
		c.expires = c.now().Add(c.ttl)
		c.valid = true
	}
	c.mu.Unlock()
	return v, nil
}

// Invalidate drops the cached value so the next Get reloads.
func (c *TTL[T]) Invalidate() {
	c.mu.Lock()
	var zero T
	c.value = zero
	c.valid = false
	c.gen++
	c.mu.Unlock()
}
