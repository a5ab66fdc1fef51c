// Package cache provides a keyed time-to-live cache whose freshness window is
// chosen by the caller on each lookup.
package cache

import (
	"sync"
	"time"
)

// Observer receives cache outcome notifications. Implementations must be safe
// for concurrent use.
type Observer interface {
	Hit(key string)
	Miss(key string)
	Failed(key string)
}

type entry[V any] struct {
	value     V
	fetchedAt time.Time
}

// Cache maps a key to the last successfully fetched value and the time it was
// fetched. Entries are never evicted; they are only replaced by a newer
// successful fetch.
type Cache[V any] struct {
	mu       sync.RWMutex
	entries  map[string]entry[V]
	now      func() time.Time
	observer Observer
}

// Option configures a Cache.
type Option[V any] func(*Cache[V])

// WithClock overrides the wall clock, mainly for tests.
func WithClock[V any](now func() time.Time) Option[V] {
	return func(c *Cache[V]) {
		c.now = now
	}
}

// WithObserver registers an observer for hits, misses and failed fetches.
func WithObserver[V any](o Observer) Option[V] {
	return func(c *Cache[V]) {
		c.observer = o
	}
}

// New creates an empty cache.
func New[V any](opts ...Option[V]) *Cache[V] {
	c := &Cache[V]{
		entries: make(map[string]entry[V]),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetOrFetch returns the cached value for key when it is younger than maxAge.
// Otherwise fetch is invoked; on success its result replaces the entry, on
// failure the existing entry is left untouched and the error is returned.
//
// The lock is not held while fetch runs, so two callers racing on the same
// stale key may both fetch. The later write wins.
func (c *Cache[V]) GetOrFetch(key string, maxAge time.Duration, fetch func() (V, error)) (V, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if ok && c.now().Sub(e.fetchedAt) < maxAge {
		c.notify(key, Observer.Hit)
		return e.value, nil
	}
	c.notify(key, Observer.Miss)

	v, err := fetch()
	if err != nil {
		c.notify(key, Observer.Failed)
		var zero V
		return zero, err
	}

	c.mu.Lock()
	c.entries[key] = entry[V]{value: v, fetchedAt: c.now()}
	c.mu.Unlock()
	return v, nil
}

// Peek returns the stored entry regardless of age.
func (c *Cache[V]) Peek(key string) (V, time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	return e.value, e.fetchedAt, ok
}

// Len reports the number of stored entries.
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache[V]) notify(key string, fn func(Observer, string)) {
	if c.observer != nil {
		fn(c.observer, key)
	}
}
