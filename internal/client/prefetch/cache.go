// Package prefetch warms a keyed cache with the lists a page needs before it renders.
package prefetch

import (
	"context"
	"sync"
	"time"
)

// Entry is a cached response.
type Entry struct {
	Data      any
	FetchedAt time.Time
}

// FetchFunc loads the data stored under a cache key.
type FetchFunc func(ctx context.Context) (any, error)

// Cache holds the latest response per key.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]Entry
	now     func() time.Time
}

// NewCache creates an empty Cache.
func NewCache() *Cache {
	return &Cache{
		entries: make(map[string]Entry),
		now:     time.Now,
	}
}

// Get returns the entry stored under key.
func (c *Cache) Get(key string) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	return e, ok
}

// Set replaces the entry stored under key.
func (c *Cache) Set(key string, data any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = Entry{Data: data, FetchedAt: c.now()}
}

// Fetch returns the cached data for key, calling fetch when nothing is cached
// or when force is set. A failed fetch leaves any earlier entry in place.
func (c *Cache) Fetch(ctx context.Context, key string, fetch FetchFunc, force bool) (any, error) {
	if !force {
		if e, ok := c.Get(key); ok {
			return e.Data, nil
		}
	}

	data, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	c.Set(key, data)
	return data, nil
}
