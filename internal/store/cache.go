// Package store implements the cache half of the entity stores: a full
// collection fetched on first read and dropped whenever a mutation succeeds.
package store

import (
	"context"
	"sync"
)

type Loader[T any] func(ctx context.Context) ([]T, error)

// Invalidator is implemented by every entity store; stores that own rows in
// other collections use it to mark those collections stale.
type Invalidator interface {
	Invalidate(op Op, id string)
}

type Cache[T any] struct {
	name string
	load Loader[T]
	bus  *Bus

	mu         sync.RWMutex
	items      []T
	loaded     bool
	generation uint64
}

func NewCache[T any](name string, load Loader[T], bus *Bus) *Cache[T] {
	return &Cache[T]{name: name, load: load, bus: bus}
}

func (c *Cache[T]) Name() string { return c.name }

// List returns the cached collection, fetching it when the cache is cold.
// The returned slice is a copy.
func (c *Cache[T]) List(ctx context.Context) ([]T, error) {
	c.mu.RLock()
	if c.loaded {
		out := append([]T(nil), c.items...)
		c.mu.RUnlock()
		return out, nil
	}
	gen := c.generation
	c.mu.RUnlock()

	items, err := c.load(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	// an invalidation during the fetch makes this result stale; serve it
	// once but keep the cache cold
	if c.generation == gen {
		c.items = items
		c.loaded = true
	}
	c.mu.Unlock()
	return append([]T(nil), items...), nil
}

// Filter lists the collection and keeps the items matching keep.
func (c *Cache[T]) Filter(ctx context.Context, keep func(T) bool) ([]T, error) {
	all, err := c.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(all))
	for _, it := range all {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out, nil
}

// Invalidate drops the cached collection and publishes the change.
func (c *Cache[T]) Invalidate(op Op, id string) {
	c.mu.Lock()
	c.items = nil
	c.loaded = false
	c.generation++
	c.mu.Unlock()

	c.bus.Publish(Event{Collection: c.name, Op: op, ID: id})
}

func (c *Cache[T]) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}
