// Package cache provides a TTL cache with explicit invalidation.
//
// Report payloads are cached under their query key and tagged with the ids
// of the entities they were computed from. Mutations invalidate by entity
// id instead of refreshing everything on an interval.
package cache

import (
	"os"
	"sync"
	"time"

	"golang.org/x/exp/slices"
)

type entry[T any] struct {
	value   T
	expires time.Time
	tags    []string
}

// Cache is a TTL cache safe for concurrent use.
type Cache[T any] struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]entry[T]
}

// New returns an empty cache whose entries expire after ttl.
func New[T any](ttl time.Duration) *Cache[T] {
	return &Cache[T]{
		ttl:     ttl,
		entries: make(map[string]entry[T]),
	}
}

// Get retrieves a value. Expired entries are treated as absent.
func (c *Cache[T]) Get(key string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || time.Now().After(e.expires) {
		var zero T
		return zero, false
	}

	return e.value, true
}

// Set stores a value under key. The tags are the ids of the entities the
// value was derived from, they select the entry for invalidation.
//
// Every write also sweeps expired entries, so the cache never grows past
// the keys written within one TTL window.
func (c *Cache[T]) Set(key string, value T, tags ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cleanExpired(time.Now())

	c.entries[key] = entry[T]{
		value:   value,
		expires: time.Now().Add(c.ttl),
		tags:    tags,
	}
}

// Invalidate drops every entry that carries at least one of the given tags.
func (c *Cache[T]) Invalidate(tags ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key, e := range c.entries {
		for _, tag := range tags {
			if slices.Contains(e.tags, tag) {
				delete(c.entries, key)
				break
			}
		}
	}
}

// Flush drops every entry.
func (c *Cache[T]) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]entry[T])
}

// Len returns the number of entries, including not yet cleaned expired ones.
func (c *Cache[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

// CleanExpired removes expired entries and returns how many were removed.
func (c *Cache[T]) CleanExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.cleanExpired(time.Now())
}

// cleanExpired needs c.mu held.
func (c *Cache[T]) cleanExpired(now time.Time) int {
	cleaned := 0
	for key, e := range c.entries {
		if now.After(e.expires) {
			delete(c.entries, key)
			cleaned++
		}
	}

	return cleaned
}

// TTLFromEnv parses a duration from the environment, falling back when the
// variable is unset or unparseable.
func TTLFromEnv(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	ttl, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}

	return ttl
}
