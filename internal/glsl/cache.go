// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"container/list"
	"sync"

	"github.com/gogpu/gputypes"
)

// DefaultCacheCapacity is the number of units a Cache keeps when created
// with a non-positive capacity.
const DefaultCacheCapacity = 64

// Cache memoizes Parse by stage and source text, dropping the least
// recently used unit once it holds more than its capacity. Failed parses
// are cached too, so a broken shader reports the same log every time.
//
// Units returned from a Cache are shared and must not be modified.
// Cache is safe for concurrent use.
type Cache struct {
	mu       sync.Mutex
	capacity int
	entries  map[cacheKey]*list.Element
	lru      *list.List // front is most recent

	stats CacheStats
}

// CacheStats counts cache traffic.
type CacheStats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

type cacheKey struct {
	stage  gputypes.ShaderStage
	source string
}

type cacheEntry struct {
	key  cacheKey
	unit *Unit
	err  error
}

// NewCache creates a cache holding up to capacity units.
func NewCache(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	return &Cache{
		capacity: capacity,
		entries:  make(map[cacheKey]*list.Element),
		lru:      list.New(),
	}
}

// Parse returns the cached result for stage and source, parsing on a miss.
func (c *Cache) Parse(stage gputypes.ShaderStage, source string) (*Unit, error) {
	key := cacheKey{stage: stage, source: source}

	c.mu.Lock()
	if el, ok := c.entries[key]; ok {
		c.lru.MoveToFront(el)
		c.stats.Hits++
		e := el.Value.(*cacheEntry)
		c.mu.Unlock()
		return e.unit, e.err
	}
	c.stats.Misses++
	c.mu.Unlock()

	// Parse outside the lock; a racing miss on the same key parses twice
	// and the later result wins.
	unit, err := Parse(stage, source)

	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.entries[key]; ok {
		c.lru.Remove(el)
		delete(c.entries, key)
	}
	for c.lru.Len() >= c.capacity {
		oldest := c.lru.Back()
		c.lru.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry).key)
		c.stats.Evictions++
	}
	c.entries[key] = c.lru.PushFront(&cacheEntry{key: key, unit: unit, err: err})
	return unit, err
}

// Len returns the number of cached units.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// Stats returns a snapshot of the counters.
func (c *Cache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// Clear drops every cached unit. Counters are kept.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[cacheKey]*list.Element)
	c.lru.Init()
}
