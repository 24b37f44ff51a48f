// Package lru implements a fixed-capacity cache that evicts the least
// recently used entry.
//
// The cache is a linkedmap.Map with a capacity bound on top: the order list
// runs from the least recently used entry (head) to the most recently used
// (tail), and every Get or Put moves its key to the tail.
package lru

import (
	"fmt"
	"iter"

	"github.com/krisalay/lru-cache/hashing"
	"github.com/krisalay/lru-cache/hashmap"
	"github.com/krisalay/lru-cache/linkedmap"
	"github.com/krisalay/lru-cache/types"
)

/*
Cache is a least-recently-used cache.

BEHAVIOR:
---------
- Get on a present key moves it to the most-recently-used end.
- Put inserts or updates a key and moves it to the most-recently-used end,
  then evicts at most one entry from the least-recently-used end if the
  cache is over capacity.
- A miss never changes the cache.

Cache is NOT safe for concurrent use. Guard it with one mutex, or use
cache.ShardedCache.
*/
type Cache[K, V any] struct {
	entries  *linkedmap.Map[K, V]
	capacity int

	metrics types.Metrics
	onEvict func(K, V)
}

// Option configures a Cache.
type Option[K, V any] func(*Cache[K, V], *[]hashmap.Option)

// WithMetrics reports hits, misses and evictions to m.
func WithMetrics[K, V any](m types.Metrics) Option[K, V] {
	return func(c *Cache[K, V], _ *[]hashmap.Option) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithEvictionCallback calls fn with every entry evicted for capacity.
// fn runs before Put returns and must not call back into the cache.
func WithEvictionCallback[K, V any](fn func(K, V)) Option[K, V] {
	return func(c *Cache[K, V], _ *[]hashmap.Option) {
		c.onEvict = fn
	}
}

// WithSizeClasses replaces the slot counts the underlying hash table steps
// through. See hashmap.WithSizeClasses.
func WithSizeClasses[K, V any](sizes ...int) Option[K, V] {
	return func(_ *Cache[K, V], opts *[]hashmap.Option) {
		*opts = append(*opts, hashmap.WithSizeClasses(sizes...))
	}
}

/*
New creates a cache holding at most capacity entries.

Capacity 0 is legal: every Put is immediately followed by the eviction of
the entry it just wrote.

ERRORS:
-------
- ErrInvalidCapacity: capacity < 0
- ErrCapacityExceeded: the hash table could never hold capacity+1 entries,
  which Put needs transiently before it evicts. Rejecting this here is what
  lets Put never fail.
*/
func New[K, V any](capacity int, hash types.Hasher[K], equal types.Equal[K], opts ...Option[K, V]) (*Cache[K, V], error) {
	if capacity < 0 {
		return nil, fmt.Errorf("capacity %d: %w", capacity, types.ErrInvalidCapacity)
	}

	c := &Cache[K, V]{
		capacity: capacity,
		metrics:  types.NoopMetrics{},
	}
	var mapOpts []hashmap.Option
	for _, opt := range opts {
		opt(c, &mapOpts)
	}
	c.entries = linkedmap.New[K, V](hash, equal, mapOpts...)

	if capacity >= c.entries.MaxLen() {
		return nil, fmt.Errorf("capacity %d needs more than %d slots: %w", capacity, c.entries.MaxLen(), types.ErrCapacityExceeded)
	}
	return c, nil
}

// NewComparable creates a cache whose keys are compared with ==.
func NewComparable[K comparable, V any](capacity int, hash types.Hasher[K], opts ...Option[K, V]) (*Cache[K, V], error) {
	return New[K, V](capacity, hash, hashing.Equal[K], opts...)
}

// Get returns the value stored under key and marks key as most recently used.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	v, ok := c.entries.Get(key)
	if !ok {
		c.metrics.Miss()
		return v, false
	}
	c.entries.Touch(key)
	c.metrics.Hit()
	return v, true
}

// Peek returns the value stored under key without touching it.
func (c *Cache[K, V]) Peek(key K) (V, bool) {
	return c.entries.Get(key)
}

// Contains reports whether key is cached, without touching it.
func (c *Cache[K, V]) Contains(key K) bool {
	return c.entries.Count(key) == 1
}

// Put stores value under key, marks key as most recently used, and evicts
// the least recently used entry if the cache is over capacity.
func (c *Cache[K, V]) Put(key K, value V) {
	if _, err := c.entries.Insert(key, value); err != nil {
		// New guarantees the table can hold capacity+1 keys.
		panic(fmt.Sprintf("lru: put into a cache of capacity %d: %v", c.capacity, err))
	}
	if c.entries.Len() > c.capacity {
		c.evictOldest()
	}
}

func (c *Cache[K, V]) evictOldest() {
	k, v, err := c.entries.PopFront()
	if err != nil {
		return
	}
	c.metrics.Eviction()
	if c.onEvict != nil {
		c.onEvict(k, v)
	}
}

// Remove deletes key and reports whether it was present. It is not counted
// as an eviction.
func (c *Cache[K, V]) Remove(key K) bool {
	return c.entries.Delete(key)
}

// Oldest returns the least recently used entry without touching it.
func (c *Cache[K, V]) Oldest() (K, V, bool) {
	return c.entries.Front()
}

// Len returns the number of cached entries.
func (c *Cache[K, V]) Len() int { return c.entries.Len() }

// Cap returns the capacity the cache was created with.
func (c *Cache[K, V]) Cap() int { return c.capacity }

// Keys returns the cached keys from least to most recently used.
//
// This is a debug helper; it does not touch any key.
func (c *Cache[K, V]) Keys() []K { return c.entries.Keys() }

// All iterates from the least to the most recently used entry without
// touching any key. The cache must not be modified during iteration.
func (c *Cache[K, V]) All() iter.Seq2[K, V] { return c.entries.All() }

// Purge removes every entry. Purged entries are not evictions.
func (c *Cache[K, V]) Purge() { c.entries.Clear() }

// Verify checks the internal consistency of the cache.
func (c *Cache[K, V]) Verify() error {
	if err := c.entries.Verify(); err != nil {
		return err
	}
	if c.entries.Len() > c.capacity {
		return fmt.Errorf("holds %d entries, capacity is %d", c.entries.Len(), c.capacity)
	}
	return nil
}
