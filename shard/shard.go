package shard

import (
	"sync"

	"github.com/krisalay/lru-cache/lru"
)

/*
This file defines what a "Shard" is. A shard is a small, independent piece of the cache.
Instead of having: One big cache and one big lock
We split the cache into many shards. Each shard:
- Holds some portion of the data
- Has its own LRU order and its own capacity
- Has its own lock

lru.Cache is not safe for concurrent use, so every access to it goes through mu.
*/
type Shard[K, V any] struct {
	mu    sync.Mutex
	cache *lru.Cache[K, V]
}

func NewShard[K, V any](c *lru.Cache[K, V]) *Shard[K, V] {
	return &Shard[K, V]{cache: c}
}

func (s *Shard[K, V]) Get(key K) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Get(key)
}

func (s *Shard[K, V]) Put(key K, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Put(key, value)
}

func (s *Shard[K, V]) Remove(key K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Remove(key)
}

func (s *Shard[K, V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Len()
}

// Cap is immutable and needs no lock.
func (s *Shard[K, V]) Cap() int {
	return s.cache.Cap()
}

// Keys returns this shard's keys from least to most recently used.
func (s *Shard[K, V]) Keys() []K {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Keys()
}

// Do runs fn with the shard locked. fn must not retain c.
func (s *Shard[K, V]) Do(fn func(c *lru.Cache[K, V])) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.cache)
}

// Split divides capacity across n shards. The first capacity%n shards get
// one extra slot so the shard capacities add up to capacity.
func Split(capacity, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = capacity / n
		if i < capacity%n {
			out[i]++
		}
	}
	return out
}
