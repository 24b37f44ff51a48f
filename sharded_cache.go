package cache

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/krisalay/lru-cache/lru"
	"github.com/krisalay/lru-cache/shard"
	"github.com/krisalay/lru-cache/types"
)

/*
ShardedCache is the concurrency-safe cache.
The LRU cache underneath is single-threaded, so this struct is the layer that connects:
- shards (one lock + one LRU cache each)
- shard selection
- read-through loading
- metrics and logging
*/
type ShardedCache[K, V any] struct {
	// shards are the actual storage units. Each shard is an independent mini-cache.
	shards []*shard.Shard[K, V]

	// selector decides which shard a key should go to.
	selector shard.Selector[K]

	// capacity is the maximum number of entries in the cache. This is divided across shards.
	capacity int

	loader    types.Loader[K, V]
	keyString func(K) string
	logger    zerolog.Logger

	// singleflight prevents multiple goroutines from loading the same key from the backing store simultaneously.
	sf singleflight.Group
}

// Option configures a ShardedCache.
type Option[K, V any] func(*settings[K, V])

type settings[K, V any] struct {
	loader      types.Loader[K, V]
	logger      zerolog.Logger
	metrics     types.Metrics
	keyString   func(K) string
	sizeClasses []int
}

// WithLoader enables GetOrLoad.
func WithLoader[K, V any](l types.Loader[K, V]) Option[K, V] {
	return func(s *settings[K, V]) { s.loader = l }
}

// WithLogger logs evictions (debug) and failed loads (warn) to l.
func WithLogger[K, V any](l zerolog.Logger) Option[K, V] {
	return func(s *settings[K, V]) { s.logger = l }
}

// WithMetrics reports hits, misses and evictions of every shard to m.
// m is called from many goroutines and must be safe for concurrent use.
func WithMetrics[K, V any](m types.Metrics) Option[K, V] {
	return func(s *settings[K, V]) { s.metrics = m }
}

// WithKeyString sets how keys are rendered for logs and for load
// deduplication. fn must map distinct keys to distinct strings. The default
// is fmt.Sprint.
func WithKeyString[K, V any](fn func(K) string) Option[K, V] {
	return func(s *settings[K, V]) { s.keyString = fn }
}

// WithSizeClasses sets the hash table size classes of every shard.
func WithSizeClasses[K, V any](sizes ...int) Option[K, V] {
	return func(s *settings[K, V]) { s.sizeClasses = sizes }
}

/*
NewShardedCache creates a cache of the given total capacity split across
the given number of shards. It panics if shards is not positive.
*/
func NewShardedCache[K, V any](
	shards int,
	capacity int,
	hash types.Hasher[K],
	equal types.Equal[K],
	opts ...Option[K, V],
) (*ShardedCache[K, V], error) {
	if shards <= 0 {
		panic("cache: shard count must be positive")
	}
	if capacity < 0 {
		return nil, fmt.Errorf("capacity %d: %w", capacity, types.ErrInvalidCapacity)
	}

	s := settings[K, V]{
		logger:    zerolog.Nop(),
		metrics:   types.NoopMetrics{},
		keyString: func(k K) string { return fmt.Sprint(k) },
	}
	for _, opt := range opts {
		opt(&s)
	}

	c := &ShardedCache[K, V]{
		shards:    make([]*shard.Shard[K, V], shards),
		selector:  shard.HashSelector[K]{Hash: hash},
		capacity:  capacity,
		loader:    s.loader,
		keyString: s.keyString,
		logger:    s.logger,
	}

	for i, size := range shard.Split(capacity, shards) {
		lruOpts := []lru.Option[K, V]{
			lru.WithMetrics[K, V](s.metrics),
			lru.WithEvictionCallback(c.logEviction),
		}
		if s.sizeClasses != nil {
			lruOpts = append(lruOpts, lru.WithSizeClasses[K, V](s.sizeClasses...))
		}
		l, err := lru.New(size, hash, equal, lruOpts...)
		if err != nil {
			return nil, fmt.Errorf("shard %d: %w", i, err)
		}
		c.shards[i] = shard.NewShard(l)
	}
	return c, nil
}

func (c *ShardedCache[K, V]) shardFor(key K) *shard.Shard[K, V] {
	return c.shards[c.selector.Select(key, len(c.shards))]
}

func (c *ShardedCache[K, V]) logEviction(key K, _ V) {
	if e := c.logger.Debug(); e.Enabled() {
		e.Str("key", c.keyString(key)).Msg("evicted")
	}
}

/*
Get retrieves a value from the cache and marks it as recently used within its shard.
*/
func (c *ShardedCache[K, V]) Get(key K) (V, bool) {
	return c.shardFor(key).Get(key)
}

/*
Put stores a value. If the key's shard is full, that shard evicts its least recently used key.
*/
func (c *ShardedCache[K, V]) Put(key K, value V) {
	c.shardFor(key).Put(key, value)
}

/*
Remove deletes a key from the cache immediately.
*/
func (c *ShardedCache[K, V]) Remove(key K) bool {
	return c.shardFor(key).Remove(key)
}

/*
GetOrLoad returns the cached value, loading it on a miss.

BEHAVIOR:
---------
- Hit: returns the cached value
- Miss: calls the Loader once per key no matter how many goroutines miss at the same time,
  stores the result, and returns it to all of them
- Loader error: nothing is stored and the error is returned to every waiter
*/
func (c *ShardedCache[K, V]) GetOrLoad(ctx context.Context, key K) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}

	var zero V
	if c.loader == nil {
		return zero, types.ErrNoLoader
	}

	ks := c.keyString(key)
	res, err, _ := c.sf.Do(ks, func() (any, error) {
		v, err := c.loader.Load(ctx, key)
		if err != nil {
			return nil, err
		}
		c.Put(key, v)
		return v, nil
	})
	if err != nil {
		c.logger.Warn().Err(err).Str("key", ks).Msg("load failed")
		return zero, fmt.Errorf("load %s: %w", ks, err)
	}
	v, _ := res.(V)
	return v, nil
}

// Len returns the number of entries across all shards.
func (c *ShardedCache[K, V]) Len() int {
	n := 0
	for _, s := range c.shards {
		n += s.Len()
	}
	return n
}

// Cap returns the total capacity.
func (c *ShardedCache[K, V]) Cap() int { return c.capacity }

// Keys returns every key, shard by shard, each shard from least to most
// recently used. There is no global recency order across shards.
func (c *ShardedCache[K, V]) Keys() []K {
	var out []K
	for _, s := range c.shards {
		out = append(out, s.Keys()...)
	}
	return out
}
