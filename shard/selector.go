package shard

import (
	"github.com/krisalay/lru-cache/hashing"
	"github.com/krisalay/lru-cache/types"
)

/*
This file decides HOW a cache key is assigned to a shard.
If every request went to the same shard, that shard would become a bottleneck.
*/

/*
Selector is the interface that decides which shard should handle a given key.
The cache does not care HOW this decision is made. Different strategies can be plugged in.
Select must return the same index for equal keys.
*/
type Selector[K any] interface {
	Select(key K, shards int) int
}

/*
HashSelector picks a shard from the key's hash.

Inside a shard the same hash is reduced modulo a prime table size, so it is
mixed first. Otherwise keys that share a shard would also tend to share a
bucket.
*/
type HashSelector[K any] struct {
	Hash types.Hasher[K]
}

func (s HashSelector[K]) Select(key K, shards int) int {
	return int(hashing.Mix64(s.Hash(key)) % uint64(shards))
}
