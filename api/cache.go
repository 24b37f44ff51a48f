package cache

/*
Cache defines the PUBLIC API shared by the caches in this module.
This is a contract that guarantees certain behaviors, without exposing internals.
Details like (hashing, recency tracking, sharding, and locking) are hidden behind this interface.

Implementations:
- lru.Cache: single goroutine, no locking
- cache.ShardedCache: safe for concurrent use
*/
type Cache[K, V any] interface {

	/*
		Get retrieves the value associated with the given key.

		BEHAVIOR:
		-------------------
		1. If the key exists in cache:
		   - Mark it as the most recently used key
		   - Return the value (cache hit)

		2. If the key does NOT exist:
		   - Return the zero value and false (cache miss)
		   - Change nothing
	*/
	Get(key K) (V, bool)

	/*
		Put stores a key-value pair in the cache.

		BEHAVIOR:
		---------
		- Stores the value in memory, replacing any previous value
		- Marks the key as the most recently used key, even if the value is unchanged
		- If the cache is now over capacity, evicts the least recently used key
	*/
	Put(key K, value V)

	/*
		Remove deletes a key from the cache immediately.

		This operation is idempotent:
		- Removing a non-existing key is safe and reports false
		- A removal is NOT counted as an eviction
	*/
	Remove(key K) bool

	// Len returns the number of cached entries.
	Len() int

	// Cap returns the maximum number of entries.
	Cap() int
}
