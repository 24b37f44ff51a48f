package types

// Entry is one key/value pair as it is stored in the order list of a
// linked hashmap. The key is kept next to the value because eviction starts
// from list nodes, not from keys.
type Entry[K, V any] struct {
	Key   K
	Value V
}
