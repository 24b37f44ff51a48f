package types

// Hasher maps a key to an unsigned hash. It must be pure: equal keys always
// produce equal hashes.
type Hasher[K any] func(K) uint64

// Equal reports whether two keys are the same key.
type Equal[K any] func(a, b K) bool
