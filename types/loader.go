package types

import "context"

//go:generate mockgen -destination=mocks/loader_mock.go -package=mocks . Loader

// Loader is the contract between the cache and the backing store.
type Loader[K, V any] interface {

	/*
		Load is called when the cache misses. The key was not found in memory, so the cache asks the Loader to fetch it.
		1. Cache checks memory → key not found
		2. Cache calls Load(key)
		3. Loader fetches from DB/API
		4. Cache stores the result in memory
		5. Cache returns the value
	*/
	Load(ctx context.Context, key K) (V, error)
}

// LoaderFunc adapts a plain function to the Loader interface.
type LoaderFunc[K, V any] func(ctx context.Context, key K) (V, error)

// Load calls f(ctx, key).
func (f LoaderFunc[K, V]) Load(ctx context.Context, key K) (V, error) {
	return f(ctx, key)
}
