package types

import "errors"

/*
Error kinds shared by every container in this module.

A missing key is NOT an error. Lookups report it with a (zero, false) result,
because a miss is an expected outcome of a cache.
*/
var (
	// ErrEmptyContainer is returned when removing the head or tail of an empty list.
	ErrEmptyContainer = errors.New("container is empty")

	// ErrInvalidPosition is returned when a position denotes the end sentinel,
	// a node that was already erased, or a node of another list.
	ErrInvalidPosition = errors.New("invalid position")

	// ErrCapacityExceeded is returned when the hash table has already grown to
	// its largest size class and needs to grow again.
	ErrCapacityExceeded = errors.New("hash table capacity exceeded")

	// ErrInvalidCapacity is returned for a negative cache capacity.
	ErrInvalidCapacity = errors.New("invalid capacity")

	// ErrNoLoader is returned by read-through lookups when no Loader is configured.
	ErrNoLoader = errors.New("no loader configured")
)
