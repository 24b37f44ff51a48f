// Package hashing provides ready-made hash and equality functions for the
// containers in this module.
package hashing

import (
	"hash/fnv"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/exp/constraints"
)

// String hashes s with xxHash64.
func String(s string) uint64 {
	return xxhash.Sum64String(s)
}

// Bytes hashes b with xxHash64.
func Bytes(b []byte) uint64 {
	return xxhash.Sum64(b)
}

// FNV hashes s with 64-bit FNV-1a. It is slower than String but has no
// dependency outside the standard library's hash package.
func FNV(s string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return h.Sum64()
}

// Integer hashes any integer key. Consecutive integers are spread over the
// whole 64-bit range, so they do not crowd neighbouring buckets.
func Integer[T constraints.Integer](v T) uint64 {
	return Mix64(uint64(v))
}

// Mix64 is the splitmix64 finalizer. It is used to decorrelate a hash that
// was already reduced modulo one table size before it is reduced modulo
// another.
func Mix64(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

// Equal compares two comparable keys with ==.
func Equal[K comparable](a, b K) bool {
	return a == b
}
