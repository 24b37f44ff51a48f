// Package hashmap implements a separately chained hash table whose buckets
// are lists from package list.
//
// The table grows one size class at a time through a fixed ascending
// sequence of primes. It never shrinks.
package hashmap

import (
	"fmt"
	"iter"

	"github.com/krisalay/lru-cache/list"
	"github.com/krisalay/lru-cache/types"
)

// DefaultSizeClasses are the slot counts the table steps through.
var DefaultSizeClasses = []int{
	7, 17, 31, 61, 127, 257, 509, 1021, 2053, 4093, 8191, 16381,
	32771, 65537, 131071, 262147, 524287, 1048573, 2097143, 4194301,
	8388617, 16777213, 33554467, 67108859,
}

type entry[K, V any] struct {
	key K
	val V
}

// Ref points at one entry of a Map. It is valid until the table grows, the
// map is cleared or the entry is removed. Using it after that fails with
// ErrInvalidPosition.
type Ref struct {
	slot  int
	pos   list.Pos
	epoch uint64
}

// Map is a hash table from K to V. Hashing and equality are supplied by the
// caller. Map is not safe for concurrent use.
type Map[K, V any] struct {
	hash  types.Hasher[K]
	equal types.Equal[K]

	// A bucket is nil until the first key hashes into its slot.
	table    []*list.List[entry[K, V]]
	elements int

	// class indexes sizes; len(table) == sizes[class].
	class int
	sizes []int

	// epoch is bumped whenever the table is replaced.
	epoch uint64
}

// Option configures a Map.
type Option func(*options)

type options struct {
	sizes []int
}

// WithSizeClasses replaces DefaultSizeClasses. The sizes must be positive
// and strictly ascending. The last size is the hard ceiling of the table.
func WithSizeClasses(sizes ...int) Option {
	return func(o *options) {
		o.sizes = sizes
	}
}

// New creates an empty map using the smallest size class.
// It panics if hash or equal is nil or the size classes are malformed.
func New[K, V any](hash types.Hasher[K], equal types.Equal[K], opts ...Option) *Map[K, V] {
	if hash == nil || equal == nil {
		panic("hashmap: nil hash or equal function")
	}
	o := options{sizes: DefaultSizeClasses}
	for _, opt := range opts {
		opt(&o)
	}
	if err := validateSizes(o.sizes); err != nil {
		panic(err)
	}
	return &Map[K, V]{
		hash:  hash,
		equal: equal,
		table: make([]*list.List[entry[K, V]], o.sizes[0]),
		sizes: o.sizes,
	}
}

func validateSizes(sizes []int) error {
	if len(sizes) == 0 {
		return fmt.Errorf("hashmap: no size classes")
	}
	for i, s := range sizes {
		if s <= 0 {
			return fmt.Errorf("hashmap: size class %d is %d, must be positive", i, s)
		}
		if i > 0 && s <= sizes[i-1] {
			return fmt.Errorf("hashmap: size classes must be strictly ascending, got %d after %d", s, sizes[i-1])
		}
	}
	return nil
}

// Len returns the number of keys.
func (m *Map[K, V]) Len() int { return m.elements }

// Slots returns the slot count of the current size class.
func (m *Map[K, V]) Slots() int { return len(m.table) }

// SizeClass returns the index of the current size class.
func (m *Map[K, V]) SizeClass() int { return m.class }

// MaxSlots returns the slot count of the largest size class. The map can
// hold at most MaxSlots keys.
func (m *Map[K, V]) MaxSlots() int { return m.sizes[len(m.sizes)-1] }

func (m *Map[K, V]) slotOf(key K, slots int) int {
	return int(m.hash(key) % uint64(slots))
}

// Find looks the key up. It reports false when the key is absent.
func (m *Map[K, V]) Find(key K) (Ref, bool) {
	slot := m.slotOf(key, len(m.table))
	b := m.table[slot]
	if b == nil {
		return Ref{}, false
	}
	for p, e := range b.All() {
		if m.equal(e.key, key) {
			return Ref{slot: slot, pos: p, epoch: m.epoch}, true
		}
	}
	return Ref{}, false
}

// Get returns the value stored under key.
func (m *Map[K, V]) Get(key K) (V, bool) {
	ref, ok := m.Find(key)
	if !ok {
		var zero V
		return zero, false
	}
	e, _ := m.table[ref.slot].Value(ref.pos)
	return e.val, true
}

// Entry returns the key and value ref points at.
func (m *Map[K, V]) Entry(ref Ref) (K, V, error) {
	e, err := m.at(ref)
	return e.key, e.val, err
}

// Set overwrites the value ref points at.
func (m *Map[K, V]) Set(ref Ref, v V) error {
	e, err := m.at(ref)
	if err != nil {
		return err
	}
	e.val = v
	return m.table[ref.slot].Set(ref.pos, e)
}

func (m *Map[K, V]) at(ref Ref) (entry[K, V], error) {
	if ref.epoch != m.epoch || ref.slot < 0 || ref.slot >= len(m.table) || m.table[ref.slot] == nil {
		return entry[K, V]{}, types.ErrInvalidPosition
	}
	return m.table[ref.slot].Value(ref.pos)
}

/*
Insert stores v under key.

BEHAVIOR:
---------
- Key absent: grow the table first if it already holds as many keys as it
  has slots, then insert at the head of the key's bucket. Reports true.
- Key present: overwrite the value in place and report false. Nothing else
  about the entry changes.

If the table is at its largest size class and full, Insert returns
ErrCapacityExceeded and the map is left untouched.
*/
func (m *Map[K, V]) Insert(key K, v V) (Ref, bool, error) {
	if ref, ok := m.Find(key); ok {
		return ref, false, m.Set(ref, v)
	}
	for m.elements >= len(m.table) {
		if err := m.grow(); err != nil {
			return Ref{}, false, err
		}
	}
	slot := m.slotOf(key, len(m.table))
	if m.table[slot] == nil {
		m.table[slot] = list.New[entry[K, V]]()
	}
	p := m.table[slot].InsertHead(entry[K, V]{key: key, val: v})
	m.elements++
	return Ref{slot: slot, pos: p, epoch: m.epoch}, true, nil
}

// Remove deletes key and reports whether it was present. An emptied bucket
// keeps its list.
func (m *Map[K, V]) Remove(key K) bool {
	ref, ok := m.Find(key)
	if !ok {
		return false
	}
	if _, err := m.table[ref.slot].Erase(ref.pos); err != nil {
		return false
	}
	m.elements--
	return true
}

// grow moves every entry into a table of the next size class.
func (m *Map[K, V]) grow() error {
	if m.class+1 >= len(m.sizes) {
		return fmt.Errorf("grow past %d slots: %w", len(m.table), types.ErrCapacityExceeded)
	}
	slots := m.sizes[m.class+1]
	table := make([]*list.List[entry[K, V]], slots)
	for _, b := range m.table {
		if b == nil {
			continue
		}
		for _, e := range b.All() {
			slot := m.slotOf(e.key, slots)
			if table[slot] == nil {
				table[slot] = list.New[entry[K, V]]()
			}
			table[slot].InsertTail(e)
		}
	}
	m.table = table
	m.class++
	m.epoch++
	return nil
}

// Clear removes every key and returns the table to its smallest size class.
func (m *Map[K, V]) Clear() {
	m.table = make([]*list.List[entry[K, V]], m.sizes[0])
	m.class = 0
	m.elements = 0
	m.epoch++
}

// Clone returns a deep copy sharing no buckets with m.
func (m *Map[K, V]) Clone() *Map[K, V] {
	c := &Map[K, V]{
		hash:     m.hash,
		equal:    m.equal,
		table:    make([]*list.List[entry[K, V]], len(m.table)),
		elements: m.elements,
		class:    m.class,
		sizes:    m.sizes,
	}
	for i, b := range m.table {
		if b != nil {
			c.table[i] = b.Clone()
		}
	}
	return c
}

// All iterates over every key and value in unspecified order.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, b := range m.table {
			if b == nil {
				continue
			}
			for _, e := range b.All() {
				if !yield(e.key, e.val) {
					return
				}
			}
		}
	}
}
