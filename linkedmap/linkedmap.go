// Package linkedmap composes a hashmap.Map and a list.List into a hash map
// that remembers the order in which keys were last written.
//
// The list (the order list) owns the key/value pairs, oldest first. The hash
// map is an index from key to the position of the key's node in the order
// list. Every key in the index has exactly one node in the order list and
// vice versa.
package linkedmap

import (
	"fmt"
	"iter"

	"github.com/krisalay/lru-cache/hashmap"
	"github.com/krisalay/lru-cache/list"
	"github.com/krisalay/lru-cache/types"
)

// Map is an insertion-ordered hash map in which an update counts as a fresh
// insertion. It is not safe for concurrent use.
type Map[K, V any] struct {
	index *hashmap.Map[K, list.Pos]
	order *list.List[types.Entry[K, V]]

	// kept for Clone
	hash  types.Hasher[K]
	equal types.Equal[K]
	opts  []hashmap.Option
}

// New creates an empty map. Options are passed to the underlying index.
func New[K, V any](hash types.Hasher[K], equal types.Equal[K], opts ...hashmap.Option) *Map[K, V] {
	return &Map[K, V]{
		index: hashmap.New[K, list.Pos](hash, equal, opts...),
		order: list.New[types.Entry[K, V]](),
		hash:  hash,
		equal: equal,
		opts:  opts,
	}
}

// Len returns the number of keys.
func (m *Map[K, V]) Len() int { return m.order.Len() }

// MaxLen returns the largest number of keys the index can hold.
func (m *Map[K, V]) MaxLen() int { return m.index.MaxSlots() }

// Count returns 1 if key is present and 0 otherwise.
func (m *Map[K, V]) Count(key K) int {
	if _, ok := m.index.Find(key); ok {
		return 1
	}
	return 0
}

// Find returns the order-list position of key, or End if it is absent.
func (m *Map[K, V]) Find(key K) list.Pos {
	p, ok := m.index.Get(key)
	if !ok {
		return m.order.End()
	}
	return p
}

// Get returns the value stored under key without changing the order.
func (m *Map[K, V]) Get(key K) (V, bool) {
	e, err := m.order.Value(m.Find(key))
	if err != nil {
		var zero V
		return zero, false
	}
	return e.Value, true
}

// Entry returns the key and value stored at p.
func (m *Map[K, V]) Entry(p list.Pos) (K, V, error) {
	e, err := m.order.Value(p)
	return e.Key, e.Value, err
}

/*
Insert stores v under key and makes key the newest entry.

BEHAVIOR:
---------
- New key: appended at the tail of the order list, its position recorded in
  the index. Reports true.
- Existing key: its node is moved to the tail and its value replaced.
  Reports false.

The index is written before the order list, so ErrCapacityExceeded from the
index leaves both structures as they were.
*/
func (m *Map[K, V]) Insert(key K, v V) (bool, error) {
	if p, ok := m.index.Get(key); ok {
		if err := m.order.Set(p, types.Entry[K, V]{Key: key, Value: v}); err != nil {
			return false, err
		}
		return false, m.order.MoveToTail(p)
	}

	ref, _, err := m.index.Insert(key, m.order.End())
	if err != nil {
		return false, fmt.Errorf("insert key: %w", err)
	}
	p := m.order.InsertTail(types.Entry[K, V]{Key: key, Value: v})
	if err := m.index.Set(ref, p); err != nil {
		return false, err
	}
	return true, nil
}

// Touch makes key the newest entry without changing its value. It reports
// whether key was present.
func (m *Map[K, V]) Touch(key K) bool {
	p, ok := m.index.Get(key)
	if !ok {
		return false
	}
	return m.order.MoveToTail(p) == nil
}

// Remove deletes the entry at p. Removing End is an error.
func (m *Map[K, V]) Remove(p list.Pos) error {
	e, err := m.order.Value(p)
	if err != nil {
		return err
	}
	m.index.Remove(e.Key)
	_, err = m.order.Erase(p)
	return err
}

// Delete removes key and reports whether it was present.
func (m *Map[K, V]) Delete(key K) bool {
	p := m.Find(key)
	if p.IsEnd() {
		return false
	}
	return m.Remove(p) == nil
}

// Front returns the oldest entry.
func (m *Map[K, V]) Front() (K, V, bool) {
	e, err := m.order.Value(m.order.Begin())
	return e.Key, e.Value, err == nil
}

// PopFront removes and returns the oldest entry.
func (m *Map[K, V]) PopFront() (K, V, error) {
	e, err := m.order.DeleteHead()
	if err != nil {
		return e.Key, e.Value, err
	}
	m.index.Remove(e.Key)
	return e.Key, e.Value, nil
}

// Begin returns the position of the oldest entry.
func (m *Map[K, V]) Begin() list.Pos { return m.order.Begin() }

// End returns the end position.
func (m *Map[K, V]) End() list.Pos { return m.order.End() }

// Next returns the position of the next newer entry.
func (m *Map[K, V]) Next(p list.Pos) (list.Pos, error) { return m.order.Next(p) }

// Prev returns the position of the next older entry.
func (m *Map[K, V]) Prev(p list.Pos) (list.Pos, error) { return m.order.Prev(p) }

// All iterates from the oldest to the newest entry.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, e := range m.order.All() {
			if !yield(e.Key, e.Value) {
				return
			}
		}
	}
}

// Keys returns every key, oldest first.
func (m *Map[K, V]) Keys() []K {
	out := make([]K, 0, m.Len())
	for k := range m.All() {
		out = append(out, k)
	}
	return out
}

// Clear removes every entry.
func (m *Map[K, V]) Clear() {
	m.index.Clear()
	m.order.Clear()
}

// Clone returns a deep copy. Positions in the copy's index point into the
// copy's own order list.
func (m *Map[K, V]) Clone() *Map[K, V] {
	c := New[K, V](m.hash, m.equal, m.opts...)
	for _, e := range m.order.All() {
		ref, _, err := c.index.Insert(e.Key, c.order.End())
		if err != nil {
			// m already holds these keys under the same size classes.
			panic(err)
		}
		if err := c.index.Set(ref, c.order.InsertTail(e)); err != nil {
			panic(err)
		}
	}
	return c
}

// Verify checks that the index and the order list describe the same set of
// entries. A non-nil result means the map is corrupt.
func (m *Map[K, V]) Verify() error {
	if m.index.Len() != m.order.Len() {
		return fmt.Errorf("index holds %d keys, order list holds %d nodes", m.index.Len(), m.order.Len())
	}
	n := 0
	for p, e := range m.order.All() {
		got, ok := m.index.Get(e.Key)
		if !ok {
			return fmt.Errorf("order node %d has no index entry", n)
		}
		if got != p {
			return fmt.Errorf("index entry for order node %d points elsewhere", n)
		}
		n++
	}
	if n != m.order.Len() {
		return fmt.Errorf("order list links %d nodes, counted %d", n, m.order.Len())
	}
	return nil
}
