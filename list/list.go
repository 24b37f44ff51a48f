// Package list implements a doubly linked list whose nodes live in an arena
// and link to each other by index instead of by pointer.
//
// The list owns its nodes. Positions handed out by the list are small
// comparable values that stay valid until the node they denote is erased,
// which lets other containers store them (see package linkedmap).
package list

import (
	"iter"
	"math"
	"sync/atomic"

	"github.com/krisalay/lru-cache/types"
)

// sentinel is the arena slot of the end node. It never holds a payload.
const sentinel int32 = 0

// maxNodes bounds the arena so slot indexes fit in an int32.
var maxNodes = math.MaxInt32

// lastID numbers lists so a Pos can name the list it came from.
var lastID atomic.Uint64

// Pos denotes one node of a List.
//
// The zero Pos is the end position of every list. A Pos carries the
// generation of the slot it was taken from and the identity of its list, so
// a position that outlives its node or belongs to another list is reported
// as ErrInvalidPosition instead of aliasing some other node.
type Pos struct {
	idx  int32
	gen  uint32
	list uint64
}

// IsEnd reports whether p is the end position.
func (p Pos) IsEnd() bool { return p.idx == sentinel }

type node[T any] struct {
	val  T
	prev int32
	next int32

	// gen is bumped every time the slot is released.
	gen  uint32
	live bool
}

// List is a doubly linked list of T.
//
// The chain is circular through the sentinel slot: the sentinel's next is the
// first node and its prev is the last node, so an empty list is a sentinel
// pointing at itself.
//
// A list holds at most math.MaxInt32-1 elements; inserting past that panics.
//
// The zero value is an empty list ready to use. List is not safe for
// concurrent use.
type List[T any] struct {
	id    uint64
	nodes []node[T]

	// free holds released slots, reused before the arena grows.
	free []int32

	n int
}

// New returns an empty list.
func New[T any]() *List[T] {
	l := &List[T]{}
	l.lazyInit()
	return l
}

func (l *List[T]) lazyInit() {
	if l.nodes == nil {
		l.init(8)
	}
}

func (l *List[T]) init(size int) {
	l.id = lastID.Add(1)
	l.nodes = make([]node[T], 1, size)
}

// Len returns the number of elements.
func (l *List[T]) Len() int { return l.n }

// Empty reports whether the list holds no elements.
func (l *List[T]) Empty() bool { return l.n == 0 }

// Begin returns the position of the first element, or End for an empty list.
func (l *List[T]) Begin() Pos {
	if l.nodes == nil {
		return Pos{}
	}
	return l.pos(l.nodes[sentinel].next)
}

// Last returns the position of the last element, or End for an empty list.
func (l *List[T]) Last() Pos {
	if l.nodes == nil {
		return Pos{}
	}
	return l.pos(l.nodes[sentinel].prev)
}

// End returns the end position. It never denotes an element.
func (l *List[T]) End() Pos { return Pos{} }

// InsertHead copies v into a new node at the front of the list.
func (l *List[T]) InsertHead(v T) Pos {
	l.lazyInit()
	idx := l.alloc(v)
	l.linkBefore(idx, l.nodes[sentinel].next)
	l.n++
	return l.pos(idx)
}

// InsertTail copies v into a new node at the back of the list.
func (l *List[T]) InsertTail(v T) Pos {
	l.lazyInit()
	idx := l.alloc(v)
	l.linkBefore(idx, sentinel)
	l.n++
	return l.pos(idx)
}

// Erase removes the node at p and returns the position of the node that
// followed it, or End if p was the last node.
func (l *List[T]) Erase(p Pos) (Pos, error) {
	idx, err := l.resolve(p)
	if err != nil {
		return Pos{}, err
	}
	next := l.nodes[idx].next
	l.unlink(idx)
	l.release(idx)
	l.n--
	return l.pos(next), nil
}

// DeleteHead removes the first node and returns its value.
func (l *List[T]) DeleteHead() (T, error) {
	if l.n == 0 {
		var zero T
		return zero, types.ErrEmptyContainer
	}
	return l.take(l.nodes[sentinel].next), nil
}

// DeleteTail removes the last node and returns its value.
func (l *List[T]) DeleteTail() (T, error) {
	if l.n == 0 {
		var zero T
		return zero, types.ErrEmptyContainer
	}
	return l.take(l.nodes[sentinel].prev), nil
}

// Value returns the value stored at p.
func (l *List[T]) Value(p Pos) (T, error) {
	idx, err := l.resolve(p)
	if err != nil {
		var zero T
		return zero, err
	}
	return l.nodes[idx].val, nil
}

// Set replaces the value stored at p. The node keeps its place.
func (l *List[T]) Set(p Pos, v T) error {
	idx, err := l.resolve(p)
	if err != nil {
		return err
	}
	l.nodes[idx].val = v
	return nil
}

// Next returns the position after p. Advancing past End is an error.
func (l *List[T]) Next(p Pos) (Pos, error) {
	idx, err := l.resolve(p)
	if err != nil {
		return Pos{}, err
	}
	return l.pos(l.nodes[idx].next), nil
}

// Prev returns the position before p. Prev(End) is the last element;
// stepping back from the first element is an error.
func (l *List[T]) Prev(p Pos) (Pos, error) {
	if p.IsEnd() {
		if l.n == 0 {
			return Pos{}, types.ErrInvalidPosition
		}
		return l.Last(), nil
	}
	idx, err := l.resolve(p)
	if err != nil {
		return Pos{}, err
	}
	prev := l.nodes[idx].prev
	if prev == sentinel {
		return Pos{}, types.ErrInvalidPosition
	}
	return l.pos(prev), nil
}

// MoveToTail relinks the node at p as the last node. The node is not
// reallocated, so p stays valid.
func (l *List[T]) MoveToTail(p Pos) error {
	idx, err := l.resolve(p)
	if err != nil {
		return err
	}
	if l.nodes[sentinel].prev == idx {
		return nil
	}
	l.unlink(idx)
	l.linkBefore(idx, sentinel)
	return nil
}

// Clear erases every node. Positions taken before Clear become invalid.
func (l *List[T]) Clear() {
	if l.nodes == nil {
		return
	}
	for idx := l.nodes[sentinel].next; idx != sentinel; {
		next := l.nodes[idx].next
		l.release(idx)
		idx = next
	}
	l.nodes[sentinel].next = sentinel
	l.nodes[sentinel].prev = sentinel
	l.n = 0
}

// Clone returns a deep copy holding the same values in the same order.
// Positions of l are not valid in the copy.
func (l *List[T]) Clone() *List[T] {
	c := &List[T]{}
	c.init(l.n + 1)
	for _, v := range l.All() {
		c.InsertTail(v)
	}
	return c
}

// All iterates front to back. The loop body may erase the node it is
// visiting but must not otherwise modify the list.
func (l *List[T]) All() iter.Seq2[Pos, T] {
	return func(yield func(Pos, T) bool) {
		if l.nodes == nil {
			return
		}
		for idx := l.nodes[sentinel].next; idx != sentinel; {
			nd := l.nodes[idx]
			if !yield(Pos{idx: idx, gen: nd.gen, list: l.id}, nd.val) {
				return
			}
			idx = nd.next
		}
	}
}

// Backward iterates back to front under the same rules as All.
func (l *List[T]) Backward() iter.Seq2[Pos, T] {
	return func(yield func(Pos, T) bool) {
		if l.nodes == nil {
			return
		}
		for idx := l.nodes[sentinel].prev; idx != sentinel; {
			nd := l.nodes[idx]
			if !yield(Pos{idx: idx, gen: nd.gen, list: l.id}, nd.val) {
				return
			}
			idx = nd.prev
		}
	}
}

func (l *List[T]) pos(idx int32) Pos {
	if idx == sentinel {
		return Pos{}
	}
	return Pos{idx: idx, gen: l.nodes[idx].gen, list: l.id}
}

// resolve maps p to its arena slot, rejecting End, stale and foreign
// positions.
func (l *List[T]) resolve(p Pos) (int32, error) {
	if p.list != l.id || p.idx <= sentinel || int(p.idx) >= len(l.nodes) {
		return 0, types.ErrInvalidPosition
	}
	nd := &l.nodes[p.idx]
	if !nd.live || nd.gen != p.gen {
		return 0, types.ErrInvalidPosition
	}
	return p.idx, nil
}

func (l *List[T]) alloc(v T) int32 {
	if k := len(l.free); k > 0 {
		idx := l.free[k-1]
		l.free = l.free[:k-1]
		nd := &l.nodes[idx]
		nd.val = v
		nd.live = true
		return idx
	}
	if len(l.nodes) >= maxNodes {
		panic("list: arena is full")
	}
	l.nodes = append(l.nodes, node[T]{val: v, live: true})
	return int32(len(l.nodes) - 1)
}

// release zeroes the slot so the arena does not keep the payload reachable.
func (l *List[T]) release(idx int32) {
	nd := &l.nodes[idx]
	var zero T
	nd.val = zero
	nd.prev, nd.next = sentinel, sentinel
	nd.live = false
	nd.gen++
	l.free = append(l.free, idx)
}

func (l *List[T]) take(idx int32) T {
	v := l.nodes[idx].val
	l.unlink(idx)
	l.release(idx)
	l.n--
	return v
}

func (l *List[T]) linkBefore(idx, at int32) {
	prev := l.nodes[at].prev
	l.nodes[idx].prev = prev
	l.nodes[idx].next = at
	l.nodes[prev].next = idx
	l.nodes[at].prev = idx
}

func (l *List[T]) unlink(idx int32) {
	prev, next := l.nodes[idx].prev, l.nodes[idx].next
	l.nodes[prev].next = next
	l.nodes[next].prev = prev
}
