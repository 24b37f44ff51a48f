package list

import (
	"errors"
	"reflect"
	"testing"

	"github.com/krisalay/lru-cache/types"
)

func values[T any](l *List[T]) []T {
	out := make([]T, 0, l.Len())
	for _, v := range l.All() {
		out = append(out, v)
	}
	return out
}

func backward[T any](l *List[T]) []T {
	out := make([]T, 0, l.Len())
	for _, v := range l.Backward() {
		out = append(out, v)
	}
	return out
}

func assertValues[T any](t *testing.T, l *List[T], want []T) {
	t.Helper()
	if got := values(l); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func assertInvalid(t *testing.T, err error) {
	t.Helper()
	if !errors.Is(err, types.ErrInvalidPosition) {
		t.Fatalf("expected ErrInvalidPosition, got %v", err)
	}
}

func mustNoErr(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

//
// ================= INSERT & ERASE =================
//

func TestInsertHeadAndTail(t *testing.T) {
	l := New[int]()
	if !l.Empty() || l.Begin() != l.End() {
		t.Fatalf("new list must be empty")
	}

	l.InsertTail(2)
	l.InsertTail(3)
	l.InsertHead(1)
	l.InsertHead(0)

	if l.Len() != 4 {
		t.Fatalf("expected 4 elements, got %d", l.Len())
	}
	assertValues(t, l, []int{0, 1, 2, 3})
	if got := backward(l); !reflect.DeepEqual(got, []int{3, 2, 1, 0}) {
		t.Fatalf("backward: got %v", got)
	}
}

func TestZeroValueIsUsable(t *testing.T) {
	var l List[string]
	if l.Len() != 0 || !l.Begin().IsEnd() {
		t.Fatalf("zero list must be empty")
	}
	assertValues(t, &l, []string{})

	l.InsertTail("a")
	assertValues(t, &l, []string{"a"})
}

func TestEraseReturnsFollowingPosition(t *testing.T) {
	l := New[string]()
	a := l.InsertTail("a")
	b := l.InsertTail("b")
	c := l.InsertTail("c")

	next, err := l.Erase(b)
	mustNoErr(t, err)
	if next != c {
		t.Fatalf("erase b should return c")
	}

	next, err = l.Erase(c)
	mustNoErr(t, err)
	if !next.IsEnd() {
		t.Fatalf("erasing the last node should return End")
	}

	next, err = l.Erase(a)
	mustNoErr(t, err)
	if !next.IsEnd() || !l.Empty() {
		t.Fatalf("expected empty list after erasing every node")
	}
}

func TestEraseEndAndStalePositions(t *testing.T) {
	l := New[int]()
	p := l.InsertTail(1)

	_, err := l.Erase(l.End())
	assertInvalid(t, err)

	_, err = l.Erase(p)
	mustNoErr(t, err)

	// p is stale now, even after its slot has been reused.
	q := l.InsertTail(2)
	_, err = l.Erase(p)
	assertInvalid(t, err)
	_, err = l.Value(p)
	assertInvalid(t, err)

	v, err := l.Value(q)
	mustNoErr(t, err)
	if v != 2 {
		t.Fatalf("expected 2, got %d", v)
	}
}

func TestForeignPositionsAreRejected(t *testing.T) {
	a := New[string]()
	b := New[string]()
	pa := a.InsertTail("a1")
	b.InsertTail("b1")

	// Same slot index and generation in both arenas.
	_, err := b.Erase(pa)
	assertInvalid(t, err)
	_, err = b.Value(pa)
	assertInvalid(t, err)
	assertInvalid(t, b.Set(pa, "x"))
	assertInvalid(t, b.MoveToTail(pa))
	_, err = b.Next(pa)
	assertInvalid(t, err)

	assertValues(t, b, []string{"b1"})
	assertValues(t, a, []string{"a1"})

	// A clone has its own identity too.
	c := a.Clone()
	_, err = c.Value(pa)
	assertInvalid(t, err)
}

func TestValueAtEndFails(t *testing.T) {
	l := New[int]()
	l.InsertTail(7)

	_, err := l.Value(l.End())
	assertInvalid(t, err)
	assertInvalid(t, l.Set(l.End(), 1))
}

func TestDeleteHeadTail(t *testing.T) {
	l := New[int]()

	if _, err := l.DeleteHead(); !errors.Is(err, types.ErrEmptyContainer) {
		t.Fatalf("expected ErrEmptyContainer, got %v", err)
	}
	if _, err := l.DeleteTail(); !errors.Is(err, types.ErrEmptyContainer) {
		t.Fatalf("expected ErrEmptyContainer, got %v", err)
	}

	for i := 1; i <= 3; i++ {
		l.InsertTail(i)
	}

	v, err := l.DeleteHead()
	mustNoErr(t, err)
	if v != 1 {
		t.Fatalf("expected head 1, got %d", v)
	}

	v, err = l.DeleteTail()
	mustNoErr(t, err)
	if v != 3 {
		t.Fatalf("expected tail 3, got %d", v)
	}

	assertValues(t, l, []int{2})
}

//
// ================= TRAVERSAL =================
//

func TestTraversal(t *testing.T) {
	l := New[int]()
	first := l.InsertTail(1)
	second := l.InsertTail(2)

	p, err := l.Next(first)
	mustNoErr(t, err)
	if p != second {
		t.Fatalf("Next(first) should be second")
	}

	p, err = l.Next(second)
	mustNoErr(t, err)
	if !p.IsEnd() {
		t.Fatalf("Next(last) should be End")
	}

	_, err = l.Next(l.End())
	assertInvalid(t, err)

	p, err = l.Prev(l.End())
	mustNoErr(t, err)
	if p != second {
		t.Fatalf("Prev(End) should be the last element")
	}

	_, err = l.Prev(first)
	assertInvalid(t, err)

	_, err = New[int]().Prev(Pos{})
	assertInvalid(t, err)
}

func TestMoveToTailKeepsPosition(t *testing.T) {
	l := New[string]()
	a := l.InsertTail("a")
	l.InsertTail("b")
	l.InsertTail("c")

	mustNoErr(t, l.MoveToTail(a))
	assertValues(t, l, []string{"b", "c", "a"})
	if l.Last() != a {
		t.Fatalf("expected a to be last")
	}

	// already last
	mustNoErr(t, l.MoveToTail(a))
	assertValues(t, l, []string{"b", "c", "a"})

	v, err := l.Value(a)
	mustNoErr(t, err)
	if v != "a" {
		t.Fatalf("expected a, got %q", v)
	}
}

func TestSetKeepsOrder(t *testing.T) {
	l := New[string]()
	l.InsertTail("a")
	b := l.InsertTail("b")
	l.InsertTail("c")

	mustNoErr(t, l.Set(b, "B"))
	assertValues(t, l, []string{"a", "B", "c"})
}

func TestEraseWhileIterating(t *testing.T) {
	l := New[int]()
	for i := 0; i < 6; i++ {
		l.InsertTail(i)
	}
	for p, v := range l.All() {
		if v%2 == 0 {
			_, err := l.Erase(p)
			mustNoErr(t, err)
		}
	}
	assertValues(t, l, []int{1, 3, 5})
}

//
// ================= CLONE, CLEAR & ARENA =================
//

func TestCloneIsDeep(t *testing.T) {
	l := New[[]int]()
	l.InsertTail([]int{1})
	p := l.InsertTail([]int{2})

	c := l.Clone()
	assertValues(t, c, values(l))

	mustNoErr(t, l.Set(p, []int{20}))
	_, err := l.Erase(l.Begin())
	mustNoErr(t, err)

	assertValues(t, c, [][]int{{1}, {2}})
	if c.Len() != 2 {
		t.Fatalf("expected clone to keep 2 elements, got %d", c.Len())
	}
}

func TestClearInvalidatesPositions(t *testing.T) {
	l := New[int]()
	p := l.InsertTail(1)
	l.InsertTail(2)

	l.Clear()
	if !l.Empty() {
		t.Fatalf("expected empty list after Clear")
	}
	assertValues(t, l, []int{})

	l.InsertTail(3)
	_, err := l.Value(p)
	assertInvalid(t, err)
	assertValues(t, l, []int{3})
}

func TestSlotReuse(t *testing.T) {
	l := New[int]()
	for i := 0; i < 100; i++ {
		l.InsertTail(i)
		_, err := l.DeleteHead()
		mustNoErr(t, err)
	}
	// One live slot plus the sentinel is all the arena ever needed.
	if len(l.nodes) != 2 {
		t.Fatalf("expected 2 arena slots, got %d", len(l.nodes))
	}
}

func TestFullArenaPanics(t *testing.T) {
	defer func(n int) { maxNodes = n }(maxNodes)
	maxNodes = 3

	l := New[int]()
	l.InsertTail(1)
	l.InsertTail(2)

	// Freed slots are still usable at the limit.
	_, err := l.DeleteHead()
	mustNoErr(t, err)
	l.InsertTail(3)

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic when the arena is full")
		}
	}()
	l.InsertTail(4)
}
