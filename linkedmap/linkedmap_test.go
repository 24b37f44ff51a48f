package linkedmap

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"

	"github.com/krisalay/lru-cache/hashmap"
	"github.com/krisalay/lru-cache/types"
)

func hashInt(k int) uint64 { return uint64(k) * 0x9E3779B97F4A7C15 }

func eqInt(a, b int) bool { return a == b }

func newIntMap() *Map[int, string] {
	return New[int, string](hashInt, eqInt)
}

func mustInsert(t *testing.T, m *Map[int, string], k int, v string) bool {
	t.Helper()
	inserted, err := m.Insert(k, v)
	if err != nil {
		t.Fatalf("insert %d: %v", k, err)
	}
	mustVerify(t, m)
	return inserted
}

func mustVerify(t *testing.T, m *Map[int, string]) {
	t.Helper()
	if err := m.Verify(); err != nil {
		t.Fatalf("verify: %v", err)
	}
}

func assertKeys(t *testing.T, m *Map[int, string], want []int) {
	t.Helper()
	got := m.Keys()
	if len(got) == 0 && len(want) == 0 {
		return
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected keys %v, got %v", want, got)
	}
}

func assertInvalid(t *testing.T, err error) {
	t.Helper()
	if !errors.Is(err, types.ErrInvalidPosition) {
		t.Fatalf("expected ErrInvalidPosition, got %v", err)
	}
}

//
// ================= INSERT & ORDER =================
//

func TestInsertOrder(t *testing.T) {
	m := newIntMap()
	for _, k := range []int{3, 1, 2} {
		if !mustInsert(t, m, k, "") {
			t.Fatalf("expected %d to be a new key", k)
		}
	}
	assertKeys(t, m, []int{3, 1, 2})
	if m.Len() != 3 {
		t.Fatalf("expected 3 keys, got %d", m.Len())
	}
}

func TestUpdateRelocatesToTail(t *testing.T) {
	m := newIntMap()
	mustInsert(t, m, 1, "a")
	mustInsert(t, m, 2, "b")
	mustInsert(t, m, 3, "c")

	if mustInsert(t, m, 1, "A") {
		t.Fatalf("update must report false")
	}
	assertKeys(t, m, []int{2, 3, 1})

	if v, ok := m.Get(1); !ok || v != "A" {
		t.Fatalf("expected A, got %q (ok=%v)", v, ok)
	}

	// Same value still counts as a write.
	mustInsert(t, m, 2, "b")
	assertKeys(t, m, []int{3, 1, 2})
}

func TestTouch(t *testing.T) {
	m := newIntMap()
	mustInsert(t, m, 1, "a")
	mustInsert(t, m, 2, "b")

	if !m.Touch(1) {
		t.Fatalf("expected Touch(1) to report true")
	}
	if m.Touch(9) {
		t.Fatalf("expected Touch(9) to report false")
	}
	assertKeys(t, m, []int{2, 1})
	mustVerify(t, m)
}

func TestFindAndCount(t *testing.T) {
	m := newIntMap()
	mustInsert(t, m, 1, "a")

	if m.Count(1) != 1 || m.Count(2) != 0 {
		t.Fatalf("unexpected counts %d, %d", m.Count(1), m.Count(2))
	}
	if !m.Find(2).IsEnd() {
		t.Fatalf("Find of a missing key must be End")
	}

	k, v, err := m.Entry(m.Find(1))
	if err != nil || k != 1 || v != "a" {
		t.Fatalf("expected 1=a, got %d=%q (%v)", k, v, err)
	}
}

//
// ================= REMOVAL =================
//

func TestRemoveByPosition(t *testing.T) {
	m := newIntMap()
	mustInsert(t, m, 1, "a")
	mustInsert(t, m, 2, "b")

	assertInvalid(t, m.Remove(m.End()))

	p := m.Find(1)
	if err := m.Remove(p); err != nil {
		t.Fatalf("remove: %v", err)
	}
	mustVerify(t, m)
	assertKeys(t, m, []int{2})
	if m.Count(1) != 0 {
		t.Fatalf("key 1 should be gone")
	}

	// stale
	assertInvalid(t, m.Remove(p))
}

func TestRemoveRejectsPositionOfAnotherMap(t *testing.T) {
	a := newIntMap()
	b := newIntMap()
	mustInsert(t, a, 1, "a1")
	mustInsert(t, b, 2, "b2")

	assertInvalid(t, b.Remove(a.Find(1)))
	_, _, err := b.Entry(a.Find(1))
	assertInvalid(t, err)

	mustVerify(t, b)
	assertKeys(t, b, []int{2})
	assertKeys(t, a, []int{1})
}

func TestDelete(t *testing.T) {
	m := newIntMap()
	mustInsert(t, m, 1, "a")
	if !m.Delete(1) {
		t.Fatalf("expected Delete(1) to report true")
	}
	if m.Delete(1) {
		t.Fatalf("expected second Delete(1) to report false")
	}
	if m.Len() != 0 {
		t.Fatalf("expected empty map, got %d keys", m.Len())
	}
	mustVerify(t, m)
}

func TestFrontAndPopFront(t *testing.T) {
	m := newIntMap()
	if _, _, err := m.PopFront(); !errors.Is(err, types.ErrEmptyContainer) {
		t.Fatalf("expected ErrEmptyContainer, got %v", err)
	}
	if _, _, ok := m.Front(); ok {
		t.Fatalf("Front of an empty map must report false")
	}

	mustInsert(t, m, 5, "e")
	mustInsert(t, m, 6, "f")

	k, v, ok := m.Front()
	if !ok || k != 5 || v != "e" {
		t.Fatalf("expected front 5=e, got %d=%q", k, v)
	}

	k, v, err := m.PopFront()
	if err != nil || k != 5 || v != "e" {
		t.Fatalf("expected to pop 5=e, got %d=%q (%v)", k, v, err)
	}
	mustVerify(t, m)
	assertKeys(t, m, []int{6})
}

//
// ================= TRAVERSAL =================
//

func TestTraversal(t *testing.T) {
	m := newIntMap()
	for i := 0; i < 4; i++ {
		mustInsert(t, m, i, "")
	}

	var forward []int
	for p := m.Begin(); !p.IsEnd(); {
		k, _, err := m.Entry(p)
		if err != nil {
			t.Fatalf("entry: %v", err)
		}
		forward = append(forward, k)
		if p, err = m.Next(p); err != nil {
			t.Fatalf("next: %v", err)
		}
	}
	if !reflect.DeepEqual(forward, []int{0, 1, 2, 3}) {
		t.Fatalf("forward walk: got %v", forward)
	}

	p, err := m.Prev(m.End())
	if err != nil {
		t.Fatalf("prev: %v", err)
	}
	if k, _, _ := m.Entry(p); k != 3 {
		t.Fatalf("Prev(End) should be 3, got %d", k)
	}
}

//
// ================= CAPACITY, CLONE & CLEAR =================
//

func TestCapacityExceededKeepsStructuresInSync(t *testing.T) {
	m := New[int, string](hashInt, eqInt, hashmap.WithSizeClasses(2))
	if m.MaxLen() != 2 {
		t.Fatalf("expected MaxLen 2, got %d", m.MaxLen())
	}
	mustInsert(t, m, 1, "a")
	mustInsert(t, m, 2, "b")

	if _, err := m.Insert(3, "c"); !errors.Is(err, types.ErrCapacityExceeded) {
		t.Fatalf("expected ErrCapacityExceeded, got %v", err)
	}
	mustVerify(t, m)
	assertKeys(t, m, []int{1, 2})
}

func TestCloneIsIndependent(t *testing.T) {
	m := newIntMap()
	for i := 0; i < 10; i++ {
		mustInsert(t, m, i, "v")
	}
	c := m.Clone()
	mustVerify(t, c)

	mustInsert(t, m, 0, "changed")
	m.Delete(5)

	assertKeys(t, c, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9})
	if v, _ := c.Get(0); v != "v" {
		t.Fatalf("clone saw an update of the original: %q", v)
	}

	mustInsert(t, c, 100, "new")
	if m.Count(100) != 0 {
		t.Fatalf("original saw an insert into the clone")
	}
}

func TestClear(t *testing.T) {
	m := newIntMap()
	for i := 0; i < 30; i++ {
		mustInsert(t, m, i, "v")
	}
	m.Clear()
	if m.Len() != 0 {
		t.Fatalf("expected empty map, got %d keys", m.Len())
	}
	mustVerify(t, m)
	mustInsert(t, m, 1, "a")
	assertKeys(t, m, []int{1})
}

// TestRandomOperationsKeepInvariants drives the map with a random mix of
// writes, touches and removals and checks the structure after every step.
func TestRandomOperationsKeepInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	m := newIntMap()
	var order []int // reference model, oldest first

	remove := func(k int) {
		for i, x := range order {
			if x == k {
				order = append(order[:i], order[i+1:]...)
				return
			}
		}
	}
	moveToBack := func(k int) {
		remove(k)
		order = append(order, k)
	}

	for i := 0; i < 5000; i++ {
		k := rng.Intn(64)
		switch rng.Intn(4) {
		case 0, 1:
			if _, err := m.Insert(k, "v"); err != nil {
				t.Fatalf("step %d: insert: %v", i, err)
			}
			moveToBack(k)
		case 2:
			if m.Touch(k) {
				moveToBack(k)
			}
		case 3:
			if m.Delete(k) {
				remove(k)
			}
		}
		mustVerify(t, m)
		if m.Len() != len(order) {
			t.Fatalf("step %d: expected %d keys, got %d", i, len(order), m.Len())
		}
	}
	assertKeys(t, m, order)
}
