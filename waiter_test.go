package channels

import "testing"

func TestWaiterList_FIFOOrder(t *testing.T) {
	var l waiterList[int]
	l.PushBack(1)
	l.PushBack(2)
	l.PushBack(3)

	for _, want := range []int{1, 2, 3} {
		v, ok := l.PopFront()
		if !ok || v != want {
			t.Fatalf("PopFront = (%v, %v), want (%d, true)", v, ok, want)
		}
	}
	if _, ok := l.PopFront(); ok {
		t.Fatal("PopFront on empty list should report false")
	}
}

func TestWaiterList_RemoveMiddle(t *testing.T) {
	var l waiterList[string]
	l.PushBack("a")
	r2 := l.PushBack("b")
	l.PushBack("c")

	l.Remove(r2)
	if l.Len() != 2 {
		t.Fatalf("Len = %d, want 2", l.Len())
	}

	var got []string
	for {
		v, ok := l.PopFront()
		if !ok {
			break
		}
		got = append(got, v)
	}
	if len(got) != 2 || got[0] != "a" || got[1] != "c" {
		t.Fatalf("remaining order = %v, want [a c]", got)
	}
}

func TestWaiterList_RemoveIsIdempotent(t *testing.T) {
	var l waiterList[int]
	r := l.PushBack(1)
	l.Remove(r)
	l.Remove(r) // must not panic or corrupt state
	if l.Len() != 0 {
		t.Fatalf("Len = %d, want 0", l.Len())
	}
}

func TestWaiterList_StaleRemoveAfterReuseIsNoOp(t *testing.T) {
	var l waiterList[int]
	stale := l.PushBack(1)
	if _, ok := l.PopFront(); !ok {
		t.Fatal("PopFront should dequeue the pushed value")
	}

	// The popped node goes back to the pool and may back the next push.
	// The ref captured before the pop must not be able to detach it.
	l.PushBack(2)
	l.Remove(stale)
	if l.Len() != 1 {
		t.Fatalf("Len = %d, want 1: stale ref removed a live waiter", l.Len())
	}

	v, ok := l.PopFront()
	if !ok || v != 2 {
		t.Fatalf("PopFront = (%v, %v), want (2, true)", v, ok)
	}
}
