package ring

import "testing"

func TestBuffer_WriteReadFIFO(t *testing.T) {
	b := New[int](3)
	if !b.Write(1) || !b.Write(2) || !b.Write(3) {
		t.Fatal("Write into non-full buffer should succeed")
	}
	if b.Write(4) {
		t.Fatal("Write into full buffer should fail")
	}

	for _, want := range []int{1, 2, 3} {
		v, ok := b.Read()
		if !ok || v != want {
			t.Fatalf("Read = (%v, %v), want (%d, true)", v, ok, want)
		}
	}
	if _, ok := b.Read(); ok {
		t.Fatal("Read on empty buffer should report false")
	}
}

func TestBuffer_WrapAround(t *testing.T) {
	b := New[int](2)
	b.Write(1)
	b.Write(2)
	b.Read()
	b.Write(3)

	v, ok := b.Read()
	if !ok || v != 2 {
		t.Fatalf("Read = (%v, %v), want (2, true)", v, ok)
	}
	v, ok = b.Read()
	if !ok || v != 3 {
		t.Fatalf("Read = (%v, %v), want (3, true)", v, ok)
	}
}

func TestBuffer_ZeroCapacityAlwaysEmpty(t *testing.T) {
	b := New[int](0)
	if !b.Empty() || !b.Full() {
		t.Fatal("zero-capacity buffer should report both Empty and Full")
	}
	if b.Write(1) {
		t.Fatal("Write into zero-capacity buffer should always fail")
	}
}

func TestBuffer_NegativeCapacityPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("New with negative capacity should panic")
		}
	}()
	New[int](-1)
}

func TestBuffer_Peek(t *testing.T) {
	b := New[int](2)
	b.Write(5)
	v, ok := b.Peek()
	if !ok || v != 5 {
		t.Fatalf("Peek = (%v, %v), want (5, true)", v, ok)
	}
	if b.Len() != 1 {
		t.Fatal("Peek must not remove the element")
	}
}
