package pool

import "testing"

func TestDynamic_GetConstructsWhenEmpty(t *testing.T) {
	var constructed int
	p := NewDynamic(func() int {
		constructed++
		return constructed
	})

	v := p.Get()
	if v != 1 || constructed != 1 {
		t.Fatalf("Get = %d, constructed = %d, want 1, 1", v, constructed)
	}
}

func TestDynamic_PutAcceptsElementWithoutPanicking(t *testing.T) {
	p := NewDynamic(func() *int {
		v := -1
		return &v
	})
	el := p.Get()
	*el = 99
	p.Put(el) // sync.Pool gives no reuse guarantee; this only checks Put is safe to call.
}
