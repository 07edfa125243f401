// Package pool recycles short-lived allocations for the channels package.
// It provides only a dynamic, sync.Pool-backed recycler: there is no
// bounded-capacity variant here because nothing in this module has a
// bounded-worker-count concept to serve (see this repository's DESIGN.md
// for the rationale).
package pool

import "sync"

// Dynamic is a generic sync.Pool wrapper that grows and shrinks with GC
// pressure.
type Dynamic[T any] struct {
	pool sync.Pool
}

// NewDynamic constructs a Dynamic pool whose elements are produced by new
// when empty.
func NewDynamic[T any](new func() T) *Dynamic[T] {
	return &Dynamic[T]{pool: sync.Pool{New: func() interface{} { return new() }}}
}

// Get returns a recycled or freshly constructed element.
func (p *Dynamic[T]) Get() T {
	return p.pool.Get().(T)
}

// Put returns el to the pool for reuse.
func (p *Dynamic[T]) Put(el T) {
	p.pool.Put(el)
}
