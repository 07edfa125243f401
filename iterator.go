package channels

import "context"

// Iterator is a pull-style cursor over a Channel's values: call Next
// repeatedly until it returns false, then check Err for why iteration
// stopped (nil if the channel simply closed).
//
// Grounded on run_stream.go/map_stream.go's forwarder-goroutine loop shape
// ("select on ctx.Done() vs next value, stop on close"), inverted from a
// push (forward-to-another-channel) shape into a pull (caller-driven
// Next) shape since there is no downstream channel to forward into here.
type Iterator[T any] struct {
	ch  *Channel[T]
	err error
}

// NewIterator wraps ch for pull-style consumption.
func NewIterator[T any](ch *Channel[T]) *Iterator[T] {
	return &Iterator[T]{ch: ch}
}

// Next blocks until a value is available, the channel closes, or ctx is
// done. It returns false once iteration is over; Err distinguishes a clean
// close (nil) from an aborted one (ErrAborted).
func (it *Iterator[T]) Next(ctx context.Context) (T, bool) {
	var zero T
	if it.err != nil {
		return zero, false
	}
	v, ok, err := it.ch.Receive(ctx)
	if err != nil {
		it.err = err
		return zero, false
	}
	if !ok {
		return zero, false
	}
	return v, true
}

// Err reports the error that stopped iteration, if any. A clean close
// (the channel drained and closed without the iterator's ctx being
// cancelled) reports nil.
func (it *Iterator[T]) Err() error { return it.err }
