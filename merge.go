package channels

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Merge fans in every source into a single output Channel of the given
// capacity. The output closes once every source has closed; it is never
// closed early just because one source closes first. If ctx is cancelled,
// each forwarder goroutine stops at its next Receive/Send boundary and the
// output is closed once they have all unwound.
//
// Grounded on dispatcher.go's one-goroutine-per-item dispatch loop,
// generalized to one goroutine per source channel; uses errgroup.Group
// instead of a hand-rolled sync.WaitGroup + error channel (the pattern in
// error_forwarder.go) since none of this module's forwarders can fail —
// errgroup here is purely a join primitive, not error propagation, but it's
// still the natural tool for "wait for N goroutines, bounded by ctx".
func Merge[T any](ctx context.Context, capacity int, sources ...*Channel[T]) *Channel[T] {
	out := NewChannel[T](capacity)

	if len(sources) == 0 {
		out.Close()
		return out
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, src := range sources {
		src := src
		g.Go(func() error {
			for {
				v, ok, err := src.Receive(gctx)
				if err != nil {
					return nil // ctx done: stop forwarding from this source.
				}
				if !ok {
					return nil // source closed: this forwarder is done.
				}
				if sendErr := out.Send(gctx, v); sendErr != nil {
					return nil
				}
			}
		})
	}

	go func() {
		_ = g.Wait()
		out.Close()
	}()

	return out
}
