package channels

import (
	"context"
	"time"
)

// PartitionTime batches src's values into slices of up to groupSize,
// flushing early if idleTimeout elapses since the last value arrived. The
// output channel closes once src closes, after a final flush of any
// partial group accumulated up to that point. On ctx cancellation the
// consuming goroutine stops without flushing the pending partial group;
// an observer learns about cancellation from its own Receive/Select call,
// not from a forced flush.
//
// Grounded on reorderer.go's single-goroutine coordinator shape: one
// goroutine, a cursor/buffer it owns exclusively, and an output channel it
// closes only when it stops: after src closes, once ctx is done, or when a
// flush fails. idleTimeout is
// implemented with RaceTimeout/Select from this package rather than a bare
// time.After, since a raw time.After leaks its timer when the select case
// it feeds isn't the one that fires.
func PartitionTime[T any](ctx context.Context, src *Channel[T], groupSize int, idleTimeout time.Duration, capacity int) *Channel[[]T] {
	if groupSize <= 0 {
		panic(Namespace + ": PartitionTime requires groupSize > 0")
	}

	out := NewChannel[[]T](capacity)

	go func() {
		defer out.Close()

		var batch []T
		flush := func() bool {
			if len(batch) == 0 {
				return true
			}
			b := batch
			batch = nil
			return out.Send(ctx, b) == nil
		}

		for {
			result, err := Select(ctx, []Case{
				SelectableCase("value", src.RaceReceive()),
				SelectableCase("idle", RaceTimeout(idleTimeout)),
			})
			if err != nil {
				return // ctx done: no flush of the pending partial group.
			}

			switch result.Key {
			case "idle":
				if !flush() {
					return
				}
			case "value":
				rr := result.Value.(ReceiveResult[T])
				if !rr.Ok {
					flush()
					return
				}
				batch = append(batch, rr.Value)
				if len(batch) >= groupSize {
					if !flush() {
						return
					}
				}
			}
		}
	}()

	return out
}
