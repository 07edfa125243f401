package channels

import "context"

// MapReadable returns a Channel that mirrors src's values through f as they
// are received, closing when src closes. It wraps Receive/Send rather than
// reimplementing channel internals, the same wrap-don't-reimplement
// composition style as map.go/map_stream.go's Map/MapStream over a Workers
// pool.
func MapReadable[T, U any](ctx context.Context, src *Channel[T], capacity int, f func(T) U) *Channel[U] {
	out := NewChannel[U](capacity)
	go func() {
		defer out.Close()
		for {
			v, ok, err := src.Receive(ctx)
			if err != nil || !ok {
				return
			}
			if sendErr := out.Send(ctx, f(v)); sendErr != nil {
				return
			}
		}
	}()
	return out
}

// MapWritable returns a Channel[T] that, for every value sent to it, applies
// f and forwards the result to dst. Closing the returned channel does not
// close dst: MapWritable never owns dst's lifecycle, only its own adapter
// channel's, the same non-owning-wrapper posture as MapReadable.
func MapWritable[T, U any](ctx context.Context, dst *Channel[U], capacity int, f func(T) U) *Channel[T] {
	in := NewChannel[T](capacity)
	go func() {
		for {
			v, ok, err := in.Receive(ctx)
			if err != nil || !ok {
				return
			}
			if sendErr := dst.Send(ctx, f(v)); sendErr != nil {
				return
			}
		}
	}()
	return in
}
