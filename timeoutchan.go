package channels

import (
	"context"
	"time"
)

// Timeout returns a Channel that delivers exactly one time.Time value after
// d elapses and then stays permanently closed, mirroring time.After but as
// a Channel[time.Time] so it composes with Receive/Select/Merge like any
// other source. The timer and the goroutine that delivers the value stay
// alive until d elapses, even if the returned channel is closed earlier;
// delivery is a non-blocking TrySend into the one-slot buffer, so the
// goroutine exits right after d elapses whether or not the value is read.
//
// Built directly on RaceTimeout's CancellableCompletion-backed timer rather
// than re-implementing timer bookkeeping here.
func Timeout(d time.Duration) *Channel[time.Time] {
	ch := NewChannel[time.Time](1)

	comp := RaceTimeout(d).wait(context.Background())
	go func() {
		<-comp.Done()
		_, _ = comp.Result()
		_, _ = ch.TrySend(time.Now())
		ch.Close()
	}()

	return ch
}
