package channels

import (
	"context"
	"sync"
)

// Executor is the constructor function supplied to NewCancellableCompletion.
// It may settle the token synchronously by calling resolve or reject, or it
// may register asynchronous work and return a cleanupOnAbort func to be
// invoked exactly once if the token is later aborted before it settles.
// A nil return means no cleanup is needed.
//
// resolve and reject report whether the call actually settled the token
// (first writer wins). A caller handing a resource to a waiter checks this
// to detect losing the race against an abort, so the resource can be offered
// to the next waiter instead of being dropped.
type Executor[T any] func(resolve func(T) bool, reject func(error) bool) (cleanupOnAbort func())

// CancellableCompletion is a one-shot value-or-error token whose lifetime
// can be bound to a context.Context. It is this package's substitute for an
// AbortController-linked promise: ctx.Done() plays the role of the abort
// signal, and context.AfterFunc plays the role of addEventListener/
// removeEventListener — it registers a callback to run when ctx is done and
// returns a stop function that detaches it, so the abort listener is
// guaranteed to be removed once the token settles.
//
// Grounded on task.go's goroutine + `select { case <-ctx.Done(): ...; case
// <-done: ... }` pattern, generalized so any caller (not just one fixed
// goroutine body) can settle the token via resolve/reject.
type CancellableCompletion[T any] struct {
	mu      sync.Mutex
	settled bool
	value   T
	err     error
	doneCh  chan struct{}

	stopListener func() bool
	cleanup      func()
}

// NewCancellableCompletion constructs a token bound to ctx (which may be
// nil or context.Background() for an unbounded token that never aborts).
//
// If ctx is already done, executor is not invoked at all and the token
// settles synchronously as failed with ErrAborted. Otherwise executor runs
// synchronously; if it hasn't settled the token by the time it returns and
// ctx can still be cancelled, an abort listener is attached.
func NewCancellableCompletion[T any](ctx context.Context, executor Executor[T]) *CancellableCompletion[T] {
	c := &CancellableCompletion[T]{doneCh: make(chan struct{})}

	if ctx != nil && ctx.Err() != nil {
		var zero T
		c.settle(zero, ErrAborted)
		return c
	}

	resolve := func(v T) bool { return c.settle(v, nil) }
	reject := func(err error) bool { var zero T; return c.settle(zero, err) }

	cleanup := executor(resolve, reject)

	c.mu.Lock()
	alreadySettled := c.settled
	if !alreadySettled {
		c.cleanup = cleanup
	}
	c.mu.Unlock()

	if !alreadySettled && ctx != nil {
		stop := context.AfterFunc(ctx, func() {
			var zero T
			c.settle(zero, ErrAborted)
		})
		c.mu.Lock()
		if c.settled {
			// settled between the check above and attaching the listener;
			// settle ran before stopListener was set, so detach it here.
			c.mu.Unlock()
			stop()
		} else {
			c.stopListener = stop
			c.mu.Unlock()
		}
	}

	return c
}

// settle performs the first-writer-wins settle. Returns true iff this call
// actually settled the token. Only the winning call (and only when it
// settles the token as an abort) runs cleanupOnAbort, and only after the
// done channel has already been closed — so any waiter observes the
// failure before cleanup runs.
func (c *CancellableCompletion[T]) settle(v T, err error) bool {
	c.mu.Lock()
	if c.settled {
		c.mu.Unlock()
		return false
	}
	c.settled = true
	c.value, c.err = v, err
	stop := c.stopListener
	cleanup := c.cleanup
	isAbort := err == ErrAborted
	c.mu.Unlock()

	close(c.doneCh)

	if stop != nil {
		stop()
	}
	if isAbort && cleanup != nil {
		cleanup()
	}
	return true
}

// Done returns a channel closed once the token has settled.
func (c *CancellableCompletion[T]) Done() <-chan struct{} { return c.doneCh }

// Result blocks until the token settles and returns its value or error.
func (c *CancellableCompletion[T]) Result() (T, error) {
	<-c.doneCh
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value, c.err
}

// linkedAbort returns a context derived from upstream together with a
// cancel function that aborts it without affecting upstream. Cancelling
// upstream also cancels the derived context and detaches automatically.
// This is exactly context.WithCancel's contract; the wrapper exists so
// call sites read as deriving a scoped abort signal rather than reaching
// for context.WithCancel directly with no explanation of why.
func linkedAbort(upstream context.Context) (context.Context, context.CancelFunc) {
	if upstream == nil {
		upstream = context.Background()
	}
	return context.WithCancel(upstream)
}
