package channels

import (
	"context"
	"sync"

	"github.com/ygrebnov/channels/internal/ring"
	"github.com/ygrebnov/channels/metrics"
)

// ReceiveStatus distinguishes TryReceive's three outcomes: a value was
// taken, nothing is available right now but the channel is still open, or
// the channel is drained and closed. This is an explicit enum rather than
// an in-band sentinel value, since Go's native (T, ok) idiom lets this
// package report "drained and closed" without reserving any value T can
// hold.
type ReceiveStatus int

const (
	// StatusOK means the returned value was taken from the channel.
	StatusOK ReceiveStatus = iota
	// StatusEmpty means no value is available but the channel remains open.
	StatusEmpty
	// StatusClosed means the channel is drained and closed.
	StatusClosed
)

// sendWaiter is one entry in blockedSends: a pending send's value plus the
// callback that settles it (nil error on success, ErrClosedSend on drain).
// settle reports whether it won the race against the send's own abort; a
// false return means the sender has already observed ErrAborted, so its
// value must not be delivered and the dequeuer moves on to the next waiter.
type sendWaiter[T any] struct {
	value  T
	settle func(err error) bool
}

// recvWaiter is one entry in blockedReceives: the callback that settles a
// pending receive with either a delivered value or the empty-signal. As
// with sendWaiter, a false return means the receiver aborted first and the
// value must be offered elsewhere.
type recvWaiter[T any] struct {
	settle func(value T, ok bool) bool
}

// Channel is a typed rendezvous point with an optional fixed-capacity FIFO
// buffer. Capacity 0 means unbuffered: Send and Receive only ever hand
// values directly between a blocked sender and a blocked receiver.
//
// Grounded on runtime/chan.go's hchan: the rendezvous-before-buffer
// shortcut, wake-one-on-success policy, and close-drains-everything
// sequencing all mirror chansend/chanrecv/closechan, substituting a
// sync.Mutex + per-waiter done-channel for the runtime's lock+park/ready,
// the natural substitution once a single cooperative scheduler is replaced
// by real OS-thread concurrency.
type Channel[T any] struct {
	mu       sync.Mutex
	capacity int
	buf      *ring.Buffer[T]

	sendq waiterList[*sendWaiter[T]]
	recvq waiterList[*recvWaiter[T]]

	readableWaits notifySet
	writableWaits notifySet

	closed bool

	metrics metrics.Provider
}

// NewChannel constructs a Channel with the given fixed buffer capacity.
// Capacity 0 means unbuffered. A negative capacity is an argument error
// and panics synchronously at the call site, the same panic-on-bad-option
// convention WithFixedPool uses.
func NewChannel[T any](capacity int, opts ...ChannelOption) *Channel[T] {
	if err := validateCapacity(capacity); err != nil {
		panic(err)
	}

	cfg := defaultChannelConfig()
	for _, opt := range opts {
		if opt == nil {
			panic("channels: nil channel option")
		}
		opt(&cfg)
	}

	return &Channel[T]{
		capacity: capacity,
		buf:      ring.New[T](capacity),
		metrics:  cfg.metrics,
	}
}

// Capacity returns the channel's fixed buffer capacity (0 for unbuffered).
func (c *Channel[T]) Capacity() int { return c.capacity }

// ReadableWaitsCount reports the number of pending WaitUntilReadable
// subscribers. Observability only.
func (c *Channel[T]) ReadableWaitsCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.readableWaits.len()
}

// WritableWaitsCount reports the number of pending WaitUntilWritable
// subscribers. Observability only.
func (c *Channel[T]) WritableWaitsCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.writableWaits.len()
}

// Send blocks until v is delivered (to a waiting receiver or the buffer)
// or the channel is closed, in which case it returns ErrClosedSend. It
// also returns early with ErrAborted if ctx is done before delivery.
func (c *Channel[T]) Send(ctx context.Context, v T) error {
	comp := NewCancellableCompletion[struct{}](ctx, func(resolve func(struct{}) bool, reject func(error) bool) func() {
		c.mu.Lock()
		defer c.mu.Unlock()

		if c.closed {
			reject(ErrClosedSend)
			return nil
		}

		// Rendezvous shortcut. A popped receiver may have lost its settle
		// race against its own abort; skip it and try the next one rather
		// than dropping v.
		for {
			w, ok := c.recvq.PopFront()
			if !ok {
				break
			}
			if w.settle(v, true) {
				resolve(struct{}{})
				return nil
			}
		}

		// Wake a readable-waiter only once the rendezvous shortcut above has
		// failed, so a wait is only woken when it will actually observe
		// readability instead of finding the channel empty again.
		c.readableWaits.wakeOne()

		// Room in the buffer.
		if c.buf.Write(v) {
			resolve(struct{}{})
			return nil
		}

		// Suspend.
		c.metrics.Counter("channels_sends_blocked_total").Add(1)
		ref := c.sendq.PushBack(&sendWaiter[T]{
			value: v,
			settle: func(err error) bool {
				if err != nil {
					return reject(err)
				}
				return resolve(struct{}{})
			},
		})
		return func() {
			c.mu.Lock()
			c.sendq.Remove(ref)
			c.mu.Unlock()
		}
	})

	_, err := comp.Result()
	return err
}

// TrySend attempts to deliver v without blocking. It reports whether v was
// delivered; err is ErrClosedSend if the channel is closed (delivered is
// always false in that case).
func (c *Channel[T]) TrySend(v T) (delivered bool, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.trySendLocked(v)
}

func (c *Channel[T]) trySendLocked(v T) (bool, error) {
	if c.closed {
		return false, ErrClosedSend
	}
	for {
		w, ok := c.recvq.PopFront()
		if !ok {
			break
		}
		if w.settle(v, true) {
			c.readableWaits.wakeOne()
			return true, nil
		}
	}
	if c.buf.Write(v) {
		c.readableWaits.wakeOne()
		return true, nil
	}
	return false, nil
}

// Receive blocks until a value is available or the channel is drained and
// closed (ok == false, err == nil), or ctx is done first (err ==
// ErrAborted).
func (c *Channel[T]) Receive(ctx context.Context) (value T, ok bool, err error) {
	type result struct {
		value T
		ok    bool
	}

	comp := NewCancellableCompletion[result](ctx, func(resolve func(result) bool, reject func(error) bool) func() {
		c.mu.Lock()
		defer c.mu.Unlock()

		if v, status := c.tryReceiveLocked(); status != StatusEmpty {
			resolve(result{value: v, ok: status == StatusOK})
			return nil
		}

		c.metrics.Counter("channels_receives_blocked_total").Add(1)
		c.writableWaits.wakeOne()
		ref := c.recvq.PushBack(&recvWaiter[T]{
			settle: func(v T, ok bool) bool { return resolve(result{value: v, ok: ok}) },
		})
		return func() {
			c.mu.Lock()
			c.recvq.Remove(ref)
			c.mu.Unlock()
		}
	})

	res, err := comp.Result()
	return res.value, res.ok, err
}

// TryReceive takes the next value without blocking. See ReceiveStatus.
func (c *Channel[T]) TryReceive() (T, ReceiveStatus) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tryReceiveLocked()
}

func (c *Channel[T]) tryReceiveLocked() (T, ReceiveStatus) {
	var zero T

	if c.capacity == 0 {
		for {
			w, ok := c.sendq.PopFront()
			if !ok {
				break
			}
			// A popped sender may have already aborted; its value is then
			// not delivered and the next blocked sender is tried instead.
			if w.settle(nil) {
				return w.value, StatusOK
			}
		}
		if c.closed {
			return zero, StatusClosed
		}
		return zero, StatusEmpty
	}

	v, ok := c.buf.Read()
	if !ok {
		if c.closed {
			return zero, StatusClosed
		}
		return zero, StatusEmpty
	}
	for {
		w, ok := c.sendq.PopFront()
		if !ok {
			c.writableWaits.wakeOne()
			break
		}
		if w.settle(nil) {
			c.buf.Write(w.value)
			break
		}
	}
	return v, StatusOK
}

// WaitUntilReadable resolves once the next Receive would not block: a
// value is available or the channel is closed.
func (c *Channel[T]) WaitUntilReadable(ctx context.Context) *CancellableCompletion[struct{}] {
	return NewCancellableCompletion[struct{}](ctx, func(resolve func(struct{}) bool, reject func(error) bool) func() {
		c.mu.Lock()
		defer c.mu.Unlock()

		if c.closed || !c.buf.Empty() || c.sendq.Len() > 0 {
			resolve(struct{}{})
			return nil
		}

		gauge := c.metrics.UpDownCounter("channels_readable_waiters")
		gauge.Add(1)
		token := c.readableWaits.add(func() {
			gauge.Add(-1)
			resolve(struct{}{})
		})
		return func() {
			c.mu.Lock()
			removed := c.readableWaits.remove(token)
			c.mu.Unlock()
			if removed {
				gauge.Add(-1)
			}
		}
	})
}

// WaitUntilWritable resolves once the next Send would not block or
// reject: the channel has free buffer space, a receiver is already
// waiting, or the channel is closed (a send against it fails immediately
// rather than blocking).
func (c *Channel[T]) WaitUntilWritable(ctx context.Context) *CancellableCompletion[struct{}] {
	return NewCancellableCompletion[struct{}](ctx, func(resolve func(struct{}) bool, reject func(error) bool) func() {
		c.mu.Lock()
		defer c.mu.Unlock()

		if c.closed || !c.buf.Full() || c.recvq.Len() > 0 {
			resolve(struct{}{})
			return nil
		}

		gauge := c.metrics.UpDownCounter("channels_writable_waiters")
		gauge.Add(1)
		token := c.writableWaits.add(func() {
			gauge.Add(-1)
			resolve(struct{}{})
		})
		return func() {
			c.mu.Lock()
			removed := c.writableWaits.remove(token)
			c.mu.Unlock()
			if removed {
				gauge.Add(-1)
			}
		}
	})
}

// Close transitions the channel from open to closed, exactly once.
// Already-buffered values survive and are still delivered FIFO by later
// Receive/TryReceive calls before StatusClosed/ok==false is returned.
func (c *Channel[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true

	var zero T
	for {
		w, ok := c.recvq.PopFront()
		if !ok {
			break
		}
		w.settle(zero, false)
	}
	for {
		w, ok := c.sendq.PopFront()
		if !ok {
			break
		}
		w.settle(ErrClosedSend)
	}
	c.readableWaits.wakeAll()
	c.writableWaits.wakeAll()
}

// RaceReceive returns a Selectable performing a receive, for use with
// Select.
func (c *Channel[T]) RaceReceive() Selectable {
	return receiveSelectable[T]{ch: c}
}

// RaceSend returns a Selectable sending v, for use with Select.
func (c *Channel[T]) RaceSend(v T) Selectable {
	return sendSelectable[T]{ch: c, value: v}
}

// ReceiveResult is the boxed value a winning RaceReceive arm carries: Ok is
// false iff the channel was drained and closed (the select-observed
// equivalent of Receive's ok==false).
type ReceiveResult[T any] struct {
	Value T
	Ok    bool
}

type receiveSelectable[T any] struct{ ch *Channel[T] }

func (r receiveSelectable[T]) wait(ctx context.Context) *CancellableCompletion[struct{}] {
	return r.ch.WaitUntilReadable(ctx)
}

func (r receiveSelectable[T]) attempt() (any, error, bool) {
	v, status := r.ch.TryReceive()
	switch status {
	case StatusOK:
		return ReceiveResult[T]{Value: v, Ok: true}, nil, true
	case StatusClosed:
		return ReceiveResult[T]{Ok: false}, nil, true
	default: // StatusEmpty: woken but the value was stolen by another goroutine.
		return nil, nil, false
	}
}

type sendSelectable[T any] struct {
	ch    *Channel[T]
	value T
}

func (s sendSelectable[T]) wait(ctx context.Context) *CancellableCompletion[struct{}] {
	return s.ch.WaitUntilWritable(ctx)
}

func (s sendSelectable[T]) attempt() (any, error, bool) {
	delivered, err := s.ch.TrySend(s.value)
	switch {
	case err != nil:
		return nil, err, true
	case delivered:
		return struct{}{}, nil, true
	default: // woken but another goroutine claimed the slot/receiver first.
		return nil, nil, false
	}
}
