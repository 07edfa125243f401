package channels

import (
	"context"
	"time"
)

// Selectable is an operation that can be raced inside Select: wait returns
// a completion that resolves once the operation is worth attempting, and
// attempt tries to commit it without blocking. attempt returning ok==false
// means a steal happened (another goroutine got there first); Select
// re-arms by calling wait again.
//
// Both methods are unexported so the only way to build a Selectable from
// outside this package is through one of the constructors below or
// Channel.RaceSend/RaceReceive, keeping the set of selectable kinds closed.
type Selectable interface {
	wait(ctx context.Context) *CancellableCompletion[struct{}]
	attempt() (value any, err error, committed bool)
}

// abortSignalSelectable implements RaceAbortSignal.
type abortSignalSelectable struct{ signal context.Context }

// RaceAbortSignal returns a Selectable whose attempt commits with
// signal.Err() once signal is done; until then it waits for signal to be
// done. The listener attached to signal is removed on select completion,
// via CancellableCompletion's own teardown.
func RaceAbortSignal(signal context.Context) Selectable {
	return abortSignalSelectable{signal: signal}
}

func (a abortSignalSelectable) wait(ctx context.Context) *CancellableCompletion[struct{}] {
	return NewCancellableCompletion[struct{}](ctx, func(resolve func(struct{}) bool, _ func(error) bool) func() {
		if a.signal.Err() != nil {
			resolve(struct{}{})
			return nil
		}
		stop := context.AfterFunc(a.signal, func() { resolve(struct{}{}) })
		return func() { stop() }
	})
}

func (a abortSignalSelectable) attempt() (any, error, bool) {
	if err := a.signal.Err(); err != nil {
		return nil, err, true
	}
	return nil, nil, false
}

// timeoutSelectable implements RaceTimeout.
type timeoutSelectable struct{ d time.Duration }

// RaceTimeout returns a Selectable that commits once d has elapsed. The
// backing timer is armed by wait and is stopped by CancellableCompletion's
// cleanup-on-abort if this arm does not end up winning, so a losing
// RaceTimeout arm never leaks a running timer.
func RaceTimeout(d time.Duration) Selectable {
	return timeoutSelectable{d: d}
}

func (t timeoutSelectable) wait(ctx context.Context) *CancellableCompletion[struct{}] {
	return NewCancellableCompletion[struct{}](ctx, func(resolve func(struct{}) bool, _ func(error) bool) func() {
		timer := time.AfterFunc(t.d, func() { resolve(struct{}{}) })
		return func() { timer.Stop() }
	})
}

func (t timeoutSelectable) attempt() (any, error, bool) {
	// Nothing else can consume a timer firing out from under us; by the
	// time Select calls attempt, wait already resolved because the timer
	// fired, so this always commits.
	return struct{}{}, nil, true
}

// neverSelectable implements RaceNever.
type neverSelectable struct{}

// RaceNever is a Selectable that never fires and never commits. It exists
// for conditionally including or excluding an arm: pass RaceNever instead
// of omitting the arm to keep a fixed arm set across calls.
var RaceNever Selectable = neverSelectable{}

func (neverSelectable) wait(ctx context.Context) *CancellableCompletion[struct{}] {
	return NewCancellableCompletion[struct{}](ctx, func(func(struct{}) bool, func(error) bool) func() {
		return nil // never resolves on its own; only the selection ctx can abort it.
	})
}

func (neverSelectable) attempt() (any, error, bool) { return nil, nil, false }
