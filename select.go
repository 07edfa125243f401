package channels

import (
	"context"
	"math/rand"
	"reflect"
	"time"
)

// SelectResult is the outcome of a winning Select arm: Key identifies which
// Case won, Value carries its payload (boxed; callers type-assert against
// what that arm is documented to produce, e.g. ReceiveResult[T] for a
// RaceReceive arm), and Err carries any definitive per-arm error (such as
// ErrClosedSend from a RaceSend arm against a closed channel, or a signal's
// own Err() from RaceAbortSignal) that is not itself a Select failure.
type SelectResult struct {
	Key   string
	Value any
	Err   error
}

type armKind int

const (
	armSelectable armKind = iota
	armCompletion
	armFactory
)

// boxedCompletion erases a *CancellableCompletion[T]'s type parameter so
// Select can race arms of differing T behind one reflect.Select call.
type boxedCompletion struct {
	done <-chan struct{}
	get  func() (any, error)
}

func adaptCompletion[T any](c *CancellableCompletion[T]) boxedCompletion {
	return boxedCompletion{
		done: c.Done(),
		get: func() (any, error) {
			v, err := c.Result()
			return v, err
		},
	}
}

// Case is one arm of a Select call. Build one with SelectableCase,
// CompletionCase, or FactoryCase — the three supported arm kinds.
type Case struct {
	key  string
	kind armKind

	selectable Selectable
	completion boxedCompletion
	factory    func(ctx context.Context) (boxedCompletion, error)
}

// SelectableCase races a Selectable (one of Channel.RaceReceive,
// Channel.RaceSend, RaceAbortSignal, RaceTimeout, or RaceNever). key
// identifies this arm in the returned SelectResult and in any SelectFailure.
func SelectableCase(key string, s Selectable) Case {
	return Case{key: key, kind: armSelectable, selectable: s}
}

// CompletionCase races an already-constructed CancellableCompletion. Unlike
// a Selectable arm, a completion arm never steals and is never re-armed: it
// either wins outright with its settled value/error, or it loses and is
// abandoned (its own lifetime is the caller's responsibility, not Select's).
func CompletionCase[T any](key string, c *CancellableCompletion[T]) Case {
	return Case{key: key, kind: armCompletion, completion: adaptCompletion(c)}
}

// FactoryCase calls f once, at the start of the Select call, to obtain the
// completion to race, binding its lifetime to the selection: if f's
// completion does not win, it is aborted via the same linked context every
// Selectable arm uses. An error returned by f itself (not by the completion
// it would have produced) is surfaced wrapped in a SelectFailure tagged with
// key, and resolves the whole Select call immediately.
func FactoryCase[T any](key string, f func(ctx context.Context) (*CancellableCompletion[T], error)) Case {
	return Case{
		key:  key,
		kind: armFactory,
		factory: func(ctx context.Context) (boxedCompletion, error) {
			c, err := f(ctx)
			if err != nil {
				return boxedCompletion{}, err
			}
			return adaptCompletion(c), nil
		},
	}
}

// pendingArm tracks one arm's current wait-completion across steal/re-arm
// iterations of the select loop.
type pendingArm struct {
	kind armKind
	done <-chan struct{}

	selectable Selectable // armSelectable only
	get        func() (any, error) // armCompletion/armFactory only
}

// Select races cases and returns the first to commit, fairly: ties among
// simultaneously-ready arms are broken by an initial Fisher-Yates shuffle of
// arm order, on top of which Go's own runtime select already draws
// uniformly among ready channels regardless of case order — the explicit
// shuffle here documents that fairness guarantee rather than being needed
// to produce it, since reflect.Select provides it regardless.
//
// Select blocks until one case commits or ctx is done, in which case it
// returns a zero SelectResult and ErrAborted. A panic inside a Selectable's
// attempt, or an error from a Factory's constructor, is reported as a
// SelectFailure tagged with the offending arm's key.
//
// Grounded on runtime/select.go's pollorder/lockorder shuffle-then-poll
// shape and dispatcher.go's steal-and-retry pattern for claiming work
// concurrently offered to more than one goroutine.
func Select(ctx context.Context, cases []Case, opts ...SelectOption) (result SelectResult, err error) {
	if len(cases) == 0 {
		panic(Namespace + ": Select requires at least one case")
	}

	cfg := defaultSelectConfig()
	for _, opt := range opts {
		if opt == nil {
			panic("channels: nil select option")
		}
		opt(&cfg)
	}

	if ctx == nil {
		ctx = context.Background()
	}
	selCtx, cancelSel := linkedAbort(ctx)
	defer cancelSel()

	start := time.Now()
	defer func() {
		cfg.metrics.Histogram("channels_select_duration_seconds").Record(time.Since(start).Seconds())
	}()

	order := make([]int, len(cases))
	for i := range order {
		order[i] = i
	}
	rand.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

	pending := make([]pendingArm, len(cases))
	for _, i := range order {
		c := cases[i]
		switch c.kind {
		case armSelectable:
			pending[i] = pendingArm{
				kind:       armSelectable,
				done:       c.selectable.wait(selCtx).Done(),
				selectable: c.selectable,
			}
		case armCompletion:
			pending[i] = pendingArm{kind: armCompletion, done: c.completion.done, get: c.completion.get}
		case armFactory:
			built, ferr := c.factory(selCtx)
			if ferr != nil {
				return SelectResult{Key: c.key}, newSelectFailure(c.key, ferr)
			}
			pending[i] = pendingArm{kind: armFactory, done: built.done, get: built.get}
		}
	}

	for {
		if ctx.Err() != nil {
			return SelectResult{}, ErrAborted
		}

		i := pollOnce(selCtx, order, pending)

		if i < 0 || ctx.Err() != nil {
			return SelectResult{}, ErrAborted
		}

		cfg.metrics.Counter("channels_select_iterations_total").Add(1)

		c := cases[i]
		switch c.kind {
		case armCompletion, armFactory:
			v, gerr := pending[i].get()
			return SelectResult{Key: c.key, Value: v, Err: gerr}, nil

		case armSelectable:
			value, aerr, committed, panicErr := attemptSafely(pending[i].selectable)
			if panicErr != nil {
				return SelectResult{Key: c.key}, newSelectFailure(c.key, panicErr)
			}
			if committed {
				return SelectResult{Key: c.key, Value: value, Err: aerr}, nil
			}
			// Stolen: re-arm this arm only and keep looping.
			cfg.metrics.Counter("channels_select_steals_total").Add(1)
			pending[i] = pendingArm{
				kind:       armSelectable,
				done:       c.selectable.wait(selCtx).Done(),
				selectable: c.selectable,
			}
		}
	}
}

// pollOnce blocks until some arm's done channel is closed and returns its
// index, or -1 if the selection context was cancelled first. Racing ctx
// here matters for arm sets made only of plain completions, which are not
// bound to the selection context and so would otherwise never wake a
// cancelled Select. order only determines the case order reflect.Select is
// built in; it does not affect fairness (see Select's doc comment).
func pollOnce(ctx context.Context, order []int, pending []pendingArm) int {
	selectCases := make([]reflect.SelectCase, len(order)+1)
	for pos, idx := range order {
		selectCases[pos] = reflect.SelectCase{Dir: reflect.SelectRecv, Chan: reflect.ValueOf(pending[idx].done)}
	}
	selectCases[len(order)] = reflect.SelectCase{Dir: reflect.SelectRecv, Chan: reflect.ValueOf(ctx.Done())}
	chosen, _, _ := reflect.Select(selectCases)
	if chosen == len(order) {
		return -1
	}
	return order[chosen]
}

// attemptSafely calls s.attempt(), converting a panic into an error instead
// of propagating it, so one misbehaving arm cannot take down the whole
// Select call.
func attemptSafely(s Selectable) (value any, err error, committed bool, panicErr error) {
	defer func() {
		if r := recover(); r != nil {
			panicErr = panicToError(r)
		}
	}()
	value, err, committed = s.attempt()
	return
}

func panicToError(r any) error {
	if e, ok := r.(error); ok {
		return e
	}
	return &panicValue{r}
}

type panicValue struct{ v any }

func (p *panicValue) Error() string { return "channels: arm panicked: " + formatPanic(p.v) }

func formatPanic(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	if e, ok := v.(error); ok {
		return e.Error()
	}
	return "non-error panic value"
}
