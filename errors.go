package channels

import (
	"errors"
	"fmt"
)

// Namespace prefixes every sentinel error message defined by this package.
const Namespace = "channels"

var (
	// ErrClosedSend is returned by Send/TrySend against a channel that is
	// closed, whether it was already closed when the call was made or was
	// closed while the call was suspended.
	ErrClosedSend = errors.New(Namespace + ": send on closed channel")

	// ErrAborted is returned by any abortable wait (WaitUntilReadable,
	// WaitUntilWritable, Select) whose context is done before the operation
	// completed.
	ErrAborted = errors.New(Namespace + ": operation aborted")
)

// SelectFailure wraps a panic raised inside a Selectable arm's attempt, or
// an error returned by a FactoryCase constructor, preserving the arm's key
// for caller diagnostics. Errors an arm settles or commits with (a
// completion's error, ErrClosedSend from a RaceSend arm) are not wrapped:
// Select returns them in SelectResult.Err.
// It mirrors error_tagging.go's taskTaggedError shape: Unwrap exposes the
// underlying cause and Format supports %+v/%s/%q.
type SelectFailure struct {
	arm   string
	cause error
}

// newSelectFailure wraps cause with the name of the arm that raised it.
// Returns nil if cause is nil, so call sites can write
// `if err := ...; err != nil { return nil, newSelectFailure(name, err) }`
// without an extra nil check.
func newSelectFailure(arm string, cause error) error {
	if cause == nil {
		return nil
	}
	return &SelectFailure{arm: arm, cause: cause}
}

func (e *SelectFailure) Error() string {
	return fmt.Sprintf("%s: arm %q failed: %s", Namespace, e.arm, e.cause.Error())
}

// Unwrap exposes the underlying cause for errors.Is/errors.As.
func (e *SelectFailure) Unwrap() error { return e.cause }

// ArmName returns the key of the arm that raised the error.
func (e *SelectFailure) ArmName() string { return e.arm }

func (e *SelectFailure) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			_, _ = fmt.Fprintf(s, "arm(%s): %+v", e.arm, e.cause)
			return
		}
		fallthrough
	case 's':
		_, _ = fmt.Fprint(s, e.Error())
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", e.Error())
	}
}
