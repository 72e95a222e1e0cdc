package asyncrt

import (
	"fmt"
)

// ProgrammerError marks a condition that indicates a bug in the caller rather than
// a recoverable runtime condition: polling a completed task or leaf future,
// scheduling a sleep longer than [MaxTimerDuration], or dropping a frozen event
// node while it is still linked into a frozen list. These are always panics,
// never returned errors — see the error table in SPEC_FULL.md. The reactor-side
// panics (cancelling an unknown timer, waiting with nothing registered) come
// from toyreactor and carry their own values, not a ProgrammerError.
type ProgrammerError struct {
	Op    string
	Cause error
}

func (e *ProgrammerError) Error() string {
	if e.Cause == nil {
		return "asyncrt: " + e.Op
	}
	return fmt.Sprintf("asyncrt: %s: %v", e.Op, e.Cause)
}

// Unwrap enables [errors.Is] and [errors.As] through the cause chain.
func (e *ProgrammerError) Unwrap() error {
	return e.Cause
}

func panicf(op string, format string, args ...any) {
	panic(&ProgrammerError{Op: op, Cause: fmt.Errorf(format, args...)})
}

// Disconnected is returned by oneshot and channel operations when the peer side of
// the rendezvous was dropped before an exchange completed. It is a typed value, not
// a panic: the original spec.md treats peer disconnection as an ordinary, locally
// recoverable outcome.
type Disconnected struct {
	// Side names which end of the rendezvous observed the disconnect, e.g.
	// "sender" or "receiver", for diagnostic purposes only.
	Side string
}

func (e *Disconnected) Error() string {
	if e.Side == "" {
		return "asyncrt: peer disconnected"
	}
	return "asyncrt: " + e.Side + " disconnected"
}

// ErrDisconnected is a sentinel usable with [errors.Is]; all [*Disconnected] values
// satisfy errors.Is(err, ErrDisconnected).
var ErrDisconnected = &Disconnected{}

// Is reports whether target is any *Disconnected value, regardless of Side.
func (e *Disconnected) Is(target error) bool {
	_, ok := target.(*Disconnected)
	return ok
}
