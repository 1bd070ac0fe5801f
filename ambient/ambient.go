package ambient

import (
	"context"
	"errors"
	"sync/atomic"
)

// ErrCancelled is returned when a cancellable operation observes a
// triggered cancellation signal.
var ErrCancelled = errors.New("ambient: operation cancelled")

// holder boxes a context so the slot can distinguish "cleared" from
// "never entered" and store heterogeneous context implementations.
type holder struct {
	ctx context.Context
}

var active atomic.Pointer[holder]

// Enter installs ctx as the active ambient context and returns a
// restore function that reinstates the prior value. A nil ctx clears
// the slot. Callers must pair every Enter with its restore, usually
// via defer:
//
//	defer ambient.Enter(ctx)()
//
// Enter follows stack discipline, not global overwrite: nested scopes
// restore in reverse order, and a scope never leaks its context into
// siblings or callers once it exits.
func Enter(ctx context.Context) (restore func()) {
	prev := active.Load()
	if ctx == nil {
		active.Store(nil)
	} else {
		active.Store(&holder{ctx: ctx})
	}
	return func() {
		active.Store(prev)
	}
}

// Active returns the currently installed ambient context, or
// context.Background when none is installed.
func Active() context.Context {
	if h := active.Load(); h != nil {
		return h.ctx
	}
	return context.Background()
}
