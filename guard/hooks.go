package guard

import "time"

// Hooks is the set of optional observability callbacks fired by the
// attempt loop and the circuit breaker. All fields may be nil. Hooks
// are invoked synchronously, in order, and their return values are
// never consulted; implementations must not panic.
type Hooks struct {
	// OnAttempt fires before each attempt, including the first.
	OnAttempt func(name string, attempt int)

	// OnSuccess fires when an attempt returns without error.
	OnSuccess func(name string, attempt int, elapsed time.Duration)

	// OnFailure fires when an attempt returns an error, including a
	// circuit-open refusal.
	OnFailure func(name string, attempt int, elapsed time.Duration, err error)

	// OnRetry fires after a failed attempt when a retry will follow,
	// before the backoff delay elapses.
	OnRetry func(name string, attempt int, delay time.Duration, err error)

	// OnCircuitOpen fires when the breaker transitions to open.
	OnCircuitOpen func(name string)

	// OnCircuitHalfOpen fires when the breaker admits a trial attempt.
	OnCircuitHalfOpen func(name string)

	// OnCircuitClosed fires when the breaker recovers to closed.
	OnCircuitClosed func(name string)
}

func (h Hooks) attempt(name string, attempt int) {
	if h.OnAttempt != nil {
		h.OnAttempt(name, attempt)
	}
}

func (h Hooks) success(name string, attempt int, elapsed time.Duration) {
	if h.OnSuccess != nil {
		h.OnSuccess(name, attempt, elapsed)
	}
}

func (h Hooks) failure(name string, attempt int, elapsed time.Duration, err error) {
	if h.OnFailure != nil {
		h.OnFailure(name, attempt, elapsed, err)
	}
}

func (h Hooks) retry(name string, attempt int, delay time.Duration, err error) {
	if h.OnRetry != nil {
		h.OnRetry(name, attempt, delay, err)
	}
}

func (h Hooks) circuitOpen(name string) {
	if h.OnCircuitOpen != nil {
		h.OnCircuitOpen(name)
	}
}

func (h Hooks) circuitHalfOpen(name string) {
	if h.OnCircuitHalfOpen != nil {
		h.OnCircuitHalfOpen(name)
	}
}

func (h Hooks) circuitClosed(name string) {
	if h.OnCircuitClosed != nil {
		h.OnCircuitClosed(name)
	}
}

// MergeHooks combines hook sets into one. For each event, every
// non-nil callback fires in argument order.
func MergeHooks(hs ...Hooks) Hooks {
	var merged Hooks

	for _, h := range hs {
		h := h
		if h.OnAttempt != nil {
			prev := merged.OnAttempt
			merged.OnAttempt = func(name string, attempt int) {
				if prev != nil {
					prev(name, attempt)
				}
				h.OnAttempt(name, attempt)
			}
		}
		if h.OnSuccess != nil {
			prev := merged.OnSuccess
			merged.OnSuccess = func(name string, attempt int, elapsed time.Duration) {
				if prev != nil {
					prev(name, attempt, elapsed)
				}
				h.OnSuccess(name, attempt, elapsed)
			}
		}
		if h.OnFailure != nil {
			prev := merged.OnFailure
			merged.OnFailure = func(name string, attempt int, elapsed time.Duration, err error) {
				if prev != nil {
					prev(name, attempt, elapsed, err)
				}
				h.OnFailure(name, attempt, elapsed, err)
			}
		}
		if h.OnRetry != nil {
			prev := merged.OnRetry
			merged.OnRetry = func(name string, attempt int, delay time.Duration, err error) {
				if prev != nil {
					prev(name, attempt, delay, err)
				}
				h.OnRetry(name, attempt, delay, err)
			}
		}
		if h.OnCircuitOpen != nil {
			prev := merged.OnCircuitOpen
			merged.OnCircuitOpen = func(name string) {
				if prev != nil {
					prev(name)
				}
				h.OnCircuitOpen(name)
			}
		}
		if h.OnCircuitHalfOpen != nil {
			prev := merged.OnCircuitHalfOpen
			merged.OnCircuitHalfOpen = func(name string) {
				if prev != nil {
					prev(name)
				}
				h.OnCircuitHalfOpen(name)
			}
		}
		if h.OnCircuitClosed != nil {
			prev := merged.OnCircuitClosed
			merged.OnCircuitClosed = func(name string) {
				if prev != nil {
					prev(name)
				}
				h.OnCircuitClosed(name)
			}
		}
	}

	return merged
}
