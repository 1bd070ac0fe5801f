package guard

import "errors"

// Sentinel errors for guarded calls.
var (
	// ErrTimeout is returned when an attempt exceeds the configured timeout.
	ErrTimeout = errors.New("guard: attempt timed out")

	// ErrCircuitOpen is returned when the circuit breaker refuses an attempt.
	// It is always terminal: it is never retried and never counted as a
	// fresh breaker failure.
	ErrCircuitOpen = errors.New("guard: circuit breaker is open")

	// ErrExhausted is returned when the attempt loop ends without having
	// recorded an error. Callers should never see it in practice.
	ErrExhausted = errors.New("guard: attempts exhausted")
)
