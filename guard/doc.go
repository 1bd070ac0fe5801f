// Package guard wraps callables with resilience behavior.
//
// Given any callable in the shape func(ctx) (T, error), [Wrap] returns
// a callable with the same shape that adds timeout enforcement,
// bounded retries with backoff, circuit breaking, cooperative
// cancellation, and observability hooks. Callers invoke the wrapper
// exactly as they would the original.
//
// # Behavior
//
// Each invocation runs an attempt loop of at most Retries+1 attempts.
// Before each attempt the circuit breaker (if configured) is
// consulted; a refusal surfaces [ErrCircuitOpen] immediately, without
// invoking the callable, and is never retried. A configured timeout
// bounds each attempt individually: the callable's completion is
// raced against the deadline and a loss surfaces [ErrTimeout], with
// cancellation offered to the callable through its context.
// Cancellation is cooperative, never forced.
//
// Failed attempts are retried while the retry budget and the RetryIf
// predicate allow, with the delay between attempts computed by the
// configured [Backoff]. A non-retried failure propagates to the
// caller unchanged.
//
// # Usage
//
//	fetch := guard.Wrap(func(ctx context.Context) (*Report, error) {
//	    return loadReport(ctx)
//	}, guard.Config{
//	    Name:    "load_report",
//	    Retries: 2,
//	    Timeout: 5 * time.Second,
//	    Backoff: guard.ExponentialBackoff(100*time.Millisecond, 2*time.Second).WithJitter(),
//	    Breaker: &guard.BreakerConfig{FailureThreshold: 3, ResetTimeout: time.Minute},
//	})
//
//	report, err := fetch(ctx)
//
// # Observability
//
// The attempt loop fires the callbacks in [Hooks] at every transition:
// attempt start, success, failure, retry, and circuit state changes.
// Hooks are the engine's only observability mechanism; the observe
// package provides ready-made hook sets for metrics and logging.
package guard
