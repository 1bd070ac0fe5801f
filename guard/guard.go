package guard

import (
	"context"
	"errors"
	"time"

	"github.com/jonwraymond/callguard/ambient"
)

// Func is the normalized shape of a guarded callable: it observes ctx
// for cancellation and returns a value or an error. Synchronous work
// fits by simply ignoring ctx.
type Func[T any] func(ctx context.Context) (T, error)

// Wrap returns a callable that runs fn with timeout enforcement,
// bounded retries with backoff, circuit breaking, and observability
// hooks, per cfg. The wrapper is invoked exactly like fn.
//
// Attempts execute strictly sequentially: attempt i+1 never starts
// before attempt i's outcome is resolved and its hooks have fired.
// Concurrent invocations of the same wrapper share one circuit
// breaker; the breaker models the callable's aggregate health, not
// any single invocation's attempt sequence.
func Wrap[T any](fn Func[T], cfg Config) Func[T] {
	cfg = cfg.withDefaults()

	var breaker *Breaker
	if cfg.Breaker != nil {
		breaker = NewBreaker(cfg.Name, *cfg.Breaker, cfg.Hooks)
	}

	return func(ctx context.Context) (T, error) {
		return run(ctx, fn, cfg, breaker)
	}
}

// WrapErr is Wrap for callables that return only an error.
func WrapErr(fn func(ctx context.Context) error, cfg Config) func(ctx context.Context) error {
	wrapped := Wrap(func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	}, cfg)

	return func(ctx context.Context) error {
		_, err := wrapped(ctx)
		return err
	}
}

// run is the attempt loop. It resolves with fn's result or with the
// terminal failure: the last attempt's error, or ErrCircuitOpen if
// the breaker refused, whichever ended the loop.
func run[T any](ctx context.Context, fn Func[T], cfg Config, breaker *Breaker) (T, error) {
	var zero T
	var lastErr error

	for attempt := 1; attempt <= cfg.Retries+1; attempt++ {
		cfg.Hooks.attempt(cfg.Name, attempt)

		if breaker != nil && !breaker.Allow() {
			// Fail fast. The refusal is terminal: no retry, no
			// backoff, and no fresh failure recorded on the breaker.
			cfg.Hooks.failure(cfg.Name, attempt, 0, ErrCircuitOpen)
			return zero, ErrCircuitOpen
		}

		start := time.Now()
		result, err := invoke(ctx, fn, cfg)
		elapsed := time.Since(start)

		if err == nil {
			if breaker != nil {
				breaker.Success()
			}
			cfg.Hooks.success(cfg.Name, attempt, elapsed)
			return result, nil
		}

		if breaker != nil {
			breaker.Failure()
		}
		cfg.Hooks.failure(cfg.Name, attempt, elapsed, err)
		lastErr = err

		if attempt > cfg.Retries || !cfg.RetryIf(err) {
			break
		}
		if ctx.Err() != nil {
			// The caller is gone; retrying cannot help.
			break
		}

		delay := cfg.Backoff.Next(attempt)
		cfg.Hooks.retry(cfg.Name, attempt, delay, err)

		if delay > 0 {
			if ambient.Sleep(ctx, delay) != nil {
				// The wait was cut short by the caller; surface the
				// standard cancellation sentinel.
				return zero, ctx.Err()
			}
		}
	}

	if lastErr == nil {
		lastErr = ErrExhausted
	}
	return zero, lastErr
}

// invoke runs a single attempt. Each attempt gets its own cancellation
// context, derived with the configured timeout when one is set, and
// installs it as the ambient signal for the duration of the attempt
// when propagation is enabled (the slot is cleared otherwise, so
// nested utilities cannot inherit a stale signal). The prior ambient
// value is restored when the attempt resolves, success or failure.
func invoke[T any](ctx context.Context, fn Func[T], cfg Config) (T, error) {
	var attemptCtx context.Context
	var cancel context.CancelFunc
	if cfg.Timeout > 0 {
		attemptCtx, cancel = context.WithTimeout(ctx, cfg.Timeout)
	} else {
		attemptCtx, cancel = context.WithCancel(ctx)
	}
	defer cancel()

	if cfg.Propagate {
		defer ambient.Enter(attemptCtx)()
	} else {
		defer ambient.Enter(nil)()
	}

	if cfg.Timeout <= 0 {
		return fn(attemptCtx)
	}

	type outcome struct {
		value T
		err   error
	}

	done := make(chan outcome, 1)
	go func() {
		value, err := fn(attemptCtx)
		done <- outcome{value: value, err: err}
	}()

	select {
	case out := <-done:
		return out.value, out.err
	case <-attemptCtx.Done():
		// Cancellation is cooperative: fn keeps running until it
		// observes attemptCtx, which the deferred cancel fires.
		var zero T
		// Only the attempt budget maps to ErrTimeout. When the
		// caller's own context expired first, its error passes
		// through untouched.
		if ctx.Err() == nil && errors.Is(attemptCtx.Err(), context.DeadlineExceeded) {
			return zero, ErrTimeout
		}
		return zero, attemptCtx.Err()
	}
}
