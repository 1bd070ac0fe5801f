package guard

import "time"

// Config configures a wrapped callable. It is read once at wrap time
// and shared read-only across every invocation of the wrapper.
type Config struct {
	// Name identifies the callable in hooks and metrics.
	// Default: "" (anonymous)
	Name string

	// Retries is the number of retries after the first attempt, so a
	// callable is attempted at most Retries+1 times.
	// Default: 0 (a single attempt)
	Retries int

	// Timeout bounds each individual attempt. Zero means unbounded.
	Timeout time.Duration

	// Backoff computes the delay between attempts.
	// Default: no delay
	Backoff Backoff

	// RetryIf determines whether an error should trigger a retry. It
	// is never consulted for ErrCircuitOpen.
	// Default: all errors trigger retry.
	RetryIf func(err error) bool

	// Breaker enables a circuit breaker shared by all invocations of
	// the wrapped callable. Nil disables circuit breaking.
	Breaker *BreakerConfig

	// Hooks receive observability callbacks.
	Hooks Hooks

	// Propagate installs each attempt's cancellation context as the
	// ambient signal for the duration of the attempt, so nested
	// operations that were not handed a context inherit the attempt's
	// timeout. See the ambient package for the sharing caveats.
	Propagate bool
}

func (c Config) withDefaults() Config {
	if c.Retries < 0 {
		c.Retries = 0
	}
	if c.RetryIf == nil {
		c.RetryIf = func(err error) bool { return err != nil }
	}
	return c
}
