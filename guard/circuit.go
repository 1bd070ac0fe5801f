package guard

import (
	"sync"
	"time"
)

// State represents the circuit breaker state.
type State int

const (
	// StateClosed means the circuit is operating normally.
	StateClosed State = iota
	// StateOpen means the circuit is refusing all attempts.
	StateOpen
	// StateHalfOpen means the circuit is admitting a trial attempt.
	StateHalfOpen
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// BreakerConfig configures a circuit breaker.
type BreakerConfig struct {
	// FailureThreshold is the number of consecutive failures before
	// the circuit opens.
	// Default: 5
	FailureThreshold int

	// ResetTimeout is how long the circuit stays open before admitting
	// a trial attempt.
	// Default: 30 seconds
	ResetTimeout time.Duration
}

// Breaker is a per-callable circuit breaker. One instance guards all
// invocations of a wrapped callable; it is safe for concurrent use.
// No state is terminal: the machine cycles closed -> open -> half-open
// for the lifetime of the callable.
type Breaker struct {
	name  string
	cfg   BreakerConfig
	hooks Hooks

	mu       sync.Mutex
	state    State
	failures int
	openedAt time.Time
}

// NewBreaker creates a breaker with the given configuration. The name
// identifies the breaker in hook callbacks.
func NewBreaker(name string, cfg BreakerConfig, hooks Hooks) *Breaker {
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = 5
	}
	if cfg.ResetTimeout <= 0 {
		cfg.ResetTimeout = 30 * time.Second
	}

	return &Breaker{
		name:  name,
		cfg:   cfg,
		hooks: hooks,
		state: StateClosed,
	}
}

// Allow reports whether an attempt may proceed. An open circuit whose
// reset timeout has elapsed transitions to half-open before admitting
// the attempt. A false return means the caller must fail fast with
// ErrCircuitOpen without invoking the underlying callable.
func (b *Breaker) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateOpen:
		if time.Since(b.openedAt) < b.cfg.ResetTimeout {
			return false
		}
		b.state = StateHalfOpen
		b.hooks.circuitHalfOpen(b.name)
		return true
	default:
		return true
	}
}

// Success records a successful attempt. The failure count resets and
// a non-closed circuit closes.
func (b *Breaker) Success() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state != StateClosed {
		b.state = StateClosed
		b.hooks.circuitClosed(b.name)
	}
	b.failures = 0
}

// Failure records a failed attempt. The circuit opens when the failure
// count reaches the threshold, or immediately when the trial attempt
// of a half-open circuit fails.
func (b *Breaker) Failure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failures++
	if b.state == StateHalfOpen || b.failures >= b.cfg.FailureThreshold {
		b.state = StateOpen
		b.openedAt = time.Now()
		b.hooks.circuitOpen(b.name)
	}
}

// State returns the current circuit state. An open circuit whose reset
// timeout has elapsed still reports open; the transition to half-open
// happens on the next Allow.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Failures returns the current consecutive failure count.
func (b *Breaker) Failures() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.failures
}

// Reset forces the breaker back to closed and clears the failure count.
func (b *Breaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state != StateClosed {
		b.state = StateClosed
		b.hooks.circuitClosed(b.name)
	}
	b.failures = 0
}
