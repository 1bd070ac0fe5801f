package guard

import (
	"math"
	"math/rand/v2"
	"time"
)

// BackoffKind identifies a backoff strategy.
type BackoffKind int

const (
	// BackoffNone applies no delay between attempts.
	BackoffNone BackoffKind = iota
	// BackoffFixed uses the same delay for all retries.
	BackoffFixed
	// BackoffExponential doubles the delay each attempt, capped at MaxDelay.
	BackoffExponential
)

// Backoff describes how delays grow between retries. The zero value
// applies no delay.
type Backoff struct {
	// Kind selects the strategy.
	Kind BackoffKind

	// Delay is the constant delay for BackoffFixed.
	Delay time.Duration

	// BaseDelay is the first-retry delay for BackoffExponential.
	BaseDelay time.Duration

	// MaxDelay caps the exponential delay. Zero means no cap.
	MaxDelay time.Duration

	// Jitter replaces the computed delay with a uniform draw from
	// [0, delay) to avoid synchronized retry storms.
	Jitter bool
}

// FixedBackoff returns a constant-delay backoff.
func FixedBackoff(d time.Duration) Backoff {
	return Backoff{Kind: BackoffFixed, Delay: d}
}

// ExponentialBackoff returns an exponential backoff starting at base
// and capped at max.
func ExponentialBackoff(base, max time.Duration) Backoff {
	return Backoff{Kind: BackoffExponential, BaseDelay: base, MaxDelay: max}
}

// WithJitter returns a copy of b with full jitter enabled.
func (b Backoff) WithJitter() Backoff {
	b.Jitter = true
	return b
}

// Next computes the delay before the retry following the given attempt.
// Attempt indexes below 1 are treated as 1. The result is never negative.
func (b Backoff) Next(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}

	var delay time.Duration

	switch b.Kind {
	case BackoffNone:
		return 0

	case BackoffFixed:
		delay = b.Delay

	case BackoffExponential:
		multiplier := math.Pow(2, float64(attempt-1))
		// Compare in float space: converting first would overflow
		// int64 for large attempt indexes and wrap past the cap.
		raw := float64(b.BaseDelay) * multiplier
		switch {
		case b.MaxDelay > 0 && raw >= float64(b.MaxDelay):
			delay = b.MaxDelay
		case raw >= float64(math.MaxInt64):
			delay = time.Duration(math.MaxInt64)
		default:
			delay = time.Duration(raw)
		}
	}

	if delay < 0 {
		delay = 0
	}

	if b.Jitter && delay > 0 {
		// Full jitter: uniform in [0, delay).
		// #nosec G404 -- jitter is non-cryptographic timing variance.
		delay = time.Duration(rand.Int64N(int64(delay)))
	}

	return delay
}
