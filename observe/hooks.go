package observe

import (
	"time"

	"github.com/jonwraymond/callguard/guard"
)

// LogHooks returns a hook set that logs every attempt transition as a
// structured event. Attempt starts and retries log at debug, successes
// at info, failures and circuit transitions at warn.
func LogHooks(logger Logger) guard.Hooks {
	if logger == nil {
		logger = noopLogger{}
	}

	return guard.Hooks{
		OnAttempt: func(name string, attempt int) {
			logger.WithCall(name).Debug("attempt started",
				F("attempt", attempt))
		},
		OnSuccess: func(name string, attempt int, elapsed time.Duration) {
			logger.WithCall(name).Info("call succeeded",
				F("attempt", attempt),
				F("elapsed_ms", elapsed.Milliseconds()))
		},
		OnFailure: func(name string, attempt int, elapsed time.Duration, err error) {
			logger.WithCall(name).Warn("attempt failed",
				F("attempt", attempt),
				F("elapsed_ms", elapsed.Milliseconds()),
				F("error", err.Error()))
		},
		OnRetry: func(name string, attempt int, delay time.Duration, err error) {
			logger.WithCall(name).Debug("retrying",
				F("attempt", attempt),
				F("delay_ms", delay.Milliseconds()),
				F("error", err.Error()))
		},
		OnCircuitOpen: func(name string) {
			logger.WithCall(name).Warn("circuit opened")
		},
		OnCircuitHalfOpen: func(name string) {
			logger.WithCall(name).Info("circuit half-open")
		},
		OnCircuitClosed: func(name string) {
			logger.WithCall(name).Info("circuit closed")
		},
	}
}
