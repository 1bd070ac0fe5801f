package ambient

import (
	"context"
	"time"
)

// Sleep waits for d, honoring cancellation. A nil ctx opts into the
// ambient context, so a delay nested inside a timed attempt is cut
// short when the attempt times out. Returns nil once d has elapsed,
// or ErrCancelled immediately if the context is already done, or at
// the moment it is cancelled during the wait.
func Sleep(ctx context.Context, d time.Duration) error {
	if ctx == nil {
		ctx = Active()
	}
	if ctx.Err() != nil {
		return ErrCancelled
	}
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ErrCancelled
	}
}
