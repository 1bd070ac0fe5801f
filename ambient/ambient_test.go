package ambient

import (
	"context"
	"testing"
	"time"
)

func TestActive_Default(t *testing.T) {
	if Active() != context.Background() {
		t.Error("Active() with empty slot != context.Background()")
	}
}

func TestEnter_InstallAndRestore(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	restore := Enter(ctx)
	if Active() != ctx {
		t.Error("Active() != installed context")
	}

	restore()
	if Active() != context.Background() {
		t.Error("Active() not restored to background")
	}
}

func TestEnter_NestedStackDiscipline(t *testing.T) {
	outer, cancelOuter := context.WithCancel(context.Background())
	defer cancelOuter()
	inner, cancelInner := context.WithCancel(context.Background())
	defer cancelInner()

	restoreOuter := Enter(outer)
	restoreInner := Enter(inner)

	if Active() != inner {
		t.Error("Active() != inner context")
	}

	restoreInner()
	if Active() != outer {
		t.Error("inner restore did not reinstate outer context")
	}

	restoreOuter()
	if Active() != context.Background() {
		t.Error("outer restore did not clear the slot")
	}
}

func TestEnter_NilClears(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	restoreOuter := Enter(ctx)
	restoreClear := Enter(nil)

	if Active() != context.Background() {
		t.Error("Enter(nil) did not clear the slot")
	}

	restoreClear()
	if Active() != ctx {
		t.Error("restore after clear did not reinstate prior context")
	}

	restoreOuter()
}

func TestSleep_Elapses(t *testing.T) {
	start := time.Now()
	if err := Sleep(context.Background(), 20*time.Millisecond); err != nil {
		t.Fatalf("Sleep() error = %v", err)
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Errorf("Sleep returned after %v, want >= 20ms", elapsed)
	}
}

func TestSleep_AlreadyCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	err := Sleep(ctx, time.Second)
	if err != ErrCancelled {
		t.Fatalf("Sleep() error = %v, want ErrCancelled", err)
	}
	if time.Since(start) > 100*time.Millisecond {
		t.Error("Sleep did not fail immediately on a done context")
	}
}

func TestSleep_CancelledMidWait(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	err := Sleep(ctx, time.Second)
	if err != ErrCancelled {
		t.Fatalf("Sleep() error = %v, want ErrCancelled", err)
	}
	if time.Since(start) > 500*time.Millisecond {
		t.Error("Sleep was not cut short by cancellation")
	}
}

func TestSleep_NilUsesAmbient(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	defer Enter(ctx)()

	if err := Sleep(nil, time.Second); err != ErrCancelled {
		t.Fatalf("Sleep(nil) error = %v, want ErrCancelled", err)
	}
}

func TestSleep_ZeroDuration(t *testing.T) {
	if err := Sleep(context.Background(), 0); err != nil {
		t.Errorf("Sleep(0) error = %v", err)
	}
}
