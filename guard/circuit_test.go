package guard

import (
	"testing"
	"time"
)

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateClosed, "closed"},
		{StateOpen, "open"},
		{StateHalfOpen, "half-open"},
		{State(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestNewBreaker_Defaults(t *testing.T) {
	b := NewBreaker("db", BreakerConfig{}, Hooks{})

	if b.cfg.FailureThreshold != 5 {
		t.Errorf("FailureThreshold = %d, want 5", b.cfg.FailureThreshold)
	}
	if b.cfg.ResetTimeout != 30*time.Second {
		t.Errorf("ResetTimeout = %v, want 30s", b.cfg.ResetTimeout)
	}
	if b.State() != StateClosed {
		t.Errorf("initial state = %v, want closed", b.State())
	}
}

func TestBreaker_OpensAtThreshold(t *testing.T) {
	var opened []string
	b := NewBreaker("db", BreakerConfig{FailureThreshold: 3, ResetTimeout: time.Minute}, Hooks{
		OnCircuitOpen: func(name string) { opened = append(opened, name) },
	})

	b.Failure()
	b.Failure()
	if b.State() != StateClosed {
		t.Fatalf("state after 2 failures = %v, want closed", b.State())
	}

	b.Failure()
	if b.State() != StateOpen {
		t.Fatalf("state after 3 failures = %v, want open", b.State())
	}
	if len(opened) != 1 || opened[0] != "db" {
		t.Errorf("OnCircuitOpen calls = %v, want one for db", opened)
	}

	if b.Allow() {
		t.Error("Allow() = true on a freshly opened circuit")
	}
}

func TestBreaker_SuccessResetsFailures(t *testing.T) {
	b := NewBreaker("db", BreakerConfig{FailureThreshold: 3, ResetTimeout: time.Minute}, Hooks{})

	b.Failure()
	b.Failure()
	b.Success()

	if b.Failures() != 0 {
		t.Errorf("Failures() = %d after success, want 0", b.Failures())
	}

	// The reset means two more failures do not open the circuit.
	b.Failure()
	b.Failure()
	if b.State() != StateClosed {
		t.Errorf("state = %v, want closed", b.State())
	}
}

func TestBreaker_HalfOpenAfterResetTimeout(t *testing.T) {
	var halfOpen int
	b := NewBreaker("db", BreakerConfig{FailureThreshold: 1, ResetTimeout: 20 * time.Millisecond}, Hooks{
		OnCircuitHalfOpen: func(name string) { halfOpen++ },
	})

	b.Failure()
	if b.Allow() {
		t.Fatal("Allow() = true while open within reset timeout")
	}

	time.Sleep(25 * time.Millisecond)

	if !b.Allow() {
		t.Fatal("Allow() = false after reset timeout elapsed")
	}
	if b.State() != StateHalfOpen {
		t.Errorf("state = %v, want half-open", b.State())
	}
	if halfOpen != 1 {
		t.Errorf("OnCircuitHalfOpen fired %d times, want 1", halfOpen)
	}
}

func TestBreaker_HalfOpenSuccessCloses(t *testing.T) {
	var closed int
	b := NewBreaker("db", BreakerConfig{FailureThreshold: 1, ResetTimeout: 10 * time.Millisecond}, Hooks{
		OnCircuitClosed: func(name string) { closed++ },
	})

	b.Failure()
	time.Sleep(15 * time.Millisecond)
	if !b.Allow() {
		t.Fatal("trial attempt refused")
	}

	b.Success()
	if b.State() != StateClosed {
		t.Errorf("state = %v, want closed", b.State())
	}
	if b.Failures() != 0 {
		t.Errorf("Failures() = %d, want 0", b.Failures())
	}
	if closed != 1 {
		t.Errorf("OnCircuitClosed fired %d times, want 1", closed)
	}
}

func TestBreaker_HalfOpenFailureReopens(t *testing.T) {
	var opened int
	b := NewBreaker("db", BreakerConfig{FailureThreshold: 5, ResetTimeout: 10 * time.Millisecond}, Hooks{
		OnCircuitOpen: func(name string) { opened++ },
	})

	// Force open directly at the threshold.
	for i := 0; i < 5; i++ {
		b.Failure()
	}
	time.Sleep(15 * time.Millisecond)
	if !b.Allow() {
		t.Fatal("trial attempt refused")
	}

	// A single trial failure reopens regardless of the threshold.
	b.Failure()
	if b.State() != StateOpen {
		t.Errorf("state = %v, want open", b.State())
	}
	if opened != 2 {
		t.Errorf("OnCircuitOpen fired %d times, want 2", opened)
	}
	if b.Allow() {
		t.Error("Allow() = true immediately after reopening")
	}
}

func TestBreaker_Reset(t *testing.T) {
	b := NewBreaker("db", BreakerConfig{FailureThreshold: 1, ResetTimeout: time.Minute}, Hooks{})

	b.Failure()
	if b.State() != StateOpen {
		t.Fatalf("state = %v, want open", b.State())
	}

	b.Reset()
	if b.State() != StateClosed {
		t.Errorf("state after Reset = %v, want closed", b.State())
	}
	if b.Failures() != 0 {
		t.Errorf("Failures() after Reset = %d, want 0", b.Failures())
	}
}

func TestBreaker_CyclesIndefinitely(t *testing.T) {
	b := NewBreaker("db", BreakerConfig{FailureThreshold: 1, ResetTimeout: 5 * time.Millisecond}, Hooks{})

	for cycle := 0; cycle < 3; cycle++ {
		b.Failure()
		if b.State() != StateOpen {
			t.Fatalf("cycle %d: state = %v, want open", cycle, b.State())
		}
		time.Sleep(10 * time.Millisecond)
		if !b.Allow() {
			t.Fatalf("cycle %d: trial attempt refused", cycle)
		}
		b.Success()
		if b.State() != StateClosed {
			t.Fatalf("cycle %d: state = %v, want closed", cycle, b.State())
		}
	}
}
