package observe

import (
	"bytes"
	"errors"
	"testing"
	"time"
)

func TestLogHooks_EmitsEvents(t *testing.T) {
	var buf bytes.Buffer
	hooks := LogHooks(NewLoggerWithWriter("debug", &buf))

	testErr := errors.New("boom")
	hooks.OnAttempt("pay", 1)
	hooks.OnFailure("pay", 1, 5*time.Millisecond, testErr)
	hooks.OnRetry("pay", 1, 10*time.Millisecond, testErr)
	hooks.OnAttempt("pay", 2)
	hooks.OnSuccess("pay", 2, 3*time.Millisecond)
	hooks.OnCircuitOpen("pay")
	hooks.OnCircuitHalfOpen("pay")
	hooks.OnCircuitClosed("pay")

	entries := decodeLines(t, &buf)
	if len(entries) != 8 {
		t.Fatalf("got %d log entries, want 8", len(entries))
	}

	for i, e := range entries {
		if e["call.name"] != "pay" {
			t.Errorf("entry %d call.name = %v, want pay", i, e["call.name"])
		}
	}

	if entries[1]["error"] != "boom" {
		t.Errorf("failure entry error = %v, want boom", entries[1]["error"])
	}
	if entries[2]["delay_ms"] != float64(10) {
		t.Errorf("retry entry delay_ms = %v, want 10", entries[2]["delay_ms"])
	}
}

func TestLogHooks_InfoLevelDropsDebug(t *testing.T) {
	var buf bytes.Buffer
	hooks := LogHooks(NewLoggerWithWriter("info", &buf))

	hooks.OnAttempt("pay", 1) // debug, dropped
	hooks.OnSuccess("pay", 1, time.Millisecond)

	entries := decodeLines(t, &buf)
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0]["msg"] != "call succeeded" {
		t.Errorf("msg = %v", entries[0]["msg"])
	}
}

func TestLogHooks_NilLogger(t *testing.T) {
	hooks := LogHooks(nil)

	// Must not panic.
	hooks.OnAttempt("pay", 1)
	hooks.OnSuccess("pay", 1, time.Millisecond)
	hooks.OnCircuitOpen("pay")
}
