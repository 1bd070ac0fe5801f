package observe

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/jonwraymond/callguard/guard"
)

// CallMeter counts invocations of guarded callables. It subscribes to
// the guard hook surface as a passive collaborator: it holds no
// control-flow logic and never reaches back into the attempt loop.
//
// Counts are recorded twice: as OpenTelemetry counters on the supplied
// meter, and in an in-memory mirror exposed through Count, Counts and
// Total for direct inspection.
type CallMeter struct {
	attempts metric.Int64Counter
	calls    metric.Int64Counter
	duration metric.Float64Histogram
	tracer   trace.Tracer

	mu      sync.Mutex
	perName map[string]int64
	total   int64
}

// CallMeterOption configures a CallMeter.
type CallMeterOption func(*CallMeter)

// WithTracer makes Measure record a span around each measured call.
func WithTracer(t trace.Tracer) CallMeterOption {
	return func(m *CallMeter) {
		m.tracer = t
	}
}

// NewCallMeter creates a CallMeter recording on the given meter.
func NewCallMeter(meter metric.Meter, opts ...CallMeterOption) (*CallMeter, error) {
	attempts, err := meter.Int64Counter(
		"call.attempts.total",
		metric.WithDescription("Total attempts per named call"),
		metric.WithUnit("{attempt}"),
	)
	if err != nil {
		return nil, err
	}

	calls, err := meter.Int64Counter(
		"call.total",
		metric.WithDescription("Total attempts across all calls"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram(
		"call.duration_ms",
		metric.WithDescription("Measured call duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	m := &CallMeter{
		attempts: attempts,
		calls:    calls,
		duration: duration,
		perName:  make(map[string]int64),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Hooks returns the hook set that feeds this meter. Merge it with any
// other hooks via guard.MergeHooks.
func (m *CallMeter) Hooks() guard.Hooks {
	return guard.Hooks{
		OnAttempt: func(name string, attempt int) {
			m.record(context.Background(), name)
		},
	}
}

func (m *CallMeter) record(ctx context.Context, name string) {
	opt := metric.WithAttributes(attribute.String("call.name", name))
	m.attempts.Add(ctx, 1, opt)
	m.calls.Add(ctx, 1)

	m.mu.Lock()
	m.perName[name]++
	m.total++
	m.mu.Unlock()
}

// Count returns the recorded attempt count for a named call.
func (m *CallMeter) Count(name string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.perName[name]
}

// Counts returns a copy of the per-name attempt counts.
func (m *CallMeter) Counts() map[string]int64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	counts := make(map[string]int64, len(m.perName))
	for name, n := range m.perName {
		counts[name] = n
	}
	return counts
}

// Total returns the attempt count across all calls.
func (m *CallMeter) Total() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.total
}

// Measure invokes fn directly, bypassing all resilience behavior,
// purely to record its call count and duration. When a tracer is
// configured, the call runs inside a span named after the call.
func (m *CallMeter) Measure(ctx context.Context, name string, fn func(ctx context.Context) error) error {
	var span trace.Span
	if m.tracer != nil {
		ctx, span = m.tracer.Start(ctx, "call."+name,
			trace.WithAttributes(attribute.String("call.name", name)))
	}

	m.record(ctx, name)

	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)

	m.duration.Record(ctx, float64(elapsed.Milliseconds()),
		metric.WithAttributes(attribute.String("call.name", name)))

	if span != nil {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}

	return err
}
