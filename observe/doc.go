// Package observe provides observability collaborators for guarded
// calls: a structured logger, an OpenTelemetry-backed call meter, and
// telemetry bootstrap with pluggable exporters.
//
// The guard package fires hook callbacks at every attempt transition
// but carries no observability of its own. This package consumes that
// hook surface: [CallMeter.Hooks] counts attempts per call name,
// [LogHooks] logs every transition, and guard.MergeHooks combines
// them with the caller's own hooks.
//
//	obs, err := observe.NewObserver(ctx, observe.Config{
//	    ServiceName: "billing",
//	    Metrics:     observe.MetricsConfig{Enabled: true, Exporter: "prometheus"},
//	    Logging:     observe.LoggingConfig{Enabled: true, Level: "info"},
//	})
//
//	meter, err := observe.NewCallMeter(obs.Meter())
//
//	charge := guard.Wrap(chargeCard, guard.Config{
//	    Name:  "charge_card",
//	    Hooks: guard.MergeHooks(meter.Hooks(), observe.LogHooks(obs.Logger())),
//	})
//
// [CallMeter.Measure] additionally offers a run-and-count mode that
// invokes a callable directly, bypassing resilience behavior, purely
// to record its call count, duration, and (optionally) a trace span.
package observe
