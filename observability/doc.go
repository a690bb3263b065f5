// Package observability wires OpenTelemetry tracing and metrics into
// dispatching.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, &cfg.Tracing)
//	defer tp.Shutdown(ctx)
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, &cfg.Metrics)
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(observability.Meter(observability.InstrumentationName))
//
// Each dispatch is tracked by a DispatchContext, which owns the dispatch's
// span and records its metrics when it ends.
package observability
