package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// OutcomeSuccess is the outcome label of a successful dispatch.
const OutcomeSuccess = "success"

// DispatchContext tracks one dispatch from submission to outcome.
type DispatchContext struct {
	ID        string
	Method    string
	URL       string
	StartTime time.Time
	Metrics   *Metrics
}

// NewDispatchContext creates a dispatch context. If metrics is nil, metric
// recording is skipped.
func NewDispatchContext(id, method, url string, metrics *Metrics) *DispatchContext {
	return &DispatchContext{
		ID:        id,
		Method:    method,
		URL:       url,
		StartTime: time.Now(),
		Metrics:   metrics,
	}
}

type dispatchContextKey struct{}

// WithDispatchContext stores a DispatchContext in the context.
func WithDispatchContext(ctx context.Context, dc *DispatchContext) context.Context {
	return context.WithValue(ctx, dispatchContextKey{}, dc)
}

// DispatchContextFromContext retrieves the DispatchContext from context, or nil.
func DispatchContextFromContext(ctx context.Context) *DispatchContext {
	if dc, ok := ctx.Value(dispatchContextKey{}).(*DispatchContext); ok {
		return dc
	}
	return nil
}

// StartSpan starts the dispatch's client span and counts it as active.
func (dc *DispatchContext) StartSpan(ctx context.Context, tracer trace.Tracer) (context.Context, trace.Span) {
	ctx, span := tracer.Start(ctx, SpanDispatch,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String(AttrDispatchID, dc.ID),
			attribute.String(AttrMethod, dc.Method),
			attribute.String(AttrURL, dc.URL),
		),
	)
	if dc.Metrics != nil {
		dc.Metrics.RecordStart(ctx)
	}
	return ctx, span
}

// End closes the span and records the outcome. statusCode is 0 when no
// response was received.
func (dc *DispatchContext) End(ctx context.Context, span trace.Span, outcome string, statusCode int, err error) {
	duration := time.Since(dc.StartTime)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
		span.SetAttributes(attribute.String(AttrErrorKind, outcome))
	}
	if statusCode > 0 {
		span.SetAttributes(attribute.Int(AttrStatusCode, statusCode))
	}
	span.SetAttributes(
		attribute.String(AttrOutcome, outcome),
		attribute.Int64(AttrDurationMs, duration.Milliseconds()),
	)
	span.End()

	if dc.Metrics != nil {
		dc.Metrics.RecordEnd(ctx, dc.Method, outcome, duration)
	}
}

// Duration returns the elapsed time since the dispatch was submitted.
func (dc *DispatchContext) Duration() time.Duration {
	return time.Since(dc.StartTime)
}
