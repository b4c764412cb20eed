package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// OperationContext holds observability context for a tracked operation.
type OperationContext struct {
	ServiceName   string
	OperationName string
	RequestID     string
	StartTime     time.Time
	Metrics       *Metrics
}

// NewOperationContext creates a new operation context.
// If metrics is nil, metric recording is silently skipped.
func NewOperationContext(serviceName, operationName, requestID string, metrics *Metrics) *OperationContext {
	return &OperationContext{
		ServiceName:   serviceName,
		OperationName: operationName,
		RequestID:     requestID,
		StartTime:     time.Now(),
		Metrics:       metrics,
	}
}

// StartSpanForOperation starts a traced span and records the operation start.
func (oc *OperationContext) StartSpanForOperation(ctx context.Context, spanName string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	ctx, span := StartSpan(ctx, spanName)
	span.SetAttributes(
		attribute.String(AttrServiceName, oc.ServiceName),
		attribute.String(AttrOperationName, oc.OperationName),
	)
	if oc.RequestID != "" {
		span.SetAttributes(attribute.String(AttrRequestID, oc.RequestID))
	}
	span.SetAttributes(attrs...)

	if oc.Metrics != nil {
		oc.Metrics.RecordOperationStart(ctx)
	}
	return ctx, span
}

// EndOperation ends the span and records the operation metrics. A non-nil
// err is recorded on the span and counted against component.
func (oc *OperationContext) EndOperation(ctx context.Context, span trace.Span, component string, err error) {
	duration := time.Since(oc.StartTime)

	status := "ok"
	if err != nil {
		status = "error"
		SetSpanError(ctx, err)
		span.SetAttributes(attribute.String(AttrErrorMessage, err.Error()))
	}

	span.SetAttributes(
		attribute.String(AttrStatus, status),
		attribute.Int64(AttrDurationMs, duration.Milliseconds()),
	)
	span.End()

	if oc.Metrics != nil {
		oc.Metrics.RecordOperation(ctx, oc.ServiceName, oc.OperationName, status, duration)
		if err != nil {
			oc.Metrics.RecordError(ctx, oc.OperationName, component)
		}
	}
}

// Duration returns the elapsed time since operation start.
func (oc *OperationContext) Duration() time.Duration {
	return time.Since(oc.StartTime)
}
