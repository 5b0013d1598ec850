package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/neomorfeo/offerforge/internal/domain"
)

// TracingEventLog wraps a domain.EventLog with OpenTelemetry tracing.
// Each method creates a span with semantic attributes and records errors.
type TracingEventLog struct {
	next   domain.EventLog
	tracer trace.Tracer
}

// Compile-time check: TracingEventLog implements domain.EventLog.
var _ domain.EventLog = (*TracingEventLog)(nil)

// NewTracingEventLog creates a tracing decorator around the given event log.
func NewTracingEventLog(next domain.EventLog) *TracingEventLog {
	return &TracingEventLog{
		next:   next,
		tracer: otel.Tracer(tracerName),
	}
}

func (l *TracingEventLog) Append(ctx context.Context, e domain.EventEntry) error {
	ctx, span := l.tracer.Start(ctx, "EventLog.Append",
		trace.WithAttributes(
			attribute.String("event.type", string(e.Event)),
			attribute.String("session.id", e.SessionID),
		),
	)
	defer span.End()

	err := l.next.Append(ctx, e)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (l *TracingEventLog) Recent(ctx context.Context, limit int) ([]domain.EventEntry, error) {
	ctx, span := l.tracer.Start(ctx, "EventLog.Recent",
		trace.WithAttributes(attribute.Int("limit", limit)),
	)
	defer span.End()

	entries, err := l.next.Recent(ctx, limit)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return entries, err
}
