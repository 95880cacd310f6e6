// Package telemetry wraps OpenTelemetry tracing, spans are ended with the operation error.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const appName = "github.com/typo3-migrate/mask2cb"

type Telemetry interface {
	TracerProvider() trace.TracerProvider
	Tracer() Tracer
}

type Tracer interface {
	Start(ctx context.Context, spanName string, opts ...trace.SpanStartOption) (context.Context, Span)
}

type telemetry struct {
	tracerProvider trace.TracerProvider
	tracer         Tracer
}

type tracer struct {
	tracer trace.Tracer
}

// NewNop creates telemetry which records nothing.
func NewNop() Telemetry {
	return New(noop.NewTracerProvider())
}

func New(tracerProvider trace.TracerProvider) Telemetry {
	return &telemetry{
		tracerProvider: tracerProvider,
		tracer:         &tracer{tracer: tracerProvider.Tracer(appName)},
	}
}

func (t *telemetry) TracerProvider() trace.TracerProvider {
	return t.tracerProvider
}

func (t *telemetry) Tracer() Tracer {
	return t.tracer
}

func (t *tracer) Start(ctx context.Context, spanName string, opts ...trace.SpanStartOption) (context.Context, Span) {
	ctx, s := t.tracer.Start(ctx, spanName, opts...)
	return ctx, &span{span: s}
}
