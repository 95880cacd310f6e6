package log

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

// spanIDFromContext returns ID of the active span, so log records can be paired with the trace.
func spanIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	spanCtx := trace.SpanContextFromContext(ctx)
	if !spanCtx.HasSpanID() {
		return ""
	}
	return spanCtx.SpanID().String()
}
