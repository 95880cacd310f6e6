package telemetry

import (
	"context"
	"testing"

	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// ForTest records ended spans in memory.
type ForTest struct {
	Telemetry
	recorder *tracetest.SpanRecorder
}

func NewForTest(t *testing.T) *ForTest {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	provider := tracesdk.NewTracerProvider(tracesdk.WithSpanProcessor(recorder))
	t.Cleanup(func() {
		_ = provider.Shutdown(context.Background())
	})
	return &ForTest{Telemetry: New(provider), recorder: recorder}
}

// Spans returns ended spans as stubs, in the end order.
func (v *ForTest) Spans() tracetest.SpanStubs {
	return tracetest.SpanStubsFromReadOnlySpans(v.recorder.Ended())
}

// SpanNames returns names of the ended spans, in the end order.
func (v *ForTest) SpanNames() []string {
	var out []string
	for _, s := range v.Spans() {
		out = append(out, s.Name)
	}
	return out
}
