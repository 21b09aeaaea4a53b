package reporting

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// OTelReporter records errors on the span active in the request context.
// Requests without a recording span are ignored.
type OTelReporter struct{}

// NewOTelReporter creates an OTelReporter.
func NewOTelReporter() *OTelReporter {
	return &OTelReporter{}
}

// Report records err as a span event and marks server errors on the span status.
func (r *OTelReporter) Report(ctx context.Context, err error, info Info) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("error.type", info.Type),
		attribute.String("error.code", info.Code),
		attribute.Int("http.response.status_code", info.Status),
	}
	if info.RequestID != "" {
		attrs = append(attrs, attribute.String("request.id", info.RequestID))
	}
	span.RecordError(err, trace.WithAttributes(attrs...))

	if info.Status >= 500 || info.Status == 0 {
		span.SetStatus(codes.Error, err.Error())
	}
}
