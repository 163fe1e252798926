package telemetry

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// APICallMetrics records calls made to the remote OnlyTop API.
type APICallMetrics struct {
	calls    metric.Int64Counter
	duration metric.Float64Histogram
}

// NewAPICallMetrics creates the outbound call instruments from a meter.
func NewAPICallMetrics(meter metric.Meter) (*APICallMetrics, error) {
	in := NewInstruments(meter)
	m := &APICallMetrics{
		calls: in.Counter("onlytop_api_client_requests_total",
			"Requests sent to the OnlyTop backend API", "{request}"),
		duration: in.Seconds("onlytop_api_client_request_duration_seconds",
			"Latency of requests sent to the OnlyTop backend API"),
	}
	if err := in.Err(); err != nil {
		return nil, err
	}
	return m, nil
}

// Record adds one call. status is 0 when no response was received.
func (m *APICallMetrics) Record(ctx context.Context, method, path string, status int, d time.Duration) {
	if m == nil {
		return
	}
	outcome := "ok"
	switch {
	case status == 0:
		outcome = "transport_error"
	case status >= 500:
		outcome = "server_error"
	case status >= 400:
		outcome = "client_error"
	}
	attrs := []attribute.KeyValue{
		AttrHTTPMethod.String(method),
		AttrAPIResource.String(ResourceOf(path)),
		AttrHTTPStatusCode.String(strconv.Itoa(status)),
		AttrOutcome.String(outcome),
	}
	m.calls.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.duration.Record(ctx, d.Seconds(), metric.WithAttributes(attrs...))
}

// ResourceOf reduces a request path to a low-cardinality label:
// the leading segments up to the first one that looks like an identifier.
//
//	/api/rrhh/modelos/65f0c1/contratos -> /api/rrhh/modelos
func ResourceOf(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	var kept []string
	for _, seg := range strings.Split(strings.Trim(path, "/"), "/") {
		if seg == "" || looksLikeID(seg) {
			break
		}
		kept = append(kept, seg)
	}
	return "/" + strings.Join(kept, "/")
}

func looksLikeID(seg string) bool {
	digits := 0
	for _, r := range seg {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits > 0 && (len(seg) >= 12 || digits == len(seg))
}
