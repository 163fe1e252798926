package middleware

import (
	"time"

	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/infrastructure/telemetry"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// HTTPMetricsConfig holds configuration for HTTP metrics middleware.
type HTTPMetricsConfig struct {
	// MeterProvider is the OpenTelemetry meter provider.
	MeterProvider *telemetry.MeterProvider
	// Enabled controls whether metrics collection is active.
	Enabled bool
}

// httpMetrics holds the server instruments.
type httpMetrics struct {
	requests metric.Int64Counter
	latency  metric.Float64Histogram
	inFlight metric.Int64UpDownCounter
}

func newHTTPMetrics(meter metric.Meter) (*httpMetrics, error) {
	in := telemetry.NewInstruments(meter)
	m := &httpMetrics{
		requests: in.Counter("http_server_request_total", "Page and UI requests served", "{request}"),
		latency:  in.Seconds("http_server_request_duration_seconds", "Time to answer a request, backend calls included"),
		inFlight: in.Gauge("http_server_active_requests", "Requests being served", "{request}"),
	}
	if err := in.Err(); err != nil {
		return nil, err
	}
	return m, nil
}

func noop(c *gin.Context) {
	c.Next()
}

// HTTPMetrics returns a Gin middleware that collects HTTP metrics:
// request count by method, route and status; latency by method and route;
// and the number of in-flight requests.
func HTTPMetrics(cfg HTTPMetricsConfig) gin.HandlerFunc {
	if !cfg.Enabled || !cfg.MeterProvider.IsEnabled() {
		return noop
	}
	return HTTPMetricsWithMeter(cfg.MeterProvider.Meter("http.server"), true)
}

// HTTPMetricsWithMeter returns HTTP metrics middleware using an existing meter.
func HTTPMetricsWithMeter(meter metric.Meter, enabled bool) gin.HandlerFunc {
	if !enabled {
		return noop
	}
	m, err := newHTTPMetrics(meter)
	if err != nil {
		return noop
	}

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		start := time.Now()

		m.inFlight.Add(ctx, 1)
		c.Next()
		m.inFlight.Add(ctx, -1)

		method := telemetry.AttrHTTPMethod.String(c.Request.Method)
		route := telemetry.AttrHTTPRoute.String(getRoutePattern(c))
		status := c.Writer.Status()

		m.requests.Add(ctx, 1, metric.WithAttributes(method, route, telemetry.AttrHTTPStatusCode.Int(status)))
		telemetry.Since(ctx, m.latency, start, method, route, HTTPMetricsStatusGroup(status))
	}
}

// getRoutePattern returns the route pattern (e.g., "/contratos/:id")
// instead of the actual path to avoid high cardinality issues.
func getRoutePattern(c *gin.Context) string {
	if route := c.FullPath(); route != "" {
		return route
	}
	return "unknown"
}

// HTTPMetricsStatusGroup groups status codes by class (2xx, 4xx, 5xx).
func HTTPMetricsStatusGroup(statusCode int) attribute.KeyValue {
	class := "other"
	switch {
	case statusCode >= 200 && statusCode < 300:
		class = "2xx"
	case statusCode >= 300 && statusCode < 400:
		class = "3xx"
	case statusCode >= 400 && statusCode < 500:
		class = "4xx"
	case statusCode >= 500:
		class = "5xx"
	}
	return telemetry.AttrHTTPStatusClass.String(class)
}
