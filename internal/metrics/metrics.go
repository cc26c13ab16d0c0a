// Package metrics wires the OpenTelemetry metric SDK to a Prometheus
// exporter and records per-request counters and latencies.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	export "go.opentelemetry.io/otel/sdk/export/metric"
	"go.opentelemetry.io/otel/sdk/metric/aggregator/histogram"
	controller "go.opentelemetry.io/otel/sdk/metric/controller/basic"
	processor "go.opentelemetry.io/otel/sdk/metric/processor/basic"
	selector "go.opentelemetry.io/otel/sdk/metric/selector/simple"
)

var (
	methodKey = attribute.Key("http.method")
	routeKey  = attribute.Key("http.route")
	statusKey = attribute.Key("http.status_code")
)

type Metrics struct {
	exporter *prometheus.Exporter

	requests metric.Int64Counter
	duration metric.Float64ValueRecorder
}

// New builds the exporter and the request instruments for serviceName.
func New(serviceName string) (*Metrics, error) {
	config := prometheus.Config{}
	c := controller.New(
		processor.New(
			selector.NewWithHistogramDistribution(
				histogram.WithExplicitBoundaries(config.DefaultHistogramBoundaries),
			),
			export.CumulativeExportKindSelector(),
			processor.WithMemory(true),
		),
	)

	exporter, err := prometheus.New(config, c)
	if err != nil {
		return nil, err
	}

	meter := exporter.MeterProvider().Meter(serviceName)

	requests, err := meter.NewInt64Counter(
		"http_server_request_count",
		metric.WithDescription("Count of completed requests, by HTTP method, route and response status"),
	)
	if err != nil {
		return nil, err
	}

	duration, err := meter.NewFloat64ValueRecorder(
		"http_server_duration_ms",
		metric.WithDescription("Request latency in milliseconds, by HTTP method, route and response status"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		exporter: exporter,
		requests: requests,
		duration: duration,
	}, nil
}

// MeterProvider exposes the provider so it can be installed globally.
func (m *Metrics) MeterProvider() metric.MeterProvider {
	return m.exporter.MeterProvider()
}

// ServeHTTP serves the Prometheus scrape endpoint.
func (m *Metrics) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m.exporter.ServeHTTP(w, r)
}

// Middleware records one count and one latency sample per request,
// labelled with the matched route pattern rather than the raw path.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		labels := []attribute.KeyValue{
			methodKey.String(r.Method),
			routeKey.String(route),
			statusKey.String(strconv.Itoa(status)),
		}

		m.requests.Add(r.Context(), 1, labels...)
		m.duration.Record(r.Context(), float64(time.Since(start).Microseconds())/1000, labels...)
	})
}
