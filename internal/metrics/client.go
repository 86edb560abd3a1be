package metrics

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type instrumentedTransport struct {
	next           http.RoundTripper
	requestCounter metric.Int64Counter
	durationHisto  metric.Float64Histogram
}

// NewInstrumentedTransport wraps next so every outgoing request to the backend is counted and timed.
// Requests that fail without a response are labeled with status_code "none".
func NewInstrumentedTransport(
	next http.RoundTripper,
	meterProvider metric.MeterProvider,
	namespace string,
) (http.RoundTripper, error) {
	if next == nil {
		next = http.DefaultTransport
	}
	meter := meterProvider.Meter(namespace)

	requestCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_client_requests_total", namespace),
		metric.WithDescription("Total number of requests sent to the backend"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create client request counter: %w", err)
	}

	durationHisto, err := meter.Float64Histogram(
		fmt.Sprintf("%s_client_request_duration_seconds", namespace),
		metric.WithDescription("Backend request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create client duration histogram: %w", err)
	}

	return &instrumentedTransport{
		next:           next,
		requestCounter: requestCounter,
		durationHisto:  durationHisto,
	}, nil
}

func (t *instrumentedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.next.RoundTrip(req)

	status := "none"
	if err == nil {
		status = strconv.Itoa(resp.StatusCode)
	}

	attrs := metric.WithAttributes(
		attribute.String("method", req.Method),
		attribute.String("status_code", status),
	)
	t.requestCounter.Add(req.Context(), 1, attrs)
	t.durationHisto.Record(req.Context(), time.Since(start).Seconds(), attrs)

	return resp, err
}
