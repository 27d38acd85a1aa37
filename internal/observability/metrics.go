// Package observability holds the Prometheus instrumentation for the
// MCP server: tool invocation counts and latencies, plus upstream
// energy-API request outcomes.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
	OutcomeInvalid = "invalid_input"
)

// Metrics holds the Prometheus counters and histograms for the server.
type Metrics struct {
	ToolInvocations *prometheus.CounterVec   // labels: tool, outcome
	ToolDuration    *prometheus.HistogramVec // labels: tool

	UpstreamRequests   *prometheus.CounterVec   // labels: api, outcome
	UpstreamAPILatency *prometheus.HistogramVec // labels: api

	HTTPRequests *prometheus.CounterVec   // labels: method, path, status
	HTTPDuration *prometheus.HistogramVec // labels: method, path
}

func newMetrics() *Metrics {
	return &Metrics{
		ToolInvocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mcp_energy",
			Name:      "tool_invocations_total",
			Help:      "Tool calls by tool name and outcome.",
		}, []string{"tool", "outcome"}),
		ToolDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "mcp_energy",
			Name:      "tool_duration_seconds",
			Help:      "Wall-clock duration of tool calls.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"tool"}),
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mcp_energy",
			Name:      "upstream_requests_total",
			Help:      "Upstream energy-API requests by API and outcome.",
		}, []string{"api", "outcome"}),
		UpstreamAPILatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "mcp_energy",
			Name:      "upstream_api_duration_seconds",
			Help:      "Upstream energy-API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"api"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mcp_energy",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, normalized path and status code.",
		}, []string{"method", "path", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "mcp_energy",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"method", "path"}),
	}
}

// NewMetrics creates and registers all server metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.ToolInvocations,
		m.ToolDuration,
		m.UpstreamRequests,
		m.UpstreamAPILatency,
		m.HTTPRequests,
		m.HTTPDuration,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, to
// avoid "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

// RecordToolInvocation increments the invocation counter for a tool.
func (m *Metrics) RecordToolInvocation(tool, outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.ToolInvocations.WithLabelValues(tool, outcome).Inc()
	m.ToolDuration.WithLabelValues(tool).Observe(seconds)
}

// RecordUpstreamRequest records one upstream API request.
func (m *Metrics) RecordUpstreamRequest(api, outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.UpstreamRequests.WithLabelValues(api, outcome).Inc()
	m.UpstreamAPILatency.WithLabelValues(api).Observe(seconds)
}

// RecordHTTPRequest records one handled HTTP request.
func (m *Metrics) RecordHTTPRequest(method, path, status string, seconds float64) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, path, status).Inc()
	m.HTTPDuration.WithLabelValues(method, path).Observe(seconds)
}
