package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/cdinu/mcp-energy/internal/observability"
)

func TestResponseWriter_CapturesStatusCode(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
	}{
		{name: "captures 200 OK", statusCode: http.StatusOK},
		{name: "captures 404 Not Found", statusCode: http.StatusNotFound},
		{name: "captures 500 Internal Server Error", statusCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			rw := newResponseWriter(rec)
			rw.WriteHeader(tt.statusCode)
			assert.Equal(t, tt.statusCode, rw.statusCode)
		})
	}
}

func TestResponseWriter_DefaultStatusOnWrite(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := newResponseWriter(rec)
	_, err := rw.Write([]byte("body"))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rw.statusCode)

	// A later WriteHeader must not overwrite the recorded status
	rw.WriteHeader(http.StatusInternalServerError)
	assert.Equal(t, http.StatusOK, rw.statusCode)
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/healthz", "/healthz"},
		{"/mcp/abc123session", "/mcp/:id"},
		{"/message/550e8400-e29b-41d4-a716-446655440000", "/message/:id"},
		{"/sse/session-xyz", "/sse/:id"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizePath(tt.in), tt.in)
	}
}

func TestHTTPMetrics_RecordsRequests(t *testing.T) {
	metrics := observability.NewMetricsForTesting()
	handler := HTTPMetrics(metrics)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, 1.0,
		testutil.ToFloat64(metrics.HTTPRequests.WithLabelValues(http.MethodGet, "/healthz", "418")))
}

func TestHTTPMetrics_NilMetricsPassesThrough(t *testing.T) {
	called := false
	handler := HTTPMetrics(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.True(t, called)
}
