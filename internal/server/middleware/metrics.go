package middleware

import (
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/cdinu/mcp-energy/internal/observability"
)

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

// newResponseWriter creates a new responseWriter wrapper.
func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // Default status code
	}
}

// WriteHeader captures the status code before writing the header.
func (rw *responseWriter) WriteHeader(code int) {
	if !rw.written {
		rw.statusCode = code
		rw.written = true
	}
	rw.ResponseWriter.WriteHeader(code)
}

// Write captures that a response was written.
func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.written = true
	}
	return rw.ResponseWriter.Write(b)
}

// Unwrap returns the underlying ResponseWriter to support http.Flusher etc.
func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

// Flush implements http.Flusher for streaming responses.
func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Session IDs and UUIDs in paths would explode metric cardinality.
var (
	uuidPattern    = regexp.MustCompile(`[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`)
	sessionPattern = regexp.MustCompile(`^(/mcp|/message|/sse)/[^/]+`)
)

// normalizePath replaces high-cardinality path segments with :id.
func normalizePath(path string) string {
	path = uuidPattern.ReplaceAllString(path, ":id")
	path = sessionPattern.ReplaceAllString(path, "$1/:id")
	return path
}

// HTTPMetrics creates middleware that records HTTP request metrics.
// It records the total number of requests and request duration for
// each method/path/status combination, with paths normalized to keep
// cardinality bounded.
//
// The metrics parameter may be nil, in which case the middleware is a
// no-op that just passes through to the next handler.
func HTTPMetrics(metrics *observability.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if metrics == nil {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			wrapped := newResponseWriter(w)
			next.ServeHTTP(wrapped, r)

			path := normalizePath(r.URL.Path)
			metrics.RecordHTTPRequest(r.Method, path,
				strconv.Itoa(wrapped.statusCode), time.Since(start).Seconds())
		})
	}
}
