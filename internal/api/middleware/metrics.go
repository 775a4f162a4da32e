package middleware

import (
	"net/http"
	"sync/atomic"
)

// MetricsCollector counts requests, failed requests and mutations.
type MetricsCollector struct {
	requestCount  *atomic.Int64
	errorCount    *atomic.Int64
	mutationCount *atomic.Int64
}

// NewMetricsCollector creates a new metrics collector.
func NewMetricsCollector(requestCount, errorCount, mutationCount *atomic.Int64) *MetricsCollector {
	return &MetricsCollector{
		requestCount:  requestCount,
		errorCount:    errorCount,
		mutationCount: mutationCount,
	}
}

// Middleware returns middleware that counts requests and errors. POST and
// DELETE requests that succeed count as mutations.
func (mc *MetricsCollector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mc.requestCount.Add(1)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		if rw.statusCode >= 400 {
			mc.errorCount.Add(1)
			return
		}
		if r.Method == http.MethodPost || r.Method == http.MethodDelete {
			mc.mutationCount.Add(1)
		}
	})
}
