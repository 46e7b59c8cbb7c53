package metrics

import (
	"strings"
	"time"
)

// RecordHTTPRequest records HTTP request metrics
func (m *Metrics) RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration) {
	m.safeExecute("RecordHTTPRequest", func() {
		status := categorizeStatus(statusCode)
		m.HTTPRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
		m.HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
	})
}

// RecordRateLimited counts a request rejected by the given limiter backend
func (m *Metrics) RecordRateLimited(backend string) {
	m.safeExecute("RecordRateLimited", func() {
		m.RateLimitedTotal.WithLabelValues(backend).Inc()
	})
}

func categorizeStatus(code int) string {
	switch {
	case code >= 200 && code < 300:
		return "2xx"
	case code >= 300 && code < 400:
		return "3xx"
	case code >= 400 && code < 500:
		return "4xx"
	case code >= 500:
		return "5xx"
	default:
		return "unknown"
	}
}

// ShouldSkipEndpoint excludes probe and scrape endpoints from request metrics
func ShouldSkipEndpoint(path string) bool {
	return strings.HasSuffix(path, "/metrics") ||
		strings.HasSuffix(path, "/health") ||
		strings.HasSuffix(path, "/ready")
}
