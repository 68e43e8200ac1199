// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts handled requests.
	// Labels:
	//   - method: HTTP method
	//   - route: gin route template (e.g. "/api/v1/users/channel/:username")
	//   - status: response status code
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests handled",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration measures request latency per route.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "route"},
	)

	// AuthEventsTotal counts session lifecycle events.
	// Labels:
	//   - event: "login", "logout", "refresh"
	//   - outcome: "success", "failure"
	AuthEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_events_total",
			Help: "Total number of authentication events",
		},
		[]string{"event", "outcome"},
	)

	// MediaUploadsTotal counts upload attempts to the media host.
	// Labels:
	//   - outcome: "success", "failure", "rejected" (circuit open)
	MediaUploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_uploads_total",
			Help: "Total number of media upload attempts",
		},
		[]string{"outcome"},
	)

	// MediaUploadDuration measures upload latency to the media host.
	MediaUploadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "media_upload_duration_seconds",
			Help:    "Duration of media uploads in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	// CircuitBreakerState tracks breaker state (0=closed, 1=half-open, 2=open).
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Current circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)
)

// Outcome returns the label value for a success flag.
func Outcome(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}
