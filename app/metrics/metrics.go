package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint", "status"},
	)

	registrationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "auth_registrations_total",
			Help: "Total number of user registrations",
		},
	)

	loginsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "auth_logins_total",
			Help: "Total number of successful logins",
		},
	)

	loginsFailed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "auth_logins_failed_total",
			Help: "Total number of failed login attempts",
		},
	)
)

// RecordHTTPRequest records one served request.
func RecordHTTPRequest(method, endpoint string, status int, duration time.Duration) {
	statusStr := strconv.Itoa(status)
	httpRequestsTotal.WithLabelValues(method, endpoint, statusStr).Inc()
	httpRequestDuration.WithLabelValues(method, endpoint, statusStr).Observe(duration.Seconds())
}

// RecordRegistration counts a successful registration.
func RecordRegistration() {
	registrationsTotal.Inc()
}

// RecordLogin counts a login attempt by outcome.
func RecordLogin(success bool) {
	if success {
		loginsTotal.Inc()
	} else {
		loginsFailed.Inc()
	}
}

// MetricsHandler serves the Prometheus scrape endpoint.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
