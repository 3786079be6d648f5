package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AlwaseetRequestsTotal tracks outbound calls to the Al-Waseet API by outcome.
	AlwaseetRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "alwaseet_api_requests_total",
			Help: "Total number of Al-Waseet API requests made (by endpoint, method, and outcome).",
		},
		[]string{"endpoint", "method", "outcome"},
	)

	// AlwaseetRequestDuration measures the duration of outbound Al-Waseet calls.
	AlwaseetRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "alwaseet_api_request_duration_seconds",
			Help:    "Duration of Al-Waseet API requests in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms → ~10s
		},
		[]string{"endpoint", "method"},
	)

	// TokenCacheLookups counts token store lookups by result (hit, miss, error).
	TokenCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "alwaseet_token_cache_lookups_total",
			Help: "Token store lookups by result.",
		},
		[]string{"result"},
	)

	// HTTPResponses counts proxy responses by route and status code.
	HTTPResponses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "alwaseet_proxy_responses_total",
			Help: "Responses served by the proxy (by route and status code).",
		},
		[]string{"route", "code"},
	)
)

// IncAlwaseetRequest increments the Al-Waseet API request counter.
func IncAlwaseetRequest(endpoint, method, outcome string) {
	AlwaseetRequestsTotal.WithLabelValues(endpoint, method, outcome).Inc()
}

// IncTokenCacheLookup records a token store lookup result.
func IncTokenCacheLookup(result string) {
	TokenCacheLookups.WithLabelValues(result).Inc()
}

// IncHTTPResponse records a proxy response.
func IncHTTPResponse(route, code string) {
	HTTPResponses.WithLabelValues(route, code).Inc()
}

// ObserveDuration records elapsed time since start into a HistogramVec or SummaryVec.
func ObserveDuration(v any, start time.Time, labels ...string) {
	duration := time.Since(start).Seconds()
	switch metric := v.(type) {
	case *prometheus.HistogramVec:
		metric.WithLabelValues(labels...).Observe(duration)
	case *prometheus.SummaryVec:
		metric.WithLabelValues(labels...).Observe(duration)
	}
}
