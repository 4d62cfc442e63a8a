package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "youtube_analyzer"

var (
	// RequestDuration is observed by the HTTP middleware.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds, by endpoint, method and status.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	RequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being served.",
		},
	)

	// RemoteCalls counts YouTube Data API calls by operation and outcome (success, empty, failed).
	RemoteCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "remote_calls_total",
			Help:      "YouTube Data API calls, by operation and outcome.",
		},
		[]string{"operation", "outcome"},
	)

	Analyses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analyses_total",
			Help:      "Completed analyses, by URL type and success.",
		},
		[]string{"type", "success"},
	)
)
