package server

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Catalog requests are labelled by route kind rather than raw path so
// channel ids never become label values.
var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tvcatalog_http_requests_total",
			Help: "Catalog HTTP requests by route and status.",
		},
		[]string{"route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tvcatalog_http_request_duration_seconds",
			Help:    "Catalog HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)
)

func observeRequest(kind RouteKind, status int, elapsed time.Duration) {
	httpRequestsTotal.WithLabelValues(kind.String(), strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(kind.String()).Observe(elapsed.Seconds())
}
