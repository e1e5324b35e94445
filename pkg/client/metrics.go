package client

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "daybook_client",
			Name:      "requests_total",
			Help:      "Backend requests by operation and HTTP status (0 when no response arrived).",
		},
		[]string{"op", "code"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "daybook_client",
			Name:      "request_duration_seconds",
			Help:      "Time from sending a backend request to reading its response body.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"op"},
	)
)

func observe(op string, status int, elapsed time.Duration) {
	requestsTotal.WithLabelValues(op, strconv.Itoa(status)).Inc()
	requestDuration.WithLabelValues(op).Observe(elapsed.Seconds())
}
