package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "recordsvc"

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
	// StoreOperationDuration observes backend reads and writes per document.
	StoreOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Namespace: namespace, Name: "store_operation_duration_seconds", Help: "Latency of document backend operations.", Buckets: prometheus.DefBuckets},
		[]string{"document", "op"},
	)
	StoreOperationErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "store_operation_errors_total", Help: "Failed document backend operations."},
		[]string{"document", "op"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(StoreOperationDuration)
	reg.MustRegister(StoreOperationErrors)
}
