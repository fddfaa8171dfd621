package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	DocumentsDropped = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "equza", Name: "documents_dropped_total", Help: "Documents rejected by the transform layer, by entity kind."},
		[]string{"entity"},
	)
	LeadsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "equza", Name: "leads_created_total", Help: "Leads created via public form submissions, by lead type."},
		[]string{"type"},
	)
	AccessorFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "equza", Name: "accessor_failures_total", Help: "Store queries that failed at the accessor boundary, by operation."},
		[]string{"operation"},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "equza", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "equza", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(DocumentsDropped)
	reg.MustRegister(LeadsCreated)
	reg.MustRegister(AccessorFailures)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
}
