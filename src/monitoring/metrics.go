package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "triphub_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "triphub_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	SettlementOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "triphub_settlement_outcomes_total",
			Help: "Settlement attempts by terminal outcome",
		},
		[]string{"outcome"},
	)

	SettlementDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "triphub_settlement_duration_seconds",
			Help:    "Time spent settling a checkout session",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
	)

	SettlementCompensations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "triphub_settlement_compensations_total",
			Help: "Rollback actions run by the settlement saga",
		},
		[]string{"step", "result"},
	)

	VendorStatusChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "triphub_vendor_status_changes_total",
			Help: "Vendor status changes by target status and result",
		},
		[]string{"status", "result"},
	)

	FraudFlags = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "triphub_fraud_flags_total",
			Help: "Vendors flagged as fraud",
		},
	)

	AdvertiseRejections = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "triphub_advertise_rejections_total",
			Help: "Advertise requests refused because the limit was reached",
		},
	)

	RoleCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "triphub_role_cache_lookups_total",
			Help: "Role cache lookups by result",
		},
		[]string{"result"},
	)
)
