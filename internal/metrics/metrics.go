package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "caskwatch_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "caskwatch_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "caskwatch_http_requests_in_flight",
			Help: "Number of HTTP requests currently being served",
		},
	)
)

// Domain Metrics
var (
	RowsProcessed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "caskwatch_catalog_rows_processed_total",
			Help: "Catalog rows processed, whether or not they grew the collections",
		},
	)

	EntitiesPersisted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "caskwatch_entities_persisted_total",
			Help: "Entities written to the backing store",
		},
		[]string{"entity"},
	)

	PriceLookupFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "caskwatch_price_lookup_failures_total",
			Help: "External price lookups that left a price unresolved",
		},
	)

	CasketsRecorded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "caskwatch_caskets_recorded_total",
			Help: "Casket opening events recorded",
		},
	)
)
