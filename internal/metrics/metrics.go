// Package metrics provides Prometheus metrics for the dashboard service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts requests by route and status code.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "kbradar",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "kbradar",
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	// AggregationFailures counts views that degraded to an empty result
	// because the row store failed.
	AggregationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "kbradar",
			Name:      "aggregation_failures_total",
			Help:      "Aggregations that returned an empty result after a storage error",
		},
		[]string{"view"},
	)

	// CacheLookups counts view cache lookups by result (hit, miss, error).
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "kbradar",
			Name:      "cache_lookups_total",
			Help:      "View cache lookups",
		},
		[]string{"result"},
	)

	WarmedViews = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "kbradar",
			Name:      "warmed_views_total",
			Help:      "Views written to the cache by the warm workflow",
		},
	)
)
