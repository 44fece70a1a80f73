package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ExportsTotal counts CSV downloads per entity.
	ExportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "backoffice",
			Name:      "exports_total",
			Help:      "The total number of CSV exports served",
		},
		[]string{"entity"},
	)

	// ExportRowsTotal counts exported data rows per entity.
	ExportRowsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "backoffice",
			Name:      "export_rows_total",
			Help:      "The total number of rows written to CSV exports",
		},
		[]string{"entity"},
	)

	// DashboardBuildSeconds is the time spent loading and aggregating a dashboard.
	DashboardBuildSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "backoffice",
			Name:      "dashboard_build_seconds",
			Help:      "Time spent building a dashboard from the database",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"kind"},
	)

	// CacheRequestsTotal counts snapshot cache lookups by result (hit, miss, error).
	CacheRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "backoffice",
			Name:      "cache_requests_total",
			Help:      "Dashboard snapshot cache lookups by result",
		},
		[]string{"result"},
	)
)
