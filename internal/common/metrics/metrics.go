// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resolver_resolutions_total",
			Help: "Total number of query resolutions by producing source",
		},
		[]string{"source"},
	)

	RemoteCallsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resolver_remote_calls_failed_total",
			Help: "Total number of failed remote resolution attempts",
		},
		[]string{"reason"},
	)

	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "resolver_cache_hits_total",
			Help: "Total number of resolutions served from the cache",
		},
	)

	ResolutionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "resolver_resolution_duration_seconds",
			Help: "Duration of query resolution in seconds",
		},
		[]string{"source"},
	)
)
