// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	QueriesHandled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dinebot_queries_handled_total",
			Help: "Total number of chat queries handled, by resolved intent",
		},
		[]string{"intent"},
	)

	QueriesFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dinebot_queries_failed_total",
			Help: "Total number of chat queries that failed",
		},
		[]string{"intent", "error_code"},
	)

	QueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "dinebot_query_duration_seconds",
			Help: "Duration of query handling in seconds",
		},
		[]string{"intent"},
	)

	MenuCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dinebot_menu_cache_hits_total",
			Help: "Menu cache lookups by outcome",
		},
		[]string{"outcome"},
	)
)
