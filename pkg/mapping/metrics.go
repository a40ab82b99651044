package mapping

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains Prometheus metrics for the mapping store.
type Metrics struct {
	// Mapping file loads by kind and outcome.
	loads *prometheus.CounterVec

	// Cache lookups by outcome (hit, miss).
	cacheLookups *prometheus.CounterVec

	// Match path queries and how many paths each produced.
	pathQueries prometheus.Counter
	pathsFound  prometheus.Counter

	// Load latency.
	loadDuration prometheus.Histogram
}

var (
	metricsOnce sync.Once
	metrics     *Metrics
)

// storeMetrics returns the shared store metrics, registering the
// collectors on first use. Collectors register once per process even
// when several Stores exist.
func storeMetrics() *Metrics {
	metricsOnce.Do(func() {
		metrics = &Metrics{
			loads: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "refmatch_mapping_loads_total",
					Help: "Total number of mapping file loads performed",
				},
				[]string{"kind", "result"},
			),

			cacheLookups: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "refmatch_mapping_cache_lookups_total",
					Help: "Total number of mapping cache lookups",
				},
				[]string{"result"},
			),

			pathQueries: promauto.NewCounter(
				prometheus.CounterOpts{
					Name: "refmatch_match_path_queries_total",
					Help: "Total number of match path queries answered",
				},
			),

			pathsFound: promauto.NewCounter(
				prometheus.CounterOpts{
					Name: "refmatch_match_paths_found_total",
					Help: "Total number of match paths returned across all queries",
				},
			),

			loadDuration: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Name:    "refmatch_mapping_load_duration_seconds",
					Help:    "Duration of mapping file loads",
					Buckets: prometheus.DefBuckets,
				},
			),
		}
	})
	return metrics
}
