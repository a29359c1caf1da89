package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	shardSearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "memtier",
			Name:      "shard_search_duration_seconds",
			Help:      "Per-shard search task duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"status"},
	)

	shardSearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "memtier",
			Name:      "shard_searches_total",
			Help:      "Total number of per-shard search tasks by terminal status",
		},
		[]string{"status"},
	)

	queryDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "memtier",
			Name:      "query_duration_seconds",
			Help:      "End-to-end distributed query duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
		},
	)

	queryFanout = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "memtier",
			Name:      "query_fanout_shards",
			Help:      "Number of shards targeted per query",
			Buckets:   []float64{1, 2, 4, 8, 16, 32, 64, 128, 256},
		},
	)

	queryShardFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "memtier",
			Name:      "query_shard_failures_total",
			Help:      "Failed shards per query, labeled by whether the whole query failed",
		},
		[]string{"total_failure"},
	)
)

// RegisterQueryMetrics registers query engine metrics explicitly (no init()).
func RegisterQueryMetrics() {
	prometheus.MustRegister(
		shardSearchDuration,
		shardSearchesTotal,
		queryDuration,
		queryFanout,
		queryShardFailures,
	)
}

// ObserveShardSearch records one per-shard search task outcome.
func ObserveShardSearch(status string, d time.Duration) {
	shardSearchDuration.WithLabelValues(status).Observe(d.Seconds())
	shardSearchesTotal.WithLabelValues(status).Inc()
}

// ObserveQuery records one distributed query: fan-out width, failed shard
// count, and end-to-end duration.
func ObserveQuery(targeted, failed int, d time.Duration) {
	queryDuration.Observe(d.Seconds())
	queryFanout.Observe(float64(targeted))
	if failed > 0 {
		total := strconv.FormatBool(failed == targeted)
		queryShardFailures.WithLabelValues(total).Add(float64(failed))
	}
}
