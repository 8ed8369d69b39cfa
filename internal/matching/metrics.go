package matching

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	findRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matching_find_requests_total",
			Help: "Total number of find-matches requests",
		},
		[]string{"mode", "status"},
	)

	compatibilityScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "matching_compatibility_scores",
			Help:    "Distribution of compatibility scores",
			Buckets: prometheus.LinearBuckets(0, 10, 10),
		},
	)

	candidatePoolSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "matching_candidate_pool_size",
			Help:    "Number of candidates left after filtering",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
		[]string{"mode"},
	)

	responseTime = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "matching_response_time_seconds",
			Help: "Time spent finding matches",
		},
		[]string{"mode"},
	)

	partialDataDefaults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matching_partial_data_defaults_total",
			Help: "Candidate fields replaced by a neutral default",
		},
		[]string{"field"},
	)

	cacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matching_cache_lookups_total",
			Help: "Result cache lookups",
		},
		[]string{"result"},
	)
)

func RecordFindRequest(mode Strictness, status string) {
	findRequestsTotal.WithLabelValues(string(mode), status).Inc()
}

func RecordCompatibilityScore(score int) {
	compatibilityScores.Observe(float64(score))
}

func RecordCandidatePool(mode Strictness, size int) {
	candidatePoolSize.WithLabelValues(string(mode)).Observe(float64(size))
}

func RecordResponseTime(mode Strictness, duration time.Duration) {
	responseTime.WithLabelValues(string(mode)).Observe(duration.Seconds())
}

func RecordPartialDataDefault(field string) {
	partialDataDefaults.WithLabelValues(field).Inc()
}

func RecordCacheLookup(hit bool) {
	if hit {
		cacheLookups.WithLabelValues("hit").Inc()
		return
	}
	cacheLookups.WithLabelValues("miss").Inc()
}
