// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RecommendationCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_cache_hits_total",
			Help: "Total number of recommendation requests served from cache",
		},
		[]string{"backend"},
	)

	RecommendationCacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_cache_misses_total",
			Help: "Total number of recommendation requests that required scoring",
		},
		[]string{"backend"},
	)

	RecommendationCacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_cache_errors_total",
			Help: "Total number of swallowed cache failures",
		},
		[]string{"backend", "op"},
	)

	ScoringDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "recommendation_scoring_duration_seconds",
			Help: "Duration of a full mentor pool scoring pass in seconds",
		},
	)

	MentorsScored = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendation_mentors_scored_total",
			Help: "Total number of mentor candidates scored",
		},
	)

	CacheEntriesSwept = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendation_cache_entries_swept_total",
			Help: "Total number of expired cache rows deleted by the sweeper",
		},
	)
)
