// internal/recommend/service.go

// Package recommend wires the scorers, the cache, and the upstream sources
// into the two engine entry points: RankMentors and RecommendForStudent.
package recommend

import (
	"context"
	"time"

	"mentorlink-engine/internal/cache"
	"mentorlink-engine/internal/common/logger"
	"mentorlink-engine/internal/common/metrics"
	"mentorlink-engine/internal/common/observability"
	"mentorlink-engine/internal/models"
	"mentorlink-engine/internal/scoring"
	"mentorlink-engine/internal/source"
)

// DefaultLimit is the fallback for Config.DefaultLimit when the wiring does
// not set one.
const DefaultLimit = 5

type Config struct {
	CacheTTL time.Duration
	// CacheBackendLabel tags cache metrics ("postgres" or "redis").
	CacheBackendLabel string
	// DefaultLimit is applied when RecommendForStudent receives limit <= 0.
	DefaultLimit int
	// ScoringTimeout bounds one full rank pass (cache lookup, pool fetch,
	// scoring). Zero means no deadline.
	ScoringTimeout time.Duration
}

// Service is the recommendation engine. It is stateless between calls except
// for the persisted cache; concurrent requests need no in-process locks.
type Service struct {
	config     Config
	aggregator *scoring.Aggregator
	candidates source.CandidateSource
	history    source.HistorySource
	store      cache.Store
	obs        *observability.Observability
	logger     logger.Logger
}

func NewService(
	cfg Config,
	candidates source.CandidateSource,
	history source.HistorySource,
	store cache.Store,
	obs *observability.Observability,
	log logger.Logger,
) *Service {
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = cache.DefaultTTL
	}
	if cfg.CacheBackendLabel == "" {
		cfg.CacheBackendLabel = "unknown"
	}
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = DefaultLimit
	}
	if obs == nil {
		obs = &observability.Observability{}
	}
	return &Service{
		config:     cfg,
		aggregator: scoring.NewAggregator(),
		candidates: candidates,
		history:    history,
		store:      store,
		obs:        obs,
		logger:     log.WithFields(map[string]interface{}{"component": "recommend"}),
	}
}

// RankMentors is the primary entry point. It serves fresh cached scores when
// present, otherwise scores the full candidate pool and caches the result.
// A limit <= 0 means no truncation. Cache failures degrade to recompute /
// skip-cache and never abort the request; candidate fetch failures propagate.
func (s *Service) RankMentors(ctx context.Context, criteria models.MatchingCriteria, limit int) ([]models.MatchScore, error) {
	if s.config.ScoringTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.ScoringTimeout)
		defer cancel()
	}

	if cached := s.lookupCache(ctx, criteria.StudentID); len(cached) > 0 {
		metrics.RecommendationCacheHits.WithLabelValues(s.config.CacheBackendLabel).Inc()
		s.obs.RecordRequest(ctx, "cache")
		return truncate(cached, limit), nil
	}
	metrics.RecommendationCacheMisses.WithLabelValues(s.config.CacheBackendLabel).Inc()

	pool, err := s.candidates.ActiveMentorCandidates(ctx)
	if err != nil {
		return nil, err
	}
	if len(pool) == 0 {
		return []models.MatchScore{}, nil
	}

	start := time.Now()
	scores := s.aggregator.Score(criteria, pool)
	elapsed := time.Since(start)

	metrics.MentorsScored.Add(float64(len(pool)))
	metrics.ScoringDuration.Observe(elapsed.Seconds())
	s.obs.RecordScoringDuration(ctx, elapsed)
	s.obs.RecordRequest(ctx, "scored")

	s.logger.Info("mentor pool scored", map[string]interface{}{
		"studentId":  criteria.StudentID,
		"poolSize":   len(pool),
		"durationMs": elapsed.Milliseconds(),
	})

	s.storeCache(ctx, criteria.StudentID, scores)

	return truncate(scores, limit), nil
}

// RecommendForStudent infers criteria from the student's session history and
// delegates to RankMentors. A limit <= 0 falls back to the configured default.
func (s *Service) RecommendForStudent(ctx context.Context, studentID string, limit int) ([]models.MatchScore, error) {
	criteria, err := s.inferCriteria(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = s.config.DefaultLimit
	}
	return s.RankMentors(ctx, criteria, limit)
}

// lookupCache reads the cache, swallowing failures: a broken cache degrades
// to "always recompute".
func (s *Service) lookupCache(ctx context.Context, studentID string) []models.MatchScore {
	cached, err := s.store.Lookup(ctx, studentID)
	if err != nil {
		metrics.RecommendationCacheErrors.WithLabelValues(s.config.CacheBackendLabel, "lookup").Inc()
		s.logger.Warn("cache lookup failed, recomputing", map[string]interface{}{
			"studentId": studentID,
			"error":     err,
		})
		return nil
	}
	return cached
}

// storeCache writes scores to the cache, swallowing failures: the ranked
// result is served uncached.
func (s *Service) storeCache(ctx context.Context, studentID string, scores []models.MatchScore) {
	if err := s.store.Upsert(ctx, studentID, scores, s.config.CacheTTL); err != nil {
		metrics.RecommendationCacheErrors.WithLabelValues(s.config.CacheBackendLabel, "upsert").Inc()
		s.logger.Warn("cache store failed, result served uncached", map[string]interface{}{
			"studentId": studentID,
			"error":     err,
		})
	}
}

func truncate(scores []models.MatchScore, limit int) []models.MatchScore {
	if limit > 0 && len(scores) > limit {
		return scores[:limit]
	}
	return scores
}
