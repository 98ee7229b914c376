// internal/cache/store.go

// Package cache implements the per-student, per-mentor score snapshot cache.
// The cache is an optimization, not a correctness dependency: callers swallow
// read/write failures and fall back to recomputation.
package cache

import (
	"context"
	"time"

	"mentorlink-engine/internal/models"
)

// DefaultTTL is how long a cached score stays fresh.
const DefaultTTL = time.Hour

// Store is the RecommendationCache contract. Entries are keyed by
// (studentID, mentorID); each mentor row is independently upsertable with
// last-writer-wins semantics.
type Store interface {
	// Lookup returns all non-expired entries for the student, sorted by total
	// score descending. Reasoning is not persisted, so cached results carry an
	// empty reasoning list. An empty result means cache miss.
	Lookup(ctx context.Context, studentID string) ([]models.MatchScore, error)

	// Upsert writes one row per mentor with expiry now+ttl, overwriting any
	// prior row for the same (studentID, mentorID) key.
	Upsert(ctx context.Context, studentID string, scores []models.MatchScore, ttl time.Duration) error

	// SweepExpired deletes rows past expiry and reports how many went. It is
	// idempotent and safe to run concurrently with lookups.
	SweepExpired(ctx context.Context) (int64, error)
}

// entryToScore rebuilds a MatchScore from persisted component scores. Only
// ids and scores survive the cache round-trip; the match percentage is
// re-derived from the total so it is never stored independently.
func entryToScore(mentorID string, total, skill, availability, rating, success float64) models.MatchScore {
	return models.MatchScore{
		MentorID:   mentorID,
		TotalScore: total,
		Breakdown: models.ScoreBreakdown{
			SkillMatch:   skill,
			Availability: availability,
			Rating:       rating,
			PastSuccess:  success,
		},
		MatchPercentage: models.PercentageFor(total),
		Reasoning:       []string{},
	}
}
