// internal/cache/postgres.go
package cache

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"mentorlink-engine/internal/common/errors"
	"mentorlink-engine/internal/common/logger"
	"mentorlink-engine/internal/models"
)

const createTableStmt = `
CREATE TABLE IF NOT EXISTS recommendation_cache (
	student_id         TEXT NOT NULL,
	mentor_id          TEXT NOT NULL,
	total_score        DOUBLE PRECISION NOT NULL,
	skill_score        DOUBLE PRECISION NOT NULL,
	availability_score DOUBLE PRECISION NOT NULL,
	rating_score       DOUBLE PRECISION NOT NULL,
	success_score      DOUBLE PRECISION NOT NULL,
	expires_at         TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (student_id, mentor_id)
)`

const lookupStmt = `
SELECT mentor_id, total_score, skill_score, availability_score, rating_score, success_score
FROM recommendation_cache
WHERE student_id = $1 AND expires_at > $2
ORDER BY total_score DESC`

const upsertStmt = `
INSERT INTO recommendation_cache
	(student_id, mentor_id, total_score, skill_score, availability_score, rating_score, success_score, expires_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (student_id, mentor_id) DO UPDATE SET
	total_score        = EXCLUDED.total_score,
	skill_score        = EXCLUDED.skill_score,
	availability_score = EXCLUDED.availability_score,
	rating_score       = EXCLUDED.rating_score,
	success_score      = EXCLUDED.success_score,
	expires_at         = EXCLUDED.expires_at`

const sweepStmt = `DELETE FROM recommendation_cache WHERE expires_at < $1`

// PostgresStore persists score snapshots in the recommendation_cache table.
type PostgresStore struct {
	db     *sql.DB
	logger logger.Logger
	now    func() time.Time
}

func NewPostgresStore(db *sql.DB, log logger.Logger) *PostgresStore {
	return &PostgresStore{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"cacheBackend": "postgres"}),
		now:    time.Now,
	}
}

// EnsureSchema creates the cache table if it does not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createTableStmt); err != nil {
		return fmt.Errorf("create recommendation_cache table: %w", err)
	}
	return nil
}

func (s *PostgresStore) Lookup(ctx context.Context, studentID string) ([]models.MatchScore, error) {
	rows, err := s.db.QueryContext(ctx, lookupStmt, studentID, s.now().UTC())
	if err != nil {
		return nil, errors.NewCacheReadError("cache lookup: " + err.Error())
	}
	defer rows.Close()

	var scores []models.MatchScore
	for rows.Next() {
		var mentorID string
		var total, skill, availability, rating, success float64
		if err := rows.Scan(&mentorID, &total, &skill, &availability, &rating, &success); err != nil {
			return nil, errors.NewCacheReadError("cache row scan: " + err.Error())
		}
		scores = append(scores, entryToScore(mentorID, total, skill, availability, rating, success))
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewCacheReadError("cache rows: " + err.Error())
	}

	return scores, nil
}

// Upsert writes one row per mentor. Rows are written independently on
// purpose: concurrent writers for the same student race per mentor with
// last-writer-wins, never inside a multi-mentor transaction.
func (s *PostgresStore) Upsert(ctx context.Context, studentID string, scores []models.MatchScore, ttl time.Duration) error {
	expiresAt := s.now().UTC().Add(ttl)
	for _, sc := range scores {
		_, err := s.db.ExecContext(ctx, upsertStmt,
			studentID, sc.MentorID,
			sc.TotalScore,
			sc.Breakdown.SkillMatch,
			sc.Breakdown.Availability,
			sc.Breakdown.Rating,
			sc.Breakdown.PastSuccess,
			expiresAt,
		)
		if err != nil {
			return errors.NewCacheWriteError(fmt.Sprintf("cache upsert mentor %s: %v", sc.MentorID, err))
		}
	}
	return nil
}

func (s *PostgresStore) SweepExpired(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, sweepStmt, s.now().UTC())
	if err != nil {
		return 0, errors.NewCacheSweepError("cache sweep: " + err.Error())
	}
	swept, err := res.RowsAffected()
	if err != nil {
		return 0, errors.NewCacheSweepError("cache sweep rows affected: " + err.Error())
	}
	return swept, nil
}
