// internal/cache/postgres_test.go
package cache

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	stderrors "mentorlink-engine/internal/common/errors"
	"mentorlink-engine/internal/common/logger"
	"mentorlink-engine/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

var fixedNow = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

func setupPostgresStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create mock db: %v", err)
	}
	store := NewPostgresStore(db, logger.NewTestLogger(t))
	store.now = func() time.Time { return fixedNow }
	return store, mock, db
}

func sampleScores() []models.MatchScore {
	return []models.MatchScore{
		{
			MentorID:   "mentor-1",
			TotalScore: 69.2,
			Breakdown: models.ScoreBreakdown{
				SkillMatch:   25,
				Availability: 15,
				Rating:       19.2,
				PastSuccess:  10,
			},
			MatchPercentage: 69,
			Reasoning:       []string{"Currently available"},
		},
		{
			MentorID:   "mentor-2",
			TotalScore: 31,
			Breakdown: models.ScoreBreakdown{
				Availability: 15,
				Rating:       16,
			},
			MatchPercentage: 31,
		},
	}
}

// ==========================
// Lookup Tests
// ==========================

func TestPostgresStore_Lookup(t *testing.T) {
	store, mock, db := setupPostgresStore(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{
		"mentor_id", "total_score", "skill_score", "availability_score", "rating_score", "success_score",
	}).
		AddRow("mentor-1", 69.2, 25.0, 15.0, 19.2, 10.0).
		AddRow("mentor-2", 31.0, 0.0, 15.0, 16.0, 0.0)

	mock.ExpectQuery(regexp.QuoteMeta(lookupStmt)).
		WithArgs("student-1", fixedNow).
		WillReturnRows(rows)

	scores, err := store.Lookup(context.Background(), "student-1")
	require.NoError(t, err)
	require.Len(t, scores, 2)

	// Cached results carry ids and scores only; reasoning is never persisted.
	assert.Equal(t, "mentor-1", scores[0].MentorID)
	assert.InDelta(t, 69.2, scores[0].TotalScore, 1e-9)
	assert.Equal(t, 69, scores[0].MatchPercentage)
	assert.Empty(t, scores[0].Reasoning)
	assert.Empty(t, scores[0].MentorName)

	assert.InDelta(t, scores[0].Breakdown.Sum(), scores[0].TotalScore, 1e-9)
	assert.InDelta(t, scores[1].Breakdown.Sum(), scores[1].TotalScore, 1e-9)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Lookup_EmptyIsMiss(t *testing.T) {
	store, mock, db := setupPostgresStore(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(lookupStmt)).
		WithArgs("student-1", fixedNow).
		WillReturnRows(sqlmock.NewRows([]string{
			"mentor_id", "total_score", "skill_score", "availability_score", "rating_score", "success_score",
		}))

	scores, err := store.Lookup(context.Background(), "student-1")
	require.NoError(t, err)
	assert.Empty(t, scores)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Lookup_QueryError(t *testing.T) {
	store, mock, db := setupPostgresStore(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(lookupStmt)).
		WithArgs("student-1", fixedNow).
		WillReturnError(errors.New("connection refused"))

	_, err := store.Lookup(context.Background(), "student-1")
	require.Error(t, err)
	assert.True(t, stderrors.IsCode(err, stderrors.ErrCodeCacheReadFailed))
}

// ==========================
// Upsert Tests
// ==========================

func TestPostgresStore_Upsert(t *testing.T) {
	store, mock, db := setupPostgresStore(t)
	defer db.Close()

	expiresAt := fixedNow.Add(time.Hour)
	mock.ExpectExec(regexp.QuoteMeta(upsertStmt)).
		WithArgs("student-1", "mentor-1", 69.2, 25.0, 15.0, 19.2, 10.0, expiresAt).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(upsertStmt)).
		WithArgs("student-1", "mentor-2", 31.0, 0.0, 15.0, 16.0, 0.0, expiresAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.Upsert(context.Background(), "student-1", sampleScores(), time.Hour)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Upsert_WriteError(t *testing.T) {
	store, mock, db := setupPostgresStore(t)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(upsertStmt)).
		WillReturnError(errors.New("disk full"))

	err := store.Upsert(context.Background(), "student-1", sampleScores(), time.Hour)
	require.Error(t, err)
	assert.True(t, stderrors.IsCode(err, stderrors.ErrCodeCacheWriteFailed))
}

// ==========================
// Sweep Tests
// ==========================

func TestPostgresStore_SweepExpired(t *testing.T) {
	store, mock, db := setupPostgresStore(t)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(sweepStmt)).
		WithArgs(fixedNow).
		WillReturnResult(sqlmock.NewResult(0, 7))

	swept, err := store.SweepExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), swept)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SweepExpired_Idempotent(t *testing.T) {
	store, mock, db := setupPostgresStore(t)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(sweepStmt)).
		WithArgs(fixedNow).
		WillReturnResult(sqlmock.NewResult(0, 0))

	swept, err := store.SweepExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), swept)
}

func TestPostgresStore_SweepExpired_RowsAffectedError(t *testing.T) {
	store, mock, db := setupPostgresStore(t)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(sweepStmt)).
		WithArgs(fixedNow).
		WillReturnResult(sqlmock.NewErrorResult(errors.New("driver does not report rows")))

	_, err := store.SweepExpired(context.Background())
	require.Error(t, err)
	assert.True(t, stderrors.IsCode(err, stderrors.ErrCodeCacheSweepFailed))
}
