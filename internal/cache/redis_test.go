// internal/cache/redis_test.go
package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	stderrors "mentorlink-engine/internal/common/errors"
	"mentorlink-engine/internal/common/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func setupRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStore(client, logger.NewTestLogger(t)), mr
}

// ==========================
// Round-Trip Tests
// ==========================

func TestRedisStore_RoundTrip(t *testing.T) {
	store, _ := setupRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, "student-1", sampleScores(), time.Hour))

	scores, err := store.Lookup(ctx, "student-1")
	require.NoError(t, err)
	require.Len(t, scores, 2)

	// Sorted by total score descending, reasoning not persisted.
	assert.Equal(t, "mentor-1", scores[0].MentorID)
	assert.Equal(t, "mentor-2", scores[1].MentorID)
	assert.InDelta(t, 69.2, scores[0].TotalScore, 1e-9)
	assert.Equal(t, 69, scores[0].MatchPercentage)
	assert.Empty(t, scores[0].Reasoning)
	assert.InDelta(t, scores[0].Breakdown.Sum(), scores[0].TotalScore, 1e-9)
}

func TestRedisStore_Lookup_MissAfterExpiry(t *testing.T) {
	store, mr := setupRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, "student-1", sampleScores(), time.Hour))

	mr.FastForward(2 * time.Hour)

	scores, err := store.Lookup(ctx, "student-1")
	require.NoError(t, err)
	assert.Empty(t, scores)
}

func TestRedisStore_Lookup_UnknownStudentIsMiss(t *testing.T) {
	store, _ := setupRedisStore(t)

	scores, err := store.Lookup(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, scores)
}

func TestRedisStore_Upsert_OverwritesPerMentor(t *testing.T) {
	store, _ := setupRedisStore(t)
	ctx := context.Background()

	first := sampleScores()
	require.NoError(t, store.Upsert(ctx, "student-1", first, time.Hour))

	updated := sampleScores()[:1]
	updated[0].TotalScore = 42
	updated[0].Breakdown.SkillMatch = 42
	updated[0].Breakdown.Availability = 0
	updated[0].Breakdown.Rating = 0
	updated[0].Breakdown.PastSuccess = 0
	require.NoError(t, store.Upsert(ctx, "student-1", updated, time.Hour))

	scores, err := store.Lookup(ctx, "student-1")
	require.NoError(t, err)
	require.Len(t, scores, 2) // mentor-2 untouched, mentor-1 overwritten not duplicated

	for _, sc := range scores {
		if sc.MentorID == "mentor-1" {
			assert.InDelta(t, 42.0, sc.TotalScore, 1e-9)
		}
	}
}

func TestRedisStore_KeysIsolatedPerStudent(t *testing.T) {
	store, _ := setupRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, "student-1", sampleScores(), time.Hour))

	scores, err := store.Lookup(ctx, "student-2")
	require.NoError(t, err)
	assert.Empty(t, scores)
}

func TestRedisStore_OpaqueIDsDoNotLeakAcrossStudents(t *testing.T) {
	store, _ := setupRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, "alice:eu", sampleScores()[:1], time.Hour))

	// "alice" shares a prefix with "alice:eu" around the key delimiter; it
	// must not see the other student's entries.
	scores, err := store.Lookup(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, scores)

	scores, err = store.Lookup(ctx, "alice:eu")
	require.NoError(t, err)
	assert.Len(t, scores, 1)
}

func TestRedisStore_GlobMetacharactersInIDsAreLiteral(t *testing.T) {
	store, _ := setupRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, "student-1", sampleScores(), time.Hour))

	for _, id := range []string{"*", "student-?", "student-[1]", "student-*"} {
		scores, err := store.Lookup(ctx, id)
		require.NoError(t, err)
		assert.Empty(t, scores, "id %q must not match other students' keys", id)
	}
}

// ==========================
// Failure Path Tests
// ==========================

func TestRedisStore_Lookup_ScanError(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := NewRedisStore(client, logger.NewNoOpLogger())

	mock.ExpectScan(0, studentKeyPattern("student-1"), 0).SetErr(errors.New("connection reset"))

	_, err := store.Lookup(context.Background(), "student-1")
	require.Error(t, err)
	assert.True(t, stderrors.IsCode(err, stderrors.ErrCodeCacheReadFailed))
}

func TestRedisStore_Upsert_SetError(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := NewRedisStore(client, logger.NewNoOpLogger())

	scores := sampleScores()[:1]
	mock.Regexp().ExpectSet(pairKey("student-1", "mentor-1"), `.*`, time.Hour).
		SetErr(errors.New("readonly replica"))

	err := store.Upsert(context.Background(), "student-1", scores, time.Hour)
	require.Error(t, err)
	assert.True(t, stderrors.IsCode(err, stderrors.ErrCodeCacheWriteFailed))
}

func TestRedisStore_SweepExpired_NoOp(t *testing.T) {
	store, _ := setupRedisStore(t)

	swept, err := store.SweepExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), swept)
}
