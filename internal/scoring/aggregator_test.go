// internal/scoring/aggregator_test.go
package scoring

import (
	"testing"

	"mentorlink-engine/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestCriteria() models.MatchingCriteria {
	return models.MatchingCriteria{
		StudentID:     "student-1",
		StudentNeeds:  []string{"React", "Node"},
		Urgency:       models.UrgencyMedium,
		PreferredMode: models.ModeVideo,
		StudentLevel:  models.LevelIntermediate,
	}
}

func createMentorA() models.MentorCandidate {
	return models.MentorCandidate{
		ID:           "mentor-a",
		DisplayName:  "Mentor A",
		SkillTags:    []string{"react", "typescript"},
		Rating:       4.8,
		ReviewCount:  15,
		SessionCount: 25,
		Reachability: models.ReachabilityAvailable,
	}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestAggregator_Score_ExactScenario(t *testing.T) {
	// Mentor A against ["React", "Node"], no day preference:
	// skill 25 + availability 15 + rating 19.2 + past success 10 = 69.2
	agg := NewAggregator()

	scores := agg.Score(createTestCriteria(), []models.MentorCandidate{createMentorA()})
	require.Len(t, scores, 1)

	sc := scores[0]
	assert.InDelta(t, 25.0, sc.Breakdown.SkillMatch, 1e-9)
	assert.InDelta(t, 15.0, sc.Breakdown.Availability, 1e-9)
	assert.InDelta(t, 19.2, sc.Breakdown.Rating, 1e-9)
	assert.InDelta(t, 10.0, sc.Breakdown.PastSuccess, 1e-9)
	assert.InDelta(t, 69.2, sc.TotalScore, 1e-9)
	assert.Equal(t, 69, sc.MatchPercentage)
	assert.Equal(t, "mentor-a", sc.MentorID)
	assert.Equal(t, "Mentor A", sc.MentorName)
}

func TestAggregator_Score_TotalEqualsBreakdownSum(t *testing.T) {
	candidates := []models.MentorCandidate{
		createMentorA(),
		{ID: "empty"},
		{
			ID:            "mixed",
			SkillTags:     []string{"go"},
			Rating:        3.3,
			ReviewCount:   2,
			SessionCount:  7,
			Reachability:  models.ReachabilityInSession,
			AvailableDays: []string{"monday"},
		},
	}
	criteria := createTestCriteria()
	criteria.PreferredDays = []string{"monday", "friday"}

	for _, sc := range NewAggregator().Score(criteria, candidates) {
		assert.InDelta(t, sc.Breakdown.Sum(), sc.TotalScore, 1e-9)
		assert.Equal(t, models.PercentageFor(sc.TotalScore), sc.MatchPercentage)
	}
}

func TestAggregator_Score_SortedDescending(t *testing.T) {
	criteria := createTestCriteria()
	candidates := []models.MentorCandidate{
		{ID: "low", Rating: 2.5, Reachability: models.ReachabilityOffline},
		{
			ID:           "high",
			SkillTags:    []string{"react", "node"},
			Rating:       5.0,
			ReviewCount:  20,
			SessionCount: 40,
			Reachability: models.ReachabilityAvailable,
		},
		{
			ID:           "mid",
			SkillTags:    []string{"react"},
			Rating:       4.0,
			ReviewCount:  5,
			SessionCount: 10,
			Reachability: models.ReachabilityAvailable,
		},
	}

	scores := NewAggregator().Score(criteria, candidates)
	require.Len(t, scores, 3)

	assert.Equal(t, "high", scores[0].MentorID)
	assert.Equal(t, "mid", scores[1].MentorID)
	assert.Equal(t, "low", scores[2].MentorID)
	assert.Greater(t, scores[0].TotalScore, scores[1].TotalScore)
	assert.Greater(t, scores[1].TotalScore, scores[2].TotalScore)
}

func TestAggregator_Score_StableOrderForTies(t *testing.T) {
	criteria := models.MatchingCriteria{StudentID: "student-1"}
	// Identical mentors score identically; stable sort keeps input order.
	twin := models.MentorCandidate{Rating: 4.0, Reachability: models.ReachabilityAvailable}
	first, second := twin, twin
	first.ID = "first"
	second.ID = "second"

	for i := 0; i < 5; i++ {
		scores := NewAggregator().Score(criteria, []models.MentorCandidate{first, second})
		require.Len(t, scores, 2)
		assert.Equal(t, "first", scores[0].MentorID)
		assert.Equal(t, "second", scores[1].MentorID)
	}
}

func TestAggregator_Score_ZeroOverlapStillRanked(t *testing.T) {
	scores := NewAggregator().Score(createTestCriteria(), []models.MentorCandidate{{ID: "cold"}})

	require.Len(t, scores, 1)
	assert.InDelta(t, 5.0, scores[0].TotalScore, 1e-9) // no-day-preference flat bonus only
}

func TestAggregator_Score_ReasoningOrder(t *testing.T) {
	scores := NewAggregator().Score(createTestCriteria(), []models.MentorCandidate{createMentorA()})
	require.Len(t, scores, 1)

	reasoning := scores[0].Reasoning
	require.Len(t, reasoning, 4)
	assert.Equal(t, "Matches your needs: react", reasoning[0])
	assert.Equal(t, "Currently available", reasoning[1])
	assert.Equal(t, "4.8★ rating (15 reviews)", reasoning[2])
	assert.Equal(t, "25 sessions completed · Proven track record", reasoning[3])
}

func TestAggregator_Score_ReasoningOmitsAbsentComponents(t *testing.T) {
	// No skill overlap and zero sessions: only availability + rating reasons.
	scores := NewAggregator().Score(createTestCriteria(), []models.MentorCandidate{
		{ID: "cold", Rating: 3.0, Reachability: models.ReachabilityOffline},
	})
	require.Len(t, scores, 1)

	reasoning := scores[0].Reasoning
	require.Len(t, reasoning, 2)
	assert.Equal(t, "Currently offline", reasoning[0])
	assert.Equal(t, "3.0★ rating", reasoning[1])
}

func TestAggregator_Score_MatchPercentageClamped(t *testing.T) {
	assert.Equal(t, 100, models.PercentageFor(100.4))
	assert.Equal(t, 100, models.PercentageFor(101.0))
	assert.Equal(t, 0, models.PercentageFor(-0.4))
	assert.Equal(t, 69, models.PercentageFor(69.2))
	assert.Equal(t, 70, models.PercentageFor(69.5))
}

func TestAggregator_Score_EmptyPool(t *testing.T) {
	scores := NewAggregator().Score(createTestCriteria(), nil)
	assert.Empty(t, scores)
}
