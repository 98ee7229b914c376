// internal/recommend/inferrer_test.go
package recommend

import (
	"context"
	"testing"

	"mentorlink-engine/internal/common/logger"
	"mentorlink-engine/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInferCriteria_NoHistory(t *testing.T) {
	svc := NewService(Config{}, &fakeCandidateSource{}, &fakeHistorySource{}, newFakeStore(), nil, logger.NewTestLogger(t))

	criteria, err := svc.inferCriteria(context.Background(), "student-1")
	require.NoError(t, err)

	assert.Equal(t, "student-1", criteria.StudentID)
	assert.Empty(t, criteria.StudentNeeds)
	assert.Equal(t, models.UrgencyLow, criteria.Urgency)
	assert.Equal(t, models.ModeChat, criteria.PreferredMode)
	assert.Equal(t, models.LevelBeginner, criteria.StudentLevel)
}

func TestInferCriteria_WithHistory(t *testing.T) {
	history := &fakeHistorySource{topics: []string{
		"React Hooks, State Management",
		"react performance",
	}}
	svc := NewService(Config{}, &fakeCandidateSource{}, history, newFakeStore(), nil, logger.NewTestLogger(t))

	criteria, err := svc.inferCriteria(context.Background(), "student-1")
	require.NoError(t, err)

	assert.Equal(t, []string{"react", "hooks", "state", "management", "performance"}, criteria.StudentNeeds)
	assert.Equal(t, models.LevelIntermediate, criteria.StudentLevel)
}

func TestNeedsFromTopics(t *testing.T) {
	tests := []struct {
		name     string
		topics   []string
		expected []string
	}{
		{
			name:     "splits on whitespace and commas",
			topics:   []string{"go,concurrency patterns"},
			expected: []string{"concurrency", "patterns"},
		},
		{
			name:     "drops tokens of length three or less",
			topics:   []string{"sql and api design"},
			expected: []string{"design"},
		},
		{
			name:     "deduplicates preserving first-seen order",
			topics:   []string{"docker basics", "basics of docker"},
			expected: []string{"docker", "basics"},
		},
		{
			name:     "lowercases tokens",
			topics:   []string{"Kubernetes NETWORKING"},
			expected: []string{"kubernetes", "networking"},
		},
		{
			name:     "empty topics yield no needs",
			topics:   []string{"", "   "},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, needsFromTopics(tt.topics))
		})
	}
}
