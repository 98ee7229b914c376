// internal/source/source.go

// Package source implements the engine's upstream collaborators: the active
// mentor pool and the student's completed session history. The engine treats
// both as pure read operations it does not own.
package source

import (
	"context"

	"mentorlink-engine/internal/models"
)

// CandidateSource supplies the active mentor pool.
type CandidateSource interface {
	ActiveMentorCandidates(ctx context.Context) ([]models.MentorCandidate, error)
}

// HistorySource supplies the topic strings of a student's completed sessions.
type HistorySource interface {
	CompletedSessionTopics(ctx context.Context, studentID string) ([]string, error)
}
