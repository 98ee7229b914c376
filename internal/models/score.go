// internal/models/score.go
package models

import "math"

// ScoreBreakdown holds the four component scores. The weight budget:
// skill 50, availability 20, rating 20, past success 10.
type ScoreBreakdown struct {
	SkillMatch   float64 `json:"skillMatch"`
	Availability float64 `json:"availability"`
	Rating       float64 `json:"rating"`
	PastSuccess  float64 `json:"pastSuccess"`
}

// Sum returns the total of all components.
func (b ScoreBreakdown) Sum() float64 {
	return b.SkillMatch + b.Availability + b.Rating + b.PastSuccess
}

// MatchScore is the scoring result for one (student, mentor) pair.
// TotalScore always equals Breakdown.Sum(); MatchPercentage is derived from
// TotalScore, never stored independently.
type MatchScore struct {
	MentorID        string         `json:"mentorId"`
	MentorName      string         `json:"mentorName,omitempty"`
	MentorAvatarRef string         `json:"mentorAvatarRef,omitempty"`
	TotalScore      float64        `json:"totalScore"`
	Breakdown       ScoreBreakdown `json:"breakdown"`
	MatchPercentage int            `json:"matchPercentage"`
	Reasoning       []string       `json:"reasoning"`
}

// PercentageFor derives the match percentage from a total score, clamped to
// [0,100]. The nominal weight budget sums to exactly 100, but rounding and
// the no-day-preference flat bonus can push a raw total fractionally outside.
func PercentageFor(totalScore float64) int {
	pct := int(math.Round(totalScore))
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
