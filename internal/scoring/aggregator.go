// internal/scoring/aggregator.go
package scoring

import (
	"sort"
	"strings"

	"mentorlink-engine/internal/models"
)

// Aggregator runs the four component scorers over a mentor pool and builds
// ranked MatchScore results.
type Aggregator struct{}

func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Score evaluates every candidate against the criteria and returns the full
// result list sorted by total score descending. The sort is stable so equal
// scores keep input order across calls. Candidates with zero overlap and zero
// history still receive a score; they are ranked low, never excluded.
func (a *Aggregator) Score(criteria models.MatchingCriteria, candidates []models.MentorCandidate) []models.MatchScore {
	scores := make([]models.MatchScore, 0, len(candidates))
	for _, mentor := range candidates {
		scores = append(scores, a.scoreOne(criteria, mentor))
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].TotalScore > scores[j].TotalScore
	})

	return scores
}

func (a *Aggregator) scoreOne(criteria models.MatchingCriteria, mentor models.MentorCandidate) models.MatchScore {
	skill := MatchSkills(criteria.StudentNeeds, mentor.SkillTags, mentor.DomainTags)
	availability := ScoreAvailability(criteria.PreferredDays, mentor.Reachability, mentor.AvailableDays)
	rating := ScoreRating(mentor.Rating, mentor.ReviewCount, mentor.IsVerified)
	success := ScorePastSuccess(mentor.SessionCount, mentor.Rating, mentor.ReviewCount)

	breakdown := models.ScoreBreakdown{
		SkillMatch:   skill.Score,
		Availability: availability.Score,
		Rating:       rating.Score,
		PastSuccess:  success.Score,
	}
	total := breakdown.Sum()

	// Reasoning order is fixed: skill, availability, rating, past success.
	var reasoning []string
	if len(skill.MatchedNeeds) > 0 {
		reasoning = append(reasoning, "Matches your needs: "+strings.Join(skill.MatchedNeeds, ", "))
	}
	if availability.Reason != "" {
		reasoning = append(reasoning, availability.Reason)
	}
	reasoning = append(reasoning, rating.Reason)
	if mentor.SessionCount > 0 {
		reasoning = append(reasoning, success.Reason)
	}

	return models.MatchScore{
		MentorID:        mentor.ID,
		MentorName:      mentor.DisplayName,
		MentorAvatarRef: mentor.AvatarRef,
		TotalScore:      total,
		Breakdown:       breakdown,
		MatchPercentage: models.PercentageFor(total),
		Reasoning:       reasoning,
	}
}
