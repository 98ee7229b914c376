// internal/scoring/skill.go

// Package scoring implements the weighted multi-factor mentor scoring model.
// Component weight budget: skill 50, availability 20, rating 20, past success 10.
package scoring

import (
	"math"
	"strings"
)

// MaxSkillScore is the skill component's share of the weight budget.
const MaxSkillScore = 50.0

const (
	exactMatchCredit = 1.0
	fuzzyMatchCredit = 0.7
)

// SkillMatchResult carries the skill component score and the needs that
// matched; matched need names (not raw credits) feed the reasoning text.
type SkillMatchResult struct {
	Score        float64
	MatchedNeeds []string
}

// MatchSkills scores textual overlap between a student's stated needs and a
// mentor's skill and domain tags. Exact tag equality earns full credit; a
// substring containment in either direction earns partial credit.
func MatchSkills(studentNeeds, mentorSkills, mentorDomain []string) SkillMatchResult {
	tags := make([]string, 0, len(mentorSkills)+len(mentorDomain))
	for _, t := range mentorSkills {
		tags = append(tags, normalizeTag(t))
	}
	for _, t := range mentorDomain {
		tags = append(tags, normalizeTag(t))
	}

	matchCount := 0.0
	var matched []string
	for _, rawNeed := range studentNeeds {
		need := normalizeTag(rawNeed)
		if need == "" {
			continue
		}
		switch {
		case containsExact(tags, need):
			matchCount += exactMatchCredit
			matched = append(matched, need)
		case containsFuzzy(tags, need):
			matchCount += fuzzyMatchCredit
			matched = append(matched, need)
		}
	}

	matchRatio := matchCount / math.Max(1, float64(len(studentNeeds)))

	return SkillMatchResult{
		Score:        math.Min(MaxSkillScore, matchRatio*MaxSkillScore),
		MatchedNeeds: matched,
	}
}

func normalizeTag(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func containsExact(tags []string, need string) bool {
	for _, tag := range tags {
		if tag == need {
			return true
		}
	}
	return false
}

func containsFuzzy(tags []string, need string) bool {
	for _, tag := range tags {
		if tag == "" {
			continue
		}
		if strings.Contains(tag, need) || strings.Contains(need, tag) {
			return true
		}
	}
	return false
}
