// internal/scoring/availability.go
package scoring

import (
	"strings"

	"mentorlink-engine/internal/models"
)

// MaxAvailabilityScore is the availability component's share of the weight budget.
const MaxAvailabilityScore = 20.0

const (
	reachableCredit = 10.0
	maxDayScore     = 10.0
	// noDayPreferenceCredit is awarded when the student stated no preferred
	// days. It reflects "no information", not "no overlap".
	noDayPreferenceCredit = 5.0
)

// AvailabilityResult carries the availability component score and its reason text.
type AvailabilityResult struct {
	Score  float64
	Reason string
}

// ScoreAvailability scores a mentor's current reachability plus day-of-week
// overlap with the student's preference.
func ScoreAvailability(preferredDays []string, reachability models.Reachability, availableDays []string) AvailabilityResult {
	score := 0.0
	var reason string

	switch reachability {
	case models.ReachabilityAvailable:
		score += reachableCredit
		reason = "Currently available"
	case models.ReachabilityInSession:
		reason = "Currently in session"
	default:
		reason = "Currently offline"
	}

	if len(preferredDays) == 0 {
		score += noDayPreferenceCredit
		return AvailabilityResult{Score: score, Reason: reason}
	}

	overlap := dayIntersection(preferredDays, availableDays)
	score += float64(len(overlap)) / float64(len(preferredDays)) * maxDayScore
	if len(overlap) > 0 {
		reason += "; Available on " + strings.Join(overlap, ", ")
	}

	return AvailabilityResult{Score: score, Reason: reason}
}

// dayIntersection returns the preferred days the mentor covers, preserving
// the student's stated order.
func dayIntersection(preferred, available []string) []string {
	availSet := make(map[string]struct{}, len(available))
	for _, d := range available {
		availSet[normalizeTag(d)] = struct{}{}
	}

	var overlap []string
	for _, d := range preferred {
		if _, ok := availSet[normalizeTag(d)]; ok {
			overlap = append(overlap, d)
		}
	}
	return overlap
}
