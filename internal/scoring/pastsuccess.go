// internal/scoring/pastsuccess.go
package scoring

import (
	"fmt"
	"math"
)

// MaxPastSuccessScore is the past-success component's share of the weight budget.
const MaxPastSuccessScore = 10.0

const (
	// sessionSaturation is the session count at which experience credit caps out.
	sessionSaturation = 20.0
	maxSessionScore   = 5.0

	// Proven-track-record bonus: all or nothing.
	trackRecordBonus      = 5.0
	trackRecordMinReviews = 10
	trackRecordMinRating  = 4.5
)

// PastSuccessResult carries the past-success component score and its reason text.
type PastSuccessResult struct {
	Score  float64
	Reason string
}

// ScorePastSuccess rewards session-volume experience, saturating at 20
// sessions, plus an all-or-nothing bonus for a proven high-rating track record.
func ScorePastSuccess(sessionCount int, rating float64, reviewCount int) PastSuccessResult {
	sessionScore := math.Min(maxSessionScore, float64(sessionCount)/sessionSaturation*maxSessionScore)

	reason := fmt.Sprintf("%d sessions completed", sessionCount)

	bonus := 0.0
	if reviewCount > trackRecordMinReviews && rating >= trackRecordMinRating {
		bonus = trackRecordBonus
		reason += " · Proven track record"
	}

	return PastSuccessResult{Score: sessionScore + bonus, Reason: reason}
}
