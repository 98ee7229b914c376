// internal/scoring/rating.go
package scoring

import "fmt"

// MaxRatingScore is the rating component's share of the weight budget.
const MaxRatingScore = 20.0

const ratingScale = 5.0

// RatingResult carries the rating component score and its reason text.
type RatingResult struct {
	Score  float64
	Reason string
}

// ScoreRating normalizes a mentor's star rating into the component's range.
// Rating must be within [0,5]; out-of-range input is a contract violation of
// the upstream feed, validated at the ingestion boundary rather than here.
func ScoreRating(rating float64, reviewCount int, isVerified bool) RatingResult {
	score := rating / ratingScale * MaxRatingScore

	reason := fmt.Sprintf("%.1f★ rating", rating)
	if reviewCount > 0 {
		reason += fmt.Sprintf(" (%d reviews)", reviewCount)
	}
	if isVerified {
		reason += " · Verified mentor"
	}

	return RatingResult{Score: score, Reason: reason}
}
