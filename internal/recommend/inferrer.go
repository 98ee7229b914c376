// internal/recommend/inferrer.go
package recommend

import (
	"context"
	"strings"

	"mentorlink-engine/internal/models"
)

// minTokenLength filters noise words out of inferred needs; tokens of this
// length or shorter are discarded.
const minTokenLength = 3

// inferCriteria derives matching criteria from the student's completed
// session topics. Students with no history get empty needs, which yields a
// ranking driven purely by availability, rating, and past success.
func (s *Service) inferCriteria(ctx context.Context, studentID string) (models.MatchingCriteria, error) {
	topics, err := s.history.CompletedSessionTopics(ctx, studentID)
	if err != nil {
		return models.MatchingCriteria{}, err
	}

	if len(topics) == 0 {
		return models.MatchingCriteria{
			StudentID:     studentID,
			StudentNeeds:  []string{},
			Urgency:       models.UrgencyLow,
			PreferredMode: models.ModeChat,
			StudentLevel:  models.LevelBeginner,
		}, nil
	}

	return models.MatchingCriteria{
		StudentID:     studentID,
		StudentNeeds:  needsFromTopics(topics),
		Urgency:       models.UrgencyMedium,
		PreferredMode: models.ModeChat,
		StudentLevel:  models.LevelIntermediate,
	}, nil
}

// needsFromTopics tokenizes past topics on whitespace and commas, drops short
// tokens, and de-duplicates preserving first-seen order.
func needsFromTopics(topics []string) []string {
	seen := make(map[string]struct{})
	var needs []string

	for _, topic := range topics {
		tokens := strings.FieldsFunc(topic, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t' || r == '\n'
		})
		for _, token := range tokens {
			token = strings.ToLower(strings.TrimSpace(token))
			if len(token) <= minTokenLength {
				continue
			}
			if _, ok := seen[token]; ok {
				continue
			}
			seen[token] = struct{}{}
			needs = append(needs, token)
		}
	}

	return needs
}
