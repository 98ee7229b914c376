// internal/source/postgres.go
package source

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"mentorlink-engine/internal/common/errors"
	"mentorlink-engine/internal/common/logger"
	"mentorlink-engine/internal/models"
)

const mentorsQuery = `
SELECT id, display_name, avatar_url, domain_tags, skill_tags,
       rating, review_count, session_count, reachability, available_days, is_verified
FROM mentors
WHERE is_active = TRUE`

const topicsQuery = `
SELECT topic FROM sessions
WHERE student_id = $1 AND status = 'completed'
ORDER BY completed_at`

// PostgresSource reads mentors and session history from the marketplace
// database. Tag and day lists are stored as JSON arrays.
type PostgresSource struct {
	db     *sql.DB
	logger logger.Logger
}

func NewPostgresSource(db *sql.DB, log logger.Logger) *PostgresSource {
	return &PostgresSource{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"source": "postgres"}),
	}
}

func (s *PostgresSource) ActiveMentorCandidates(ctx context.Context) ([]models.MentorCandidate, error) {
	rows, err := s.db.QueryContext(ctx, mentorsQuery)
	if err != nil {
		return nil, errors.NewMentorFetchError(err.Error())
	}
	defer rows.Close()

	var candidates []models.MentorCandidate
	for rows.Next() {
		var m models.MentorCandidate
		var avatar sql.NullString
		var domainTags, skillTags, availableDays []byte
		err := rows.Scan(&m.ID, &m.DisplayName, &avatar, &domainTags, &skillTags,
			&m.Rating, &m.ReviewCount, &m.SessionCount, &m.Reachability, &availableDays, &m.IsVerified)
		if err != nil {
			return nil, errors.NewMentorFetchError(fmt.Sprintf("scan mentor row: %v", err))
		}
		m.AvatarRef = avatar.String

		if err := json.Unmarshal(domainTags, &m.DomainTags); err != nil {
			m.DomainTags = []string{}
		}
		if err := json.Unmarshal(skillTags, &m.SkillTags); err != nil {
			m.SkillTags = []string{}
		}
		if err := json.Unmarshal(availableDays, &m.AvailableDays); err != nil {
			m.AvailableDays = []string{}
		}

		// Rating bounds are a contract of the scoring pipeline; enforce them
		// here at the ingestion boundary, not inside the scorers.
		if err := validateRating(m); err != nil {
			return nil, err
		}

		candidates = append(candidates, m)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewMentorFetchError(err.Error())
	}

	return candidates, nil
}

func (s *PostgresSource) CompletedSessionTopics(ctx context.Context, studentID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, topicsQuery, studentID)
	if err != nil {
		return nil, errors.NewHistoryFetchError(err.Error())
	}
	defer rows.Close()

	var topics []string
	for rows.Next() {
		var topic string
		if err := rows.Scan(&topic); err != nil {
			return nil, errors.NewHistoryFetchError(fmt.Sprintf("scan topic row: %v", err))
		}
		topics = append(topics, topic)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewHistoryFetchError(err.Error())
	}

	return topics, nil
}

func validateRating(m models.MentorCandidate) error {
	if m.Rating < 0 || m.Rating > 5 {
		return errors.NewRatingOutOfRangeError(m.ID, m.Rating)
	}
	return nil
}
