// internal/cache/redis.go
package cache

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"sort"
	"time"

	"mentorlink-engine/internal/common/errors"
	"mentorlink-engine/internal/common/logger"
	"mentorlink-engine/internal/models"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "reco:"

// redisEntry is the persisted snapshot of one (student, mentor) score. Expiry
// rides on the key's native TTL, so no expires_at field is stored.
type redisEntry struct {
	MentorID          string  `json:"mentorId"`
	TotalScore        float64 `json:"totalScore"`
	SkillScore        float64 `json:"skillScore"`
	AvailabilityScore float64 `json:"availabilityScore"`
	RatingScore       float64 `json:"ratingScore"`
	SuccessScore      float64 `json:"successScore"`
}

// RedisStore persists score snapshots as one key per (student, mentor) pair.
type RedisStore struct {
	client *redis.Client
	logger logger.Logger
}

func NewRedisStore(client *redis.Client, log logger.Logger) *RedisStore {
	return &RedisStore{
		client: client,
		logger: log.WithFields(map[string]interface{}{"cacheBackend": "redis"}),
	}
}

// encodeID makes an opaque ID safe as a key segment. Raw IDs may contain the
// ':' delimiter or SCAN glob metacharacters, which would let one student's
// lookup pattern match another student's keys.
func encodeID(id string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(id))
}

func studentKeyPattern(studentID string) string {
	return redisKeyPrefix + encodeID(studentID) + ":*"
}

func pairKey(studentID, mentorID string) string {
	return redisKeyPrefix + encodeID(studentID) + ":" + encodeID(mentorID)
}

func (s *RedisStore) Lookup(ctx context.Context, studentID string) ([]models.MatchScore, error) {
	var keys []string
	iter := s.client.Scan(ctx, 0, studentKeyPattern(studentID), 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, errors.NewCacheReadError("cache scan: " + err.Error())
	}
	if len(keys) == 0 {
		return nil, nil
	}

	vals, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, errors.NewCacheReadError("cache mget: " + err.Error())
	}

	var scores []models.MatchScore
	for _, val := range vals {
		raw, ok := val.(string)
		if !ok {
			// Key expired between SCAN and MGET; treat as absent.
			continue
		}
		var entry redisEntry
		if err := json.Unmarshal([]byte(raw), &entry); err != nil {
			return nil, errors.NewCacheReadError("cache entry decode: " + err.Error())
		}
		scores = append(scores, entryToScore(entry.MentorID,
			entry.TotalScore, entry.SkillScore, entry.AvailabilityScore, entry.RatingScore, entry.SuccessScore))
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].TotalScore > scores[j].TotalScore
	})

	return scores, nil
}

func (s *RedisStore) Upsert(ctx context.Context, studentID string, scores []models.MatchScore, ttl time.Duration) error {
	for _, sc := range scores {
		entry := redisEntry{
			MentorID:          sc.MentorID,
			TotalScore:        sc.TotalScore,
			SkillScore:        sc.Breakdown.SkillMatch,
			AvailabilityScore: sc.Breakdown.Availability,
			RatingScore:       sc.Breakdown.Rating,
			SuccessScore:      sc.Breakdown.PastSuccess,
		}
		data, err := json.Marshal(entry)
		if err != nil {
			return errors.NewCacheWriteError("cache entry encode: " + err.Error())
		}
		if err := s.client.Set(ctx, pairKey(studentID, sc.MentorID), data, ttl).Err(); err != nil {
			return errors.NewCacheWriteError("cache set mentor " + sc.MentorID + ": " + err.Error())
		}
	}
	return nil
}

// SweepExpired is a no-op for Redis: keys expire natively via TTL.
func (s *RedisStore) SweepExpired(_ context.Context) (int64, error) {
	return 0, nil
}
