// internal/models/criteria.go
package models

// Urgency indicates how soon the student wants a session. Informational only,
// not weighted into the score.
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// SessionMode is the student's preferred session medium. Informational only.
type SessionMode string

const (
	ModeChat  SessionMode = "chat"
	ModeCall  SessionMode = "call"
	ModeVideo SessionMode = "video"
)

// StudentLevel is the student's self-assessed skill level. Informational only.
type StudentLevel string

const (
	LevelBeginner     StudentLevel = "beginner"
	LevelIntermediate StudentLevel = "intermediate"
	LevelAdvanced     StudentLevel = "advanced"
)

// TimeSlot is a preferred time range. Accepted on the criteria but not
// currently scored anywhere in the pipeline.
type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// MatchingCriteria is one scoring request.
type MatchingCriteria struct {
	StudentID          string       `json:"studentId"`
	StudentNeeds       []string     `json:"studentNeeds"`
	Urgency            Urgency      `json:"urgency"`
	PreferredMode      SessionMode  `json:"preferredMode"`
	StudentLevel       StudentLevel `json:"studentLevel"`
	PreferredDays      []string     `json:"preferredDays,omitempty"`
	PreferredTimeSlots []TimeSlot   `json:"preferredTimeSlots,omitempty"`
}
