// internal/models/mentor.go
package models

// Reachability is a mentor's current presence state.
type Reachability string

const (
	ReachabilityAvailable Reachability = "available"
	ReachabilityInSession Reachability = "in_session"
	ReachabilityOffline   Reachability = "offline"
)

// MentorCandidate is one scoring subject. Identity fields are opaque to
// scoring; rating must be within [0,5] (enforced at the ingestion boundary).
type MentorCandidate struct {
	ID            string       `json:"id"`
	DisplayName   string       `json:"displayName"`
	AvatarRef     string       `json:"avatarRef,omitempty"`
	DomainTags    []string     `json:"domainTags"`
	SkillTags     []string     `json:"skillTags"`
	Rating        float64      `json:"rating"`
	ReviewCount   int          `json:"reviewCount"`
	SessionCount  int          `json:"sessionCount"`
	Reachability  Reachability `json:"reachability"`
	AvailableDays []string     `json:"availableDays,omitempty"`
	IsVerified    bool         `json:"isVerified"`
}
