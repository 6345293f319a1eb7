// Package types contains common types used across the application
package types

// Activity represents a single extracurricular activity. The name is the
// registry key and is deliberately excluded from the serialized body, which
// mirrors the activities map shape returned by the HTTP API.
type Activity struct {
	Name            string   `json:"-"`
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// Clone returns a deep copy with its own participant roster. The copy always
// carries a non-nil roster so it serializes as an empty list rather than null.
func (a Activity) Clone() Activity {
	out := a
	out.Participants = make([]string, len(a.Participants))
	copy(out.Participants, a.Participants)
	return out
}
