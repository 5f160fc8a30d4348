package models

import "slices"

// Activity is a single extracurricular offering. The activity name is the
// registry key rather than a field, matching the wire format where
// GET /activities returns an object keyed by name.
//
// Invariants:
//   - Participants contains no duplicate email
//   - Participants preserves signup order
//   - MaxParticipants is advisory only; nothing enforces it against the
//     roster length
type Activity struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// HasParticipant reports whether email is already on the roster.
func (a Activity) HasParticipant(email string) bool {
	return slices.Contains(a.Participants, email)
}

// Clone returns a copy whose participant slice does not alias the original.
func (a Activity) Clone() Activity {
	out := a
	out.Participants = slices.Clone(a.Participants)
	if out.Participants == nil {
		out.Participants = []string{}
	}
	return out
}
