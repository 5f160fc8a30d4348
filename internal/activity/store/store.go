package store

import (
	"context"

	"mergington/internal/activity/models"
)

// RosterStore is the persistence boundary for the activity registry.
// Implementations report factual failures through pkg/platform/sentinel
// errors so the service layer can translate them uniformly:
//
//   - sentinel.ErrNotFound          unknown activity name
//   - sentinel.ErrAlreadyRegistered duplicate signup
//   - sentinel.ErrNotRegistered     removal of an absent email
//
// Stores never validate emails; that happens in the service.
type RosterStore interface {
	// List returns a snapshot of every activity keyed by name. Mutating the
	// result must not affect the store.
	List(ctx context.Context) (map[string]models.Activity, error)

	// AddParticipant appends email to the activity's roster.
	AddParticipant(ctx context.Context, activity, email string) error

	// RemoveParticipant removes email from the activity's roster, keeping
	// the order of the remaining participants.
	RemoveParticipant(ctx context.Context, activity, email string) error
}
