package sentinel

import "errors"

// Sentinel errors for store-level facts. Roster stores return these
// (optionally wrapped) so the service layer can translate them into domain
// errors without knowing which backend produced them.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: activity does not exist in the store
// - ErrAlreadyRegistered: email is already on the activity's roster
// - ErrNotRegistered: email is not on the activity's roster
// - ErrUnavailable: backend temporarily unreachable
//
// For validation errors (bad input, missing fields), use pkg/domain-errors directly.
var (
	ErrNotFound          = errors.New("not found")
	ErrAlreadyRegistered = errors.New("already registered")
	ErrNotRegistered     = errors.New("not registered")
	ErrUnavailable       = errors.New("unavailable")
)
