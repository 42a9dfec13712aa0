package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these (optionally
// wrapped) so the registration service can translate them into outcomes and
// domain errors.
//
//   - ErrNotFound: record does not exist in the store
//   - ErrConflict: a unique key (username, email) is already taken
//   - ErrExpired: a pending confirmation code outlived its TTL
//   - ErrUnavailable: backing service temporarily unavailable
//
// For bad input use pkg/domain-errors directly.
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrExpired     = errors.New("expired")
	ErrUnavailable = errors.New("unavailable")
)
