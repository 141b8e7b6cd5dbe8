// internal/services/errors.go
package services

import "errors"

// Failure taxonomy surfaced to handlers. Failures are terminal for the call
// and propagated verbatim; no operation in this layer retries.
var (
	// ErrNotFound: the referenced application number does not exist.
	ErrNotFound = errors.New("application not found")

	// ErrUnauthorized: the caller lacks the required role or is not the
	// record owner.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidRole: a role value outside the closed admin/user/guest set.
	ErrInvalidRole = errors.New("invalid role")
)
