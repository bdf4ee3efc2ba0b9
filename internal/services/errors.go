package services

import "errors"

// Service-level error taxonomy. Handlers map these to HTTP status codes
// with errors.Is; anything not listed here is treated as an internal error
// and never shown to a client verbatim.
var (
	// ErrValidation covers malformed or missing input fields.
	ErrValidation = errors.New("validation failed")
	// ErrInvalidID rejects a session id whose shape is wrong. The check
	// runs before any store lookup.
	ErrInvalidID = errors.New("invalid session ID")
	// ErrInvalidCredentials covers every authentication failure: unknown
	// email, wrong password, missing, malformed or expired token. The
	// message is deliberately generic.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailExists reports a duplicate registration.
	ErrEmailExists = errors.New("email already exists")
	// ErrNotFound reports that no owner-scoped session matched. A session
	// owned by another user reports this same error.
	ErrNotFound = errors.New("session not found")
)
