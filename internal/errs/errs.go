// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a unique constraint violation (username taken).
	ErrConflict = errors.New("already exists")

	// ErrInvalidCredentials covers both unknown username and wrong password,
	// so a caller cannot tell which check failed.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrUnauthenticated indicates a missing, expired, or unknown session.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrForbidden indicates a valid session acting on another user's entry.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidRange indicates a malformed date bound on a range query.
	ErrInvalidRange = errors.New("invalid date range")
)
