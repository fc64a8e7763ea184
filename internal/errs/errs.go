// Package errs contains sentinel errors shared by the auth core, services and
// repositories. Handlers map them to HTTP responses with errors.Is.
package errs

import "errors"

var (
	// ErrInvalidInput indicates a request failed validation (e.g. email without '@').
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict indicates a unique key is already taken (email already registered).
	ErrConflict = errors.New("conflict")

	// ErrBadCredentials indicates a login email/password mismatch.
	// Its message never says which of the two was wrong.
	ErrBadCredentials = errors.New("incorrect email or password")

	// ErrUnauthenticated indicates a missing, malformed or expired bearer token.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrForbidden indicates a valid identity acting on a resource it does not own.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound indicates the requested resource or identity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrMalformedToken indicates a token that cannot be parsed or whose signature does not verify.
	ErrMalformedToken = errors.New("malformed token")

	// ErrExpiredToken indicates an authentic token whose exp is not after the current time.
	ErrExpiredToken = errors.New("token expired")

	// ErrMisconfigured indicates invalid process configuration. Fatal at startup.
	ErrMisconfigured = errors.New("auth config invalid")
)
