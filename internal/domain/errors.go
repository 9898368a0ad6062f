package domain

import "errors"

// Error categories shared by every layer. Specific errors wrap exactly one of
// these with fmt.Errorf("%w: ...") so the API layer can map them to a status
// code without knowing every sentinel.
var (
	// ErrValidation is returned when input fails validation.
	ErrValidation = errors.New("validation failed")

	// ErrConflict is returned when an operation would break a uniqueness rule.
	ErrConflict = errors.New("conflict")

	// ErrNotFound is returned when the requested entity does not exist
	// or is not visible to the caller.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized is returned when credentials are missing or wrong.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden is returned when presented credentials cannot be accepted,
	// e.g. a token with a bad signature or past its expiry.
	ErrForbidden = errors.New("forbidden")
)
