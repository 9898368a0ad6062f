package auth

import (
	"fmt"

	"github.com/phrazzld/todo-api/internal/domain"
)

// Common authentication errors. Missing credentials map to 401, while a
// token that is present but unusable maps to 403.
var (
	// ErrMissingAuthHeader indicates the request carried no Authorization header.
	ErrMissingAuthHeader = fmt.Errorf("%w: authorization header missing", domain.ErrUnauthorized)

	// ErrMissingToken indicates a header was present but no token followed the scheme.
	ErrMissingToken = fmt.Errorf("%w: token missing", domain.ErrUnauthorized)

	// ErrInvalidToken indicates the token format is invalid or the signature doesn't match.
	ErrInvalidToken = fmt.Errorf("%w: invalid authentication token", domain.ErrForbidden)

	// ErrExpiredToken indicates the token has expired.
	ErrExpiredToken = fmt.Errorf("%w: authentication token has expired", domain.ErrForbidden)

	// ErrInvalidBcryptCost is returned when a hasher is configured outside bcrypt's range.
	ErrInvalidBcryptCost = fmt.Errorf("bcrypt cost must be between %d and %d", minCost, maxCost)
)
