package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/phrazzld/todo-api/internal/api/shared"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/service"
	"github.com/phrazzld/todo-api/internal/service/auth"
)

// ErrInvalidRequestFormat is returned when a request body is not valid JSON
// or does not match the expected shape.
var ErrInvalidRequestFormat = fmt.Errorf("%w: invalid request format", domain.ErrValidation)

// MapErrorToStatusCode maps internal errors to HTTP status codes by their
// domain category. Anything uncategorized becomes a 500.
func MapErrorToStatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK

	// Registration failures carry their cause, which must not leak a category
	case errors.Is(err, service.ErrRegistrationFailed):
		return http.StatusInternalServerError

	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns the client-facing message for an error.
// Known sentinels get their own message; other errors fall back to a
// generic message for their category so internal details never leak.
func GetSafeErrorMessage(err error) string {
	switch {
	case err == nil:
		return ""

	case errors.Is(err, service.ErrRegistrationFailed):
		return "Error registering user"

	// Request shape
	case errors.Is(err, ErrInvalidRequestFormat):
		return "Invalid request format"

	// Credentials
	case errors.Is(err, domain.ErrCredentialsRequired):
		return "Email and password are required"
	case errors.Is(err, domain.ErrInvalidEmail):
		return "Invalid email format"
	case errors.Is(err, domain.ErrWeakPassword):
		return "Password must be at least 6 characters long and include 1 uppercase letter, 1 number, and 1 special symbol."
	case errors.Is(err, service.ErrUserExists):
		return "User already exists"
	case errors.Is(err, service.ErrInvalidCredentials):
		return "Invalid credentials"

	// Tokens
	case errors.Is(err, auth.ErrMissingAuthHeader):
		return "Authorization header missing"
	case errors.Is(err, auth.ErrMissingToken):
		return "Token missing"
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken):
		return "Invalid or expired token"

	// Tasks
	case errors.Is(err, domain.ErrEmptyTitle):
		return "Task title is required"
	case errors.Is(err, service.ErrDuplicateTask):
		return "Task already exists"
	case errors.Is(err, service.ErrDuplicateTaskTitle):
		return "Task with this title already exists"
	case errors.Is(err, service.ErrTaskNotFound):
		return "Task not found"
	case errors.Is(err, service.ErrTaskNotFoundOrNotOwned):
		return "Task not found or not authorized"

	// Category fallbacks
	case errors.Is(err, domain.ErrValidation):
		return "Invalid request"
	case errors.Is(err, domain.ErrConflict):
		return "Conflict"
	case errors.Is(err, domain.ErrUnauthorized):
		return "Unauthorized"
	case errors.Is(err, domain.ErrForbidden):
		return "Forbidden"
	case errors.Is(err, domain.ErrNotFound):
		return "Not found"

	default:
		return "Internal server error"
	}
}

// HandleAPIError maps err to a status code and safe message and writes the
// error response, logging the full error.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, opts ...shared.ResponseOption) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err, opts...)
}
