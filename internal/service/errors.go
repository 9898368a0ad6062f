package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/todo-api/internal/domain"
)

// Common service errors - sentinel errors used across service implementations.
// Each wraps one of the domain categories so the API layer can map it to a
// status code with errors.Is, and carries its own client-facing message.
var (
	// ErrUserExists indicates registration with an email that is already taken.
	ErrUserExists = fmt.Errorf("%w: user already exists", domain.ErrConflict)

	// ErrInvalidCredentials is returned by Login for both an unknown email and
	// a wrong password, so callers cannot tell which one failed.
	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)

	// ErrRegistrationFailed indicates an unexpected failure while hashing or
	// storing a new user. It carries no category and surfaces as a 500.
	ErrRegistrationFailed = errors.New("error registering user")

	// ErrInvalidIdentity is returned when a task operation is attempted
	// without an authenticated identity.
	ErrInvalidIdentity = fmt.Errorf("%w: identity is required", domain.ErrUnauthorized)

	// ErrDuplicateTask indicates Create was called with a title the owner already uses.
	ErrDuplicateTask = fmt.Errorf("%w: task already exists", domain.ErrConflict)

	// ErrDuplicateTaskTitle indicates Update tried to rename a task to a title
	// used by another of the owner's tasks.
	ErrDuplicateTaskTitle = fmt.Errorf("%w: task with this title already exists", domain.ErrConflict)

	// ErrTaskNotFound indicates Update found no task with the id for this owner.
	ErrTaskNotFound = fmt.Errorf("%w: task not found", domain.ErrNotFound)

	// ErrTaskNotFoundOrNotOwned indicates Delete matched nothing for this owner.
	ErrTaskNotFoundOrNotOwned = fmt.Errorf("%w: task not found or not authorized", domain.ErrNotFound)
)

// ServiceError wraps an unexpected failure from a dependency with the
// service and operation it occurred in.
type ServiceError struct {
	Service   string
	Operation string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s service %s failed: %v", e.Service, e.Operation, e.Err)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(service, operation string, err error) *ServiceError {
	return &ServiceError{
		Service:   service,
		Operation: operation,
		Err:       err,
	}
}
