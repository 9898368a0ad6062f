package store

import (
	"context"

	"github.com/phrazzld/todo-api/internal/domain"
)

// TaskStore defines the interface for task persistence.
// Every lookup is scoped by owner so a task is invisible to other users.
type TaskStore interface {
	// Create saves a new task.
	// Returns ErrTaskTitleExists if the owner already has a task with the
	// same normalized title, and ErrTaskIDExists if the ID is taken.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves the owner's task with the given ID.
	// Returns ErrTaskNotFound if there is none.
	GetByID(ctx context.Context, owner string, id int64) (*domain.Task, error)

	// ListByOwner returns all tasks of owner in creation order.
	// Returns an empty, non-nil slice when the owner has no tasks.
	ListByOwner(ctx context.Context, owner string) ([]*domain.Task, error)

	// Update replaces title and completion of the owner's task with task.ID.
	// Returns ErrTaskNotFound if there is none and ErrTaskTitleExists if the
	// new title clashes with another of the owner's tasks.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes the owner's task with the given ID.
	// Returns ErrTaskNotFound if nothing was removed.
	Delete(ctx context.Context, owner string, id int64) error
}
