package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/phrazzld/todo-api/internal/store"
)

// TaskUpdate carries the optional fields of an update. A nil field is left
// unchanged.
type TaskUpdate struct {
	Title     *string
	Completed *bool
}

// TaskService manages the tasks of an authenticated identity. Every
// operation is scoped to identity.Email; tasks of other owners are
// invisible to it.
type TaskService interface {
	// List returns the owner's tasks in creation order. The slice is never nil.
	List(ctx context.Context, identity domain.Identity) ([]*domain.Task, error)

	// Create adds a task with the trimmed title.
	Create(ctx context.Context, identity domain.Identity, title string) (*domain.Task, error)

	// Update applies the set fields of upd to the owner's task.
	Update(ctx context.Context, identity domain.Identity, taskID int64, upd TaskUpdate) (*domain.Task, error)

	// Delete removes the owner's task.
	Delete(ctx context.Context, identity domain.Identity, taskID int64) error
}

type taskService struct {
	tasks  store.TaskStore
	ids    IDGenerator
	logger *slog.Logger
}

var _ TaskService = (*taskService)(nil)

// NewTaskService creates a TaskService. A nil IDGenerator selects the
// clock-based generator.
func NewTaskService(tasks store.TaskStore, ids IDGenerator, logger *slog.Logger) (TaskService, error) {
	if tasks == nil {
		return nil, errors.New("task service: task store is required")
	}
	if ids == nil {
		ids = NewClockIDGenerator()
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &taskService{
		tasks:  tasks,
		ids:    ids,
		logger: logger.With("component", "task_service"),
	}, nil
}

func (s *taskService) log(ctx context.Context) *slog.Logger {
	return logger.FromContextOrDefault(ctx, s.logger)
}

// List returns the owner's tasks.
func (s *taskService) List(ctx context.Context, identity domain.Identity) ([]*domain.Task, error) {
	if identity.IsZero() {
		return nil, ErrInvalidIdentity
	}

	tasks, err := s.tasks.ListByOwner(ctx, identity.Email)
	if err != nil {
		s.log(ctx).Error("failed to list tasks", "error", err)
		return nil, NewServiceError("task", "list", err)
	}
	if tasks == nil {
		tasks = []*domain.Task{}
	}
	return tasks, nil
}

// Create validates the title, rejects a normalized clash with another of
// the owner's tasks and stores the new task.
func (s *taskService) Create(ctx context.Context, identity domain.Identity, title string) (*domain.Task, error) {
	log := s.log(ctx)

	if identity.IsZero() {
		return nil, ErrInvalidIdentity
	}
	if strings.TrimSpace(title) == "" {
		return nil, domain.ErrEmptyTitle
	}

	existing, err := s.tasks.ListByOwner(ctx, identity.Email)
	if err != nil {
		log.Error("failed to list tasks for uniqueness check", "error", err)
		return nil, NewServiceError("task", "create", err)
	}
	for _, t := range existing {
		if t.HasTitle(title) {
			log.Debug("rejected duplicate task title")
			return nil, ErrDuplicateTask
		}
	}

	task, err := domain.NewTask(s.ids.NextID(), title, identity.Email)
	if err != nil {
		return nil, err
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		if errors.Is(err, store.ErrTaskTitleExists) {
			log.Debug("rejected duplicate task title at store")
			return nil, ErrDuplicateTask
		}
		log.Error("failed to create task", "error", err)
		return nil, NewServiceError("task", "create", err)
	}

	log.Debug("task created", "task_id", task.ID)
	return task, nil
}

// Update changes title and/or completion. A completion-only update never
// runs the title uniqueness check, and renaming a task to its own title is
// allowed.
func (s *taskService) Update(
	ctx context.Context,
	identity domain.Identity,
	taskID int64,
	upd TaskUpdate,
) (*domain.Task, error) {
	log := s.log(ctx).With("task_id", taskID)

	if identity.IsZero() {
		return nil, ErrInvalidIdentity
	}

	task, err := s.tasks.GetByID(ctx, identity.Email, taskID)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			return nil, ErrTaskNotFound
		}
		log.Error("failed to load task for update", "error", err)
		return nil, NewServiceError("task", "update", err)
	}

	if upd.Title != nil {
		if err := task.Rename(*upd.Title); err != nil {
			return nil, err
		}

		others, err := s.tasks.ListByOwner(ctx, identity.Email)
		if err != nil {
			log.Error("failed to list tasks for uniqueness check", "error", err)
			return nil, NewServiceError("task", "update", err)
		}
		for _, other := range others {
			if other.ID != task.ID && other.HasTitle(task.Title) {
				log.Debug("rejected rename to duplicate title")
				return nil, ErrDuplicateTaskTitle
			}
		}
	}

	if upd.Completed != nil {
		task.Completed = *upd.Completed
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		switch {
		case errors.Is(err, store.ErrTaskNotFound):
			return nil, ErrTaskNotFound
		case errors.Is(err, store.ErrTaskTitleExists):
			return nil, ErrDuplicateTaskTitle
		}
		log.Error("failed to update task", "error", err)
		return nil, NewServiceError("task", "update", err)
	}

	log.Debug("task updated")
	return task, nil
}

// Delete removes the task if the identity owns it.
func (s *taskService) Delete(ctx context.Context, identity domain.Identity, taskID int64) error {
	if identity.IsZero() {
		return ErrInvalidIdentity
	}

	if err := s.tasks.Delete(ctx, identity.Email, taskID); err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			return ErrTaskNotFoundOrNotOwned
		}
		s.log(ctx).Error("failed to delete task", "error", err, "task_id", taskID)
		return NewServiceError("task", "delete", err)
	}

	s.log(ctx).Debug("task deleted", "task_id", taskID)
	return nil
}
