package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/store"
)

// TaskStore keeps tasks in memory in insertion order. Title uniqueness is
// enforced under the write lock, so concurrent creates of the same title
// cannot both succeed.
type TaskStore struct {
	mu    sync.RWMutex
	tasks []domain.Task
}

var _ store.TaskStore = (*TaskStore)(nil)

// NewTaskStore creates an empty TaskStore.
func NewTaskStore() *TaskStore {
	return &TaskStore{}
}

// Create implements store.TaskStore.
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tasks {
		if s.tasks[i].ID == task.ID {
			return store.ErrTaskIDExists
		}
		if s.tasks[i].Owner == task.Owner && s.tasks[i].HasTitle(task.Title) {
			return store.ErrTaskTitleExists
		}
	}

	s.tasks = append(s.tasks, *task)
	return nil
}

// GetByID implements store.TaskStore.
func (s *TaskStore) GetByID(ctx context.Context, owner string, id int64) (*domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(owner, id); i >= 0 {
		task := s.tasks[i]
		return &task, nil
	}
	return nil, store.ErrTaskNotFound
}

// ListByOwner implements store.TaskStore.
func (s *TaskStore) ListByOwner(ctx context.Context, owner string) ([]*domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Task, 0)
	for i := range s.tasks {
		if s.tasks[i].Owner == owner {
			task := s.tasks[i]
			result = append(result, &task)
		}
	}
	return result, nil
}

// Update implements store.TaskStore.
func (s *TaskStore) Update(ctx context.Context, task *domain.Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(task.Owner, task.ID)
	if idx < 0 {
		return store.ErrTaskNotFound
	}

	for i := range s.tasks {
		if i != idx && s.tasks[i].Owner == task.Owner && s.tasks[i].HasTitle(task.Title) {
			return store.ErrTaskTitleExists
		}
	}

	s.tasks[idx].Title = task.Title
	s.tasks[idx].Completed = task.Completed
	return nil
}

// Delete implements store.TaskStore.
func (s *TaskStore) Delete(ctx context.Context, owner string, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(owner, id)
	if idx < 0 {
		return store.ErrTaskNotFound
	}
	s.tasks = append(s.tasks[:idx], s.tasks[idx+1:]...)
	return nil
}

// indexOf must be called with mu held.
func (s *TaskStore) indexOf(owner string, id int64) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id && s.tasks[i].Owner == owner {
			return i
		}
	}
	return -1
}
