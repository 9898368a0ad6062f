package mocks

import (
	"context"

	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// TaskStore is a mock of store.TaskStore for use with testify/mock.
type TaskStore struct {
	mock.Mock
}

var _ store.TaskStore = (*TaskStore)(nil)

// Create is a mock implementation of store.TaskStore.Create
func (m *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

// GetByID is a mock implementation of store.TaskStore.GetByID
func (m *TaskStore) GetByID(ctx context.Context, owner string, id int64) (*domain.Task, error) {
	args := m.Called(ctx, owner, id)
	if task, ok := args.Get(0).(*domain.Task); ok {
		return task, args.Error(1)
	}
	return nil, args.Error(1)
}

// ListByOwner is a mock implementation of store.TaskStore.ListByOwner
func (m *TaskStore) ListByOwner(ctx context.Context, owner string) ([]*domain.Task, error) {
	args := m.Called(ctx, owner)
	if tasks, ok := args.Get(0).([]*domain.Task); ok {
		return tasks, args.Error(1)
	}
	return nil, args.Error(1)
}

// Update is a mock implementation of store.TaskStore.Update
func (m *TaskStore) Update(ctx context.Context, task *domain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

// Delete is a mock implementation of store.TaskStore.Delete
func (m *TaskStore) Delete(ctx context.Context, owner string, id int64) error {
	args := m.Called(ctx, owner, id)
	return args.Error(0)
}
