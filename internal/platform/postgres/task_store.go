package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/phrazzld/todo-api/internal/store"
)

// PostgresTaskStore implements store.TaskStore using PostgreSQL. Title
// uniqueness per owner is enforced by the tasks_owner_title_key index.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

var _ store.TaskStore = (*PostgresTaskStore)(nil)

// NewPostgresTaskStore creates a new PostgresTaskStore
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// mapWriteError narrows a unique violation to the store's duplicate
// sentinels and wraps anything else in a StoreError for operation.
func mapWriteError(operation string, err error) error {
	mapped := MapError(err)
	if IsUniqueViolation(err) {
		switch {
		case errors.Is(mapped, store.ErrTaskTitleExists):
			return store.ErrTaskTitleExists
		case errors.Is(mapped, store.ErrTaskIDExists):
			return store.ErrTaskIDExists
		}
		return mapped
	}
	return store.NewStoreError("task", operation, "write failed", mapped)
}

// Create implements store.TaskStore.Create
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO tasks (id, title, completed, owner_email, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := s.db.ExecContext(ctx, query,
		task.ID,
		task.Title,
		task.Completed,
		task.Owner,
		task.CreatedAt,
	)
	if err != nil {
		mapped := mapWriteError("create", err)
		if !store.IsDuplicateError(mapped) {
			log.Error("failed to create task",
				slog.String("error", err.Error()),
				slog.Int64("task_id", task.ID))
		}
		return mapped
	}

	return nil
}

// GetByID implements store.TaskStore.GetByID
func (s *PostgresTaskStore) GetByID(ctx context.Context, owner string, id int64) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, title, completed, owner_email, created_at
		FROM tasks
		WHERE id = $1 AND owner_email = $2
	`

	var task domain.Task
	err := s.db.QueryRowContext(ctx, query, id, owner).Scan(
		&task.ID,
		&task.Title,
		&task.Completed,
		&task.Owner,
		&task.CreatedAt,
	)
	if err != nil {
		mapped := MapError(err)
		if store.IsNotFoundError(mapped) {
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return nil, store.NewStoreError("task", "get", "query failed", mapped)
	}

	return &task, nil
}

// ListByOwner implements store.TaskStore.ListByOwner
func (s *PostgresTaskStore) ListByOwner(ctx context.Context, owner string) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, title, completed, owner_email, created_at
		FROM tasks
		WHERE owner_email = $1
		ORDER BY created_at, id
	`

	rows, err := s.db.QueryContext(ctx, query, owner)
	if err != nil {
		log.Error("failed to list tasks", slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", "list", "query failed", MapError(err))
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			log.Warn("failed to close rows", slog.String("error", cerr.Error()))
		}
	}()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		var task domain.Task
		if err := rows.Scan(
			&task.ID,
			&task.Title,
			&task.Completed,
			&task.Owner,
			&task.CreatedAt,
		); err != nil {
			log.Error("failed to scan task row", slog.String("error", err.Error()))
			return nil, store.NewStoreError("task", "list", "scan failed", MapError(err))
		}
		tasks = append(tasks, &task)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating task rows", slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", "list", "row iteration failed", MapError(err))
	}

	return tasks, nil
}

// Update implements store.TaskStore.Update
func (s *PostgresTaskStore) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE tasks
		SET title = $1, completed = $2
		WHERE id = $3 AND owner_email = $4
	`

	result, err := s.db.ExecContext(ctx, query, task.Title, task.Completed, task.ID, task.Owner)
	if err != nil {
		mapped := mapWriteError("update", err)
		if !store.IsDuplicateError(mapped) {
			log.Error("failed to update task",
				slog.String("error", err.Error()),
				slog.Int64("task_id", task.ID))
		}
		return mapped
	}

	return CheckRowsAffected(result, store.ErrTaskNotFound)
}

// Delete implements store.TaskStore.Delete
func (s *PostgresTaskStore) Delete(ctx context.Context, owner string, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		DELETE FROM tasks
		WHERE id = $1 AND owner_email = $2
	`

	result, err := s.db.ExecContext(ctx, query, id, owner)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return store.NewStoreError("task", "delete", "delete failed", MapError(err))
	}

	return CheckRowsAffected(result, store.ErrTaskNotFound)
}
