package domain

import (
	"fmt"
	"strings"
	"time"
)

// ErrEmptyTitle is returned when a task title is blank after trimming.
var ErrEmptyTitle = fmt.Errorf("%w: task title is required", ErrValidation)

// ErrEmptyOwner is returned when a task has no owner.
var ErrEmptyOwner = fmt.Errorf("%w: task owner is required", ErrValidation)

// Task is a single to-do item owned by one user.
type Task struct {
	ID        int64
	Title     string
	Completed bool
	Owner     string
	CreatedAt time.Time
}

// NewTask creates an incomplete task with a trimmed title.
func NewTask(id int64, title, owner string) (*Task, error) {
	task := &Task{
		ID:        id,
		Title:     strings.TrimSpace(title),
		Owner:     owner,
		CreatedAt: time.Now().UTC(),
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}
	return task, nil
}

// Validate checks that the task can be stored.
func (t *Task) Validate() error {
	if t.Title == "" {
		return ErrEmptyTitle
	}
	if t.Owner == "" {
		return ErrEmptyOwner
	}
	return nil
}

// Rename replaces the title with its trimmed form.
func (t *Task) Rename(title string) error {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return ErrEmptyTitle
	}
	t.Title = trimmed
	return nil
}

// HasTitle reports whether the task's title equals title once both are
// trimmed and lower-cased.
func (t *Task) HasTitle(title string) bool {
	return NormalizeTitle(t.Title) == NormalizeTitle(title)
}

// NormalizeTitle returns the key used for per-owner title uniqueness.
func NormalizeTitle(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}
