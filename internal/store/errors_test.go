package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "nil error", err: nil, expected: false},
		{name: "generic error", err: errors.New("some error"), expected: false},
		{name: "ErrNotFound", err: ErrNotFound, expected: true},
		{name: "ErrUserNotFound", err: ErrUserNotFound, expected: true},
		{name: "wrapped ErrTaskNotFound", err: fmt.Errorf("lookup: %w", ErrTaskNotFound), expected: true},
		{name: "duplicate is not not-found", err: ErrEmailExists, expected: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, IsNotFoundError(tc.err))
		})
	}
}

func TestIsDuplicateError(t *testing.T) {
	assert.True(t, IsDuplicateError(ErrEmailExists))
	assert.True(t, IsDuplicateError(ErrTaskTitleExists))
	assert.True(t, IsDuplicateError(fmt.Errorf("insert: %w", ErrTaskIDExists)))
	assert.False(t, IsDuplicateError(ErrTaskNotFound))
	assert.False(t, IsDuplicateError(nil))
}

func TestStoreErrorsWrapDomainCategories(t *testing.T) {
	assert.ErrorIs(t, ErrTaskNotFound, domain.ErrNotFound)
	assert.ErrorIs(t, ErrUserNotFound, domain.ErrNotFound)
	assert.ErrorIs(t, ErrEmailExists, domain.ErrConflict)
	assert.ErrorIs(t, ErrTaskTitleExists, domain.ErrConflict)
	assert.ErrorIs(t, ErrInvalidEntity, domain.ErrValidation)
}

func TestStoreError(t *testing.T) {
	inner := errors.New("connection reset")
	err := NewStoreError("task", "update", "write failed", inner)

	assert.Equal(t, "update operation on task failed: write failed: connection reset", err.Error())
	assert.ErrorIs(t, err, inner)

	bare := NewStoreError("user", "create", "rejected", nil)
	assert.Equal(t, "create operation on user failed: rejected", bare.Error())
}
