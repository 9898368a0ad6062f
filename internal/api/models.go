package api

import (
	"encoding/json"

	"github.com/phrazzld/todo-api/internal/domain"
)

// RegisterRequest defines the payload for the registration endpoint.
// Format rules are enforced by the domain, so only presence is checked here.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest defines the payload for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the access token issued on login.
type LoginResponse struct {
	Token string `json:"token"`
}

// MessageResponse is a bare confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

// MeResponse describes the authenticated user.
type MeResponse struct {
	Email string `json:"email"`
}

// CreateTaskRequest defines the payload for creating a task.
// Title is kept raw so a missing, null or non-string title can be told apart.
type CreateTaskRequest struct {
	Title json.RawMessage `json:"title"`
}

// UpdateTaskRequest defines the payload for updating a task.
// Absent fields are left unchanged.
type UpdateTaskRequest struct {
	Title     json.RawMessage `json:"title"`
	Completed json.RawMessage `json:"completed"`
}

// TaskResponse is the wire form of a task.
type TaskResponse struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	User      string `json:"user"`
}

func newTaskResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:        task.ID,
		Title:     task.Title,
		Completed: task.Completed,
		User:      task.Owner,
	}
}

func newTaskListResponse(tasks []*domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, newTaskResponse(t))
	}
	return out
}
