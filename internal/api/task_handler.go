package api

import (
	"net/http"

	"github.com/phrazzld/todo-api/internal/api/shared"
	"github.com/phrazzld/todo-api/internal/service"
)

// TaskHandler handles the task endpoints. Every route expects an identity
// in the request context.
type TaskHandler struct {
	taskService service.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// List handles GET /api/tasks.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	tasks, err := h.taskService.List(r.Context(), identity)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newTaskListResponse(tasks))
}

// Create handles POST /api/tasks.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		HandleAPIError(w, r, ErrInvalidRequestFormat)
		return
	}

	title, err := decodeTitle(req.Title)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	task, err := h.taskService.Create(r.Context(), identity, title)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, newTaskResponse(task))
}

// Update handles PUT /api/tasks/{id}.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	taskID, ok := parseTaskID(r)
	if !ok {
		HandleAPIError(w, r, service.ErrTaskNotFound)
		return
	}

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		HandleAPIError(w, r, ErrInvalidRequestFormat)
		return
	}

	title := decodeOptionalTitle(req.Title)
	completed, err := coerceCompleted(req.Completed)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	task, err := h.taskService.Update(r.Context(), identity, taskID, service.TaskUpdate{
		Title:     title,
		Completed: completed,
	})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newTaskResponse(task))
}

// Delete handles DELETE /api/tasks/{id}.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	taskID, ok := parseTaskID(r)
	if !ok {
		HandleAPIError(w, r, service.ErrTaskNotFoundOrNotOwned)
		return
	}

	if err := h.taskService.Delete(r.Context(), identity, taskID); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
