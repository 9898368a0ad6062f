package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/todo-api/internal/api/shared"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/service"
)

// TaskIDParam is the chi URL parameter holding a task id.
const TaskIDParam = "id"

// identityFromRequest extracts the identity placed in the context by the
// authentication middleware.
func identityFromRequest(r *http.Request) (domain.Identity, bool) {
	return shared.GetIdentity(r.Context())
}

// requireIdentity writes a 401 and returns false when the request carries no
// identity. Routes behind the auth middleware never hit this branch.
func requireIdentity(w http.ResponseWriter, r *http.Request) (domain.Identity, bool) {
	identity, ok := identityFromRequest(r)
	if !ok {
		HandleAPIError(w, r, service.ErrInvalidIdentity)
		return domain.Identity{}, false
	}
	return identity, true
}

// parseTaskID reads the task id from the URL path. An id that is not a
// base-10 integer cannot name any task, so callers treat it as not found.
func parseTaskID(r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, TaskIDParam)
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// isAbsent reports whether a raw JSON field was left out of the payload.
func isAbsent(raw json.RawMessage) bool {
	return len(bytes.TrimSpace(raw)) == 0
}

// decodeTitle turns a raw title into a string. Absent, null and non-string
// titles are all rejected as a missing title.
func decodeTitle(raw json.RawMessage) (string, error) {
	if isAbsent(raw) {
		return "", domain.ErrEmptyTitle
	}
	var title *string
	if err := json.Unmarshal(raw, &title); err != nil || title == nil {
		return "", domain.ErrEmptyTitle
	}
	return *title, nil
}

// decodeOptionalTitle is decodeTitle for updates: an absent title yields nil.
// A null or non-string title becomes an empty one so the service rejects it
// only after confirming the task exists.
func decodeOptionalTitle(raw json.RawMessage) *string {
	if isAbsent(raw) {
		return nil
	}
	title, err := decodeTitle(raw)
	if err != nil {
		title = ""
	}
	return &title
}

// coerceCompleted interprets any JSON value as a completion flag using
// truthiness: false, 0, "" and null are false, everything else is true.
// An absent field yields nil.
func coerceCompleted(raw json.RawMessage) (*bool, error) {
	if isAbsent(raw) {
		return nil, nil
	}

	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, ErrInvalidRequestFormat
	}

	var completed bool
	switch val := v.(type) {
	case nil:
		completed = false
	case bool:
		completed = val
	case float64:
		completed = val != 0
	case string:
		completed = val != ""
	default:
		completed = true
	}
	return &completed, nil
}
