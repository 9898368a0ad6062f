package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/todo-api/internal/api/shared"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/platform/memory"
	"github.com/phrazzld/todo-api/internal/service"
	"github.com/phrazzld/todo-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testUserHeader = "X-Test-User"
	validPassword  = "Passw0rd!"
)

// withTestIdentity stands in for the auth middleware: the caller names the
// identity in a header.
func withTestIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if email := r.Header.Get(testUserHeader); email != "" {
			r = r.WithContext(shared.WithIdentity(r.Context(), domain.Identity{Email: email}))
		}
		next.ServeHTTP(w, r)
	})
}

type testAPI struct {
	router http.Handler
	tokens auth.JWTService
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	hasher, err := auth.NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)
	tokens := auth.NewTestJWTService("handler-secret", time.Hour, time.Now)

	authSvc, err := service.NewAuthService(memory.NewUserStore(), hasher, hasher, tokens, quiet)
	require.NoError(t, err)
	taskSvc, err := service.NewTaskService(memory.NewTaskStore(), nil, quiet)
	require.NoError(t, err)

	ah := NewAuthHandler(authSvc)
	th := NewTaskHandler(taskSvc)

	r := chi.NewRouter()
	r.Post("/api/register", ah.Register)
	r.Post("/api/login", ah.Login)
	r.Group(func(r chi.Router) {
		r.Use(withTestIdentity)
		r.Get("/api/me", ah.Me)
		r.Get("/api/tasks", th.List)
		r.Post("/api/tasks", th.Create)
		r.Put("/api/tasks/{id}", th.Update)
		r.Delete("/api/tasks/{id}", th.Delete)
	})

	return &testAPI{router: r, tokens: tokens}
}

func (a *testAPI) do(t *testing.T, method, path, user, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set(testUserHeader, user)
	}
	rr := httptest.NewRecorder()
	a.router.ServeHTTP(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body shared.ErrorResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	return body.Message
}

func decodeTask(t *testing.T, rr *httptest.ResponseRecorder) TaskResponse {
	t.Helper()
	var task TaskResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&task))
	return task
}

func TestAuthHandler_Register(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		body        string
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "valid registration",
			body:        `{"email":"a@x.com","password":"Passw0rd!"}`,
			wantStatus:  http.StatusCreated,
			wantMessage: "Registered successfully",
		},
		{
			name:        "missing email",
			body:        `{"password":"Passw0rd!"}`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Email and password are required",
		},
		{
			name:        "empty body",
			body:        "",
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Email and password are required",
		},
		{
			name:        "invalid email",
			body:        `{"email":"not-an-email","password":"Passw0rd!"}`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid email format",
		},
		{
			name:       "weak password",
			body:       `{"email":"a@x.com","password":"password"}`,
			wantStatus: http.StatusBadRequest,
			wantMessage: "Password must be at least 6 characters long and include 1 uppercase letter, " +
				"1 number, and 1 special symbol.",
		},
		{
			name:        "malformed json",
			body:        `{"email":`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid request format",
		},
		{
			name:        "non-string email",
			body:        `{"email":12,"password":"Passw0rd!"}`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid request format",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			api := newTestAPI(t)

			rr := api.do(t, http.MethodPost, "/api/register", "", tc.body)

			assert.Equal(t, tc.wantStatus, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			var body map[string]string
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
			assert.Equal(t, tc.wantMessage, body["message"])
		})
	}
}

func TestAuthHandler_RegisterDuplicate(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)

	body := `{"email":"a@x.com","password":"Passw0rd!"}`
	require.Equal(t, http.StatusCreated, api.do(t, http.MethodPost, "/api/register", "", body).Code)

	rr := api.do(t, http.MethodPost, "/api/register", "", body)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, "User already exists", decodeError(t, rr))
}

func TestAuthHandler_Login(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)

	require.Equal(t, http.StatusCreated,
		api.do(t, http.MethodPost, "/api/register", "", `{"email":"a@x.com","password":"Passw0rd!"}`).Code)

	t.Run("valid credentials", func(t *testing.T) {
		rr := api.do(t, http.MethodPost, "/api/login", "", `{"email":"a@x.com","password":"Passw0rd!"}`)
		require.Equal(t, http.StatusOK, rr.Code)

		var resp LoginResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		require.NotEmpty(t, resp.Token)

		claims, err := api.tokens.ValidateToken(context.Background(), resp.Token)
		require.NoError(t, err)
		assert.Equal(t, "a@x.com", claims.Email)
	})

	t.Run("wrong password", func(t *testing.T) {
		rr := api.do(t, http.MethodPost, "/api/login", "", `{"email":"a@x.com","password":"Wrong0rd!"}`)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, "Invalid credentials", decodeError(t, rr))
	})

	t.Run("unknown email", func(t *testing.T) {
		rr := api.do(t, http.MethodPost, "/api/login", "", `{"email":"b@x.com","password":"Passw0rd!"}`)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, "Invalid credentials", decodeError(t, rr))
	})

	t.Run("missing password", func(t *testing.T) {
		rr := api.do(t, http.MethodPost, "/api/login", "", `{"email":"a@x.com"}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Email and password are required", decodeError(t, rr))
	})
}

func TestAuthHandler_Me(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)

	rr := api.do(t, http.MethodGet, "/api/me", "a@x.com", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"email":"a@x.com"}`, rr.Body.String())

	rr = api.do(t, http.MethodGet, "/api/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestTaskHandler_CRUD(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	const user = "a@x.com"

	rr := api.do(t, http.MethodGet, "/api/tasks", user, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())

	rr = api.do(t, http.MethodPost, "/api/tasks", user, `{"title":"  Buy milk  "}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	created := decodeTask(t, rr)
	assert.Equal(t, "Buy milk", created.Title)
	assert.False(t, created.Completed)
	assert.Equal(t, user, created.User)
	taskPath := "/api/tasks/" + strconv.FormatInt(created.ID, 10)

	rr = api.do(t, http.MethodPut, taskPath, user, `{"completed":true}`)
	require.Equal(t, http.StatusOK, rr.Code)
	updated := decodeTask(t, rr)
	assert.True(t, updated.Completed)
	assert.Equal(t, "Buy milk", updated.Title)

	rr = api.do(t, http.MethodPut, taskPath, user, `{"title":" Buy oat milk "}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Buy oat milk", decodeTask(t, rr).Title)

	rr = api.do(t, http.MethodGet, "/api/tasks", user, "")
	require.Equal(t, http.StatusOK, rr.Code)
	var list []TaskResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&list))
	require.Len(t, list, 1)
	assert.Equal(t, TaskResponse{ID: created.ID, Title: "Buy oat milk", Completed: true, User: user}, list[0])

	rr = api.do(t, http.MethodDelete, taskPath, user, "")
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Body.String())

	rr = api.do(t, http.MethodDelete, taskPath, user, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Task not found or not authorized", decodeError(t, rr))
}

func TestTaskHandler_CreateErrors(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	const user = "a@x.com"

	require.Equal(t, http.StatusCreated, api.do(t, http.MethodPost, "/api/tasks", user, `{"title":"Buy milk"}`).Code)

	tests := []struct {
		name        string
		body        string
		wantStatus  int
		wantMessage string
	}{
		{"duplicate ignores case and spaces", `{"title":"  BUY MILK "}`, http.StatusConflict, "Task already exists"},
		{"blank title", `{"title":"   "}`, http.StatusBadRequest, "Task title is required"},
		{"missing title", `{}`, http.StatusBadRequest, "Task title is required"},
		{"null title", `{"title":null}`, http.StatusBadRequest, "Task title is required"},
		{"numeric title", `{"title":5}`, http.StatusBadRequest, "Task title is required"},
		{"malformed json", `{"title":`, http.StatusBadRequest, "Invalid request format"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := api.do(t, http.MethodPost, "/api/tasks", user, tc.body)
			assert.Equal(t, tc.wantStatus, rr.Code)
			assert.Equal(t, tc.wantMessage, decodeError(t, rr))
		})
	}
}

func TestTaskHandler_UpdateErrors(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)
	const user = "a@x.com"

	first := decodeTask(t, api.do(t, http.MethodPost, "/api/tasks", user, `{"title":"One"}`))
	second := decodeTask(t, api.do(t, http.MethodPost, "/api/tasks", user, `{"title":"Two"}`))
	secondPath := "/api/tasks/" + strconv.FormatInt(second.ID, 10)
	firstPath := "/api/tasks/" + strconv.FormatInt(first.ID, 10)

	tests := []struct {
		name        string
		user        string
		path        string
		body        string
		wantStatus  int
		wantMessage string
	}{
		{"rename to another task's title", user, secondPath, `{"title":" one "}`, http.StatusConflict,
			"Task with this title already exists"},
		{"blank title", user, secondPath, `{"title":"  "}`, http.StatusBadRequest, "Task title is required"},
		{"null title", user, secondPath, `{"title":null}`, http.StatusBadRequest, "Task title is required"},
		{"unknown id", user, "/api/tasks/12345", `{"completed":true}`, http.StatusNotFound, "Task not found"},
		{"unknown id checked before title", user, "/api/tasks/12345", `{"title":""}`, http.StatusNotFound,
			"Task not found"},
		{"non-numeric id", user, "/api/tasks/abc", `{"completed":true}`, http.StatusNotFound, "Task not found"},
		{"other owner's task", "b@x.com", firstPath, `{"completed":true}`, http.StatusNotFound, "Task not found"},
		{"malformed json", user, firstPath, `{"completed":`, http.StatusBadRequest, "Invalid request format"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := api.do(t, http.MethodPut, tc.path, tc.user, tc.body)
			assert.Equal(t, tc.wantStatus, rr.Code)
			assert.Equal(t, tc.wantMessage, decodeError(t, rr))
		})
	}

	t.Run("rename to own title with different case", func(t *testing.T) {
		rr := api.do(t, http.MethodPut, firstPath, user, `{"title":"ONE"}`)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "ONE", decodeTask(t, rr).Title)
	})

	t.Run("completed is coerced", func(t *testing.T) {
		rr := api.do(t, http.MethodPut, secondPath, user, `{"completed":"yes"}`)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, decodeTask(t, rr).Completed)

		rr = api.do(t, http.MethodPut, secondPath, user, `{"completed":0}`)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.False(t, decodeTask(t, rr).Completed)
	})
}

func TestTaskHandler_OwnerIsolation(t *testing.T) {
	t.Parallel()
	api := newTestAPI(t)

	require.Equal(t, http.StatusCreated,
		api.do(t, http.MethodPost, "/api/tasks", "a@x.com", `{"title":"Shared"}`).Code)
	// Uniqueness is per owner.
	require.Equal(t, http.StatusCreated,
		api.do(t, http.MethodPost, "/api/tasks", "b@x.com", `{"title":"Shared"}`).Code)

	rr := api.do(t, http.MethodGet, "/api/tasks", "b@x.com", "")
	var list []TaskResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&list))
	require.Len(t, list, 1)
	assert.Equal(t, "b@x.com", list[0].User)
}
