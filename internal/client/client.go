package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is the API root used when none is configured.
const DefaultBaseURL = "http://localhost:3000/api"

// Task is the wire form of a task.
type Task struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	User      string `json:"user"`
}

// TaskUpdate holds the fields to change. Nil fields are not sent.
type TaskUpdate struct {
	Title     *string `json:"title,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

// Client talks to the to-do API on behalf of one user.
type Client struct {
	baseURL    string
	httpClient *http.Client
	sessions   SessionStore
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a Client for the API rooted at baseURL (e.g.
// http://localhost:3000/api).
func New(baseURL string, sessions SessionStore, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		sessions:   sessions,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session returns the stored session, or ErrNotLoggedIn.
func (c *Client) Session() (*Session, error) {
	session, err := c.sessions.Load()
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrNotLoggedIn
	}
	return session, nil
}

// Register creates an account and returns the server's confirmation.
func (c *Client) Register(ctx context.Context, email, password string) (string, error) {
	var resp struct {
		Message string `json:"message"`
	}
	err := c.do(ctx, request{
		action: "Registration",
		method: http.MethodPost,
		path:   "/register",
		body:   map[string]string{"email": email, "password": password},
		public: true,
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Login exchanges credentials for a token and stores it with email as the
// session.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	var resp struct {
		Token string `json:"token"`
	}
	err := c.do(ctx, request{
		action: "Login",
		method: http.MethodPost,
		path:   "/login",
		body:   map[string]string{"email": email, "password": password},
		public: true,
	}, &resp)
	if err != nil {
		return nil, err
	}

	session := &Session{Token: resp.Token, User: email}
	if err := c.sessions.Save(session); err != nil {
		return nil, err
	}
	return session, nil
}

// Logout forgets the stored session. The token itself stays valid until it expires.
func (c *Client) Logout() error {
	return c.sessions.Clear()
}

// Me returns the email of the signed-in user.
func (c *Client) Me(ctx context.Context) (string, error) {
	var resp struct {
		Email string `json:"email"`
	}
	if err := c.do(ctx, request{action: "Fetching user", method: http.MethodGet, path: "/me"}, &resp); err != nil {
		return "", err
	}
	return resp.Email, nil
}

// ListTasks returns the user's tasks in creation order.
func (c *Client) ListTasks(ctx context.Context) ([]Task, error) {
	var tasks []Task
	if err := c.do(ctx, request{action: "Fetching tasks", method: http.MethodGet, path: "/tasks"}, &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []Task{}
	}
	return tasks, nil
}

// CreateTask adds a task with the given title.
func (c *Client) CreateTask(ctx context.Context, title string) (*Task, error) {
	var task Task
	err := c.do(ctx, request{
		action: "Creating task",
		method: http.MethodPost,
		path:   "/tasks",
		body:   map[string]string{"title": title},
	}, &task)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask changes the title and/or completion of a task.
func (c *Client) UpdateTask(ctx context.Context, id int64, upd TaskUpdate) (*Task, error) {
	var task Task
	err := c.do(ctx, request{
		action: "Updating task",
		method: http.MethodPut,
		path:   fmt.Sprintf("/tasks/%d", id),
		body:   upd,
	}, &task)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteTask removes a task.
func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	return c.do(ctx, request{
		action: "Deleting task",
		method: http.MethodDelete,
		path:   fmt.Sprintf("/tasks/%d", id),
	}, nil)
}

type request struct {
	action string
	method string
	path   string
	body   interface{}

	// public requests carry no token and never expire the session.
	public bool
}

// do sends req and decodes a successful response into out.
func (c *Client) do(ctx context.Context, req request, out interface{}) error {
	var body io.Reader
	if req.body != nil {
		b, err := json.Marshal(req.body)
		if err != nil {
			return &RequestError{Action: req.action, Err: err}
		}
		body = bytes.NewReader(b)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, c.baseURL+req.path, body)
	if err != nil {
		return &RequestError{Action: req.action, Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	if !req.public {
		session, err := c.Session()
		if err != nil {
			return err
		}
		httpReq.Header.Set("Authorization", "Bearer "+session.Token)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return &RequestError{Action: req.action, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return c.handleFailure(req, resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &RequestError{Action: req.action, Status: resp.StatusCode, Err: err}
	}
	return nil
}

func (c *Client) handleFailure(req request, resp *http.Response) error {
	if !req.public && (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden) {
		if err := c.sessions.Clear(); err != nil {
			return errors.Join(ErrSessionExpired, err)
		}
		return ErrSessionExpired
	}

	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&payload); err != nil || payload.Message == "" {
		return &RequestError{
			Action: req.action,
			Status: resp.StatusCode,
			Err:    fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}
	return &APIError{Status: resp.StatusCode, Message: payload.Message}
}
