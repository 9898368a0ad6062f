package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Session is what a login leaves behind: the bearer token and the email
// of the signed-in user.
type Session struct {
	Token string `json:"token"`
	User  string `json:"user"`
}

// SessionStore persists the session between client invocations.
type SessionStore interface {
	// Load returns the stored session, or nil when there is none.
	Load() (*Session, error)
	Save(s *Session) error
	Clear() error
}

// FileSessionStore keeps the session in a JSON file readable only by the
// current user.
type FileSessionStore struct {
	path string
}

var _ SessionStore = (*FileSessionStore)(nil)

// NewFileSessionStore creates a store backed by the file at path.
func NewFileSessionStore(path string) *FileSessionStore {
	return &FileSessionStore{path: path}
}

// DefaultSessionPath returns todo/session.json under the user's config
// directory ($XDG_CONFIG_HOME on Linux).
func DefaultSessionPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(dir, "todo", "session.json"), nil
}

// Path returns the file the store reads and writes.
func (s *FileSessionStore) Path() string {
	return s.path
}

// Load implements SessionStore.
func (s *FileSessionStore) Load() (*Session, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to parse session file %s: %w", s.path, err)
	}
	if session.Token == "" {
		return nil, nil
	}
	return &session, nil
}

// Save implements SessionStore.
func (s *FileSessionStore) Save(session *Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

// Clear implements SessionStore. Clearing an absent session is not an error.
func (s *FileSessionStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove session: %w", err)
	}
	return nil
}
