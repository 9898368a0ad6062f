package client

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSessionStore(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "todo", "session.json")
	store := NewFileSessionStore(path)

	session, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, session, "missing file means no session")

	require.NoError(t, store.Save(&Session{Token: "tok", User: "a@x.com"}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	session, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, &Session{Token: "tok", User: "a@x.com"}, session)

	require.NoError(t, store.Clear())
	session, err = store.Load()
	require.NoError(t, err)
	assert.Nil(t, session)

	require.NoError(t, store.Clear(), "clearing twice is fine")
}

func TestFileSessionStore_Corrupt(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewFileSessionStore(path).Load()
	assert.Error(t, err)
}

func TestDefaultSessionPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	t.Setenv("AppData", dir)

	path, err := DefaultSessionPath()
	require.NoError(t, err)
	assert.Equal(t, "session.json", filepath.Base(path))
	assert.Equal(t, "todo", filepath.Base(filepath.Dir(path)))
}
