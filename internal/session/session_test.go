package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadDelete(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("HOMEDESK_SESSION", "")

	s, err := Current()
	require.NoError(t, err)
	assert.Nil(t, s, "fresh home means not logged in")

	require.NoError(t, Save(&Session{Cookie: "abc", Email: "user@example.com", Admin: true}))

	s, err = Current()
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "abc", s.Cookie)
	assert.Equal(t, "user@example.com", s.Email)
	assert.True(t, s.Admin)
	assert.Equal(t, "file", s.Source)
	assert.False(t, s.CreatedAt.IsZero())

	fi, err := os.Stat(filepath.Join(os.Getenv("HOME"), ".homedesk", "session.json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), fi.Mode().Perm())

	require.NoError(t, Delete())
	s, err = Current()
	require.NoError(t, err)
	assert.Nil(t, s)

	// deleting twice is fine
	require.NoError(t, Delete())
}

func TestEnvOverrideWins(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	require.NoError(t, Save(&Session{Cookie: "from-file"}))

	t.Setenv("HOMEDESK_SESSION", "from-env")
	s, err := Current()
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "from-env", s.Cookie)
	assert.Equal(t, "env", s.Source)
}

func TestSaveRejectsEmptyCookie(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	assert.Error(t, Save(&Session{Cookie: "  "}))
	assert.Error(t, Save(nil))
}
