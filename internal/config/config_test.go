package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("HOMEDESK_SERVER", "")
	t.Setenv("HOMEDESK_TIMEOUT", "")
	t.Setenv("HOMEDESK_VERBOSE", "")
}

func TestDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:5000", cfg.ServerURL)
	assert.Equal(t, 15*time.Second, cfg.Timeout)
	assert.False(t, cfg.Verbose)
}

func TestFileLayer(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	clearEnv(t)

	dir := filepath.Join(home, ".homedesk")
	require.NoError(t, os.MkdirAll(dir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(
		"server: https://homeservice.example.com\ntimeout_seconds: 30\nverbose: true\n",
	), 0o600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://homeservice.example.com", cfg.ServerURL)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.True(t, cfg.Verbose)
}

func TestEnvWinsOverFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	clearEnv(t)

	dir := filepath.Join(home, ".homedesk")
	require.NoError(t, os.MkdirAll(dir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(
		"server: https://file.example.com\n",
	), 0o600))

	t.Setenv("HOMEDESK_SERVER", "https://env.example.com")
	t.Setenv("HOMEDESK_TIMEOUT", "5")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com", cfg.ServerURL)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
}

func TestInvalidTimeout(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	clearEnv(t)
	t.Setenv("HOMEDESK_TIMEOUT", "soon")

	_, err := Load()
	assert.Error(t, err)
}
