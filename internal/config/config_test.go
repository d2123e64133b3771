package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.Completion.Enabled)
	assert.Equal(t, "http://localhost:11434", cfg.Completion.BaseURL)
	assert.Equal(t, "qwen2.5:7b", cfg.Completion.Model)
	assert.Equal(t, 10, cfg.Completion.TimeoutSeconds)
	assert.Equal(t, 30, cfg.Completion.RequestsPerMinute)
	assert.True(t, cfg.Capture.AllowPlaceholder)
	assert.Equal(t, "", cfg.User.Name)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("MARTHA_COMPLETION_ENABLED", "false")
	t.Setenv("MARTHA_COMPLETION_MODEL", "phi3:mini")
	t.Setenv("MARTHA_COMPLETION_TIMEOUT_SECONDS", "5")
	t.Setenv("MARTHA_USER_NAME", "Greg")

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.Completion.Enabled)
	assert.Equal(t, "phi3:mini", cfg.Completion.Model)
	assert.Equal(t, 5, cfg.Completion.TimeoutSeconds)
	assert.Equal(t, "Greg", cfg.User.Name)
}

func TestEnvInvalidIntKeepsDefault(t *testing.T) {
	t.Setenv("MARTHA_COMPLETION_TIMEOUT_SECONDS", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Completion.TimeoutSeconds)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "martha.yaml")
	content := `
completion:
  enabled: true
  base_url: http://llm.local:11434
  model: llama3:8b
capture:
  allow_placeholder: false
user:
  name: Greg
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "http://llm.local:11434", cfg.Completion.BaseURL)
	assert.Equal(t, "llama3:8b", cfg.Completion.Model)
	assert.False(t, cfg.Capture.AllowPlaceholder)
	assert.Equal(t, "Greg", cfg.User.Name)
	// fields absent from the file keep defaults
	assert.Equal(t, 30, cfg.Completion.RequestsPerMinute)
}

func TestLoadFileEnvWins(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "martha.yaml")
	require.NoError(t, os.WriteFile(path, []byte("completion:\n  model: from-file\n"), 0o644))

	t.Setenv("MARTHA_COMPLETION_MODEL", "from-env")

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Completion.Model)
}

func TestLoadFileMissingIsFine(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.True(t, cfg.Completion.Enabled)
}

func TestLoadFileMalformedFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "martha.yaml")
	require.NoError(t, os.WriteFile(path, []byte("completion: [not: valid"), 0o644))

	_, err := LoadFile(path)
	assert.Error(t, err)
}
