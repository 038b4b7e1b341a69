package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("TODO_DATABASE", "")
	t.Setenv("TODO_LOG_FILE", "")
	return dir
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load(filepath.Join(dir, "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "data", "todo", "todo.db"), cfg.Database)
	assert.Equal(t, filepath.Join(dir, "data", "todo", "todo.log"), cfg.LogFile)
	assert.False(t, cfg.HideCompleted)
}

func TestLoad_File(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
database: ~/tasks/todo.db
hide_completed: true
theme: tokyo-night-day
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "tasks", "todo.db"), cfg.Database)
	assert.Equal(t, filepath.Join(dir, "data", "todo", "todo.log"), cfg.LogFile)
	assert.True(t, cfg.HideCompleted)
	assert.Equal(t, "tokyo-night-day", cfg.Theme)
}

func TestLoad_EmptyFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "data", "todo", "todo.db"), cfg.Database)
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database: /from/file.db\n"), 0644))
	t.Setenv("TODO_DATABASE", "/from/env.db")
	t.Setenv("TODO_LOG_FILE", "/from/env.log")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/from/env.db", cfg.Database)
	assert.Equal(t, "/from/env.log", cfg.LogFile)
}

func TestLoad_Malformed(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database: [unclosed\n"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestPath(t *testing.T) {
	dir := isolate(t)

	p, err := Path()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config", "todo", "config.yaml"), p)

	t.Setenv("XDG_CONFIG_HOME", "")
	p, err = Path()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ".config", "todo", "config.yaml"), p)
}
