package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tgienger/todo/internal/db"
	"github.com/tgienger/todo/internal/models"
)

// seed points the CLI at a fresh database holding two tasks
func seed(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "todo.db")
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("TODO_DATABASE", path)
	t.Setenv("TODO_LOG_FILE", "")

	milk, err := models.NewPlain("Buy milk")
	require.NoError(t, err)
	details := "ask about the dog"
	vet, err := models.NewDetailed("Call vet", &details)
	require.NoError(t, err)
	vet.SetCompleted(true)

	database, err := db.Open(path)
	require.NoError(t, err)
	require.NoError(t, database.SaveAll([]*models.Task{milk, vet}))
	require.NoError(t, database.Close())
	return path
}

func TestRun_Version(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run([]string{"--version"}, &out))
	assert.True(t, strings.HasPrefix(out.String(), "todo dev"))
}

func TestRun_List(t *testing.T) {
	seed(t)

	var out bytes.Buffer
	require.NoError(t, run([]string{"list"}, &out))
	assert.Equal(t, "(Simple) Buy milk\n", out.String())

	out.Reset()
	require.NoError(t, run([]string{"list", "-all"}, &out))
	assert.Equal(t, "(Simple) Buy milk\n[COMPLETED] (Detailed) Call vet [Details: ask about the dog]\n", out.String())

	out.Reset()
	require.NoError(t, run([]string{"list", "-all", "-q", "DOG"}, &out))
	assert.Equal(t, "[COMPLETED] (Detailed) Call vet [Details: ask about the dog]\n", out.String())
}

func TestRun_Export(t *testing.T) {
	seed(t)

	var out bytes.Buffer
	require.NoError(t, run([]string{"export", "-format", "yaml"}, &out))
	assert.Contains(t, out.String(), "description: Buy milk")
	assert.Contains(t, out.String(), "details: ask about the dog")

	out.Reset()
	assert.Error(t, run([]string{"export", "-format", "xml"}, &out))
}

func TestRun_Locked(t *testing.T) {
	path := seed(t)
	held, err := db.Open(path)
	require.NoError(t, err)
	defer held.Close()

	var out bytes.Buffer
	err = run([]string{"list"}, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "in use")
}

func TestRun_UnknownCommand(t *testing.T) {
	seed(t)
	var out bytes.Buffer
	assert.Error(t, run([]string{"frobnicate"}, &out))
}
