package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--env-file", filepath.Join(t.TempDir(), "missing.env")))
	err := cmd.Execute()
	return out.String(), err
}

func useSQLite(t *testing.T) {
	t.Helper()
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "wildseries.db"))
	t.Setenv("APP_ENV", "production")
	t.Setenv("LOG_LEVEL", "error")
}

func TestRootCommand_Subcommands(t *testing.T) {
	cmd := newRootCommand()
	names := []string{}
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.Subset(t, names, []string{"serve", "migrate", "seed"})
}

func TestMigrateCommand(t *testing.T) {
	useSQLite(t)

	out, err := runCommand(t, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "Schema is up to date")
}

func TestSeedCommand(t *testing.T) {
	useSQLite(t)

	out, err := runCommand(t, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "Loaded 57 references")

	// the users already exist
	_, err = runCommand(t, "seed")
	require.Error(t, err)

	out, err = runCommand(t, "seed", "--purge")
	require.NoError(t, err)
	assert.Contains(t, out, "Loaded 57 references")
}

func TestInvalidLogLevel(t *testing.T) {
	useSQLite(t)
	t.Setenv("LOG_LEVEL", "loud")

	_, err := runCommand(t, "migrate")
	assert.Error(t, err)
}

func TestUnsupportedDriver(t *testing.T) {
	useSQLite(t)
	t.Setenv("DB_DRIVER", "oracle")

	_, err := runCommand(t, "migrate")
	assert.ErrorContains(t, err, "unsupported DB_DRIVER")
}
