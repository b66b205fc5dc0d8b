package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigCommandMasksSecrets(t *testing.T) {
	isolate(t)
	t.Setenv("WANDER_PORT", "9090")
	t.Setenv("WANDER_SMTP_PASS", "hunter2")

	out, err := executeCommand("config")
	require.NoError(t, err)

	assert.Contains(t, out, "port: 9090")
	assert.Contains(t, out, "********")
	assert.NotContains(t, out, "hunter2")
}

func TestConfigCommandReadsFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "wander.yaml")
	require.NoError(t, os.WriteFile(path, []byte("agency_email: trips@example.com\nredis:\n  addr: localhost:6379\n"), 0o600))

	out, err := executeCommand("config", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "agency_email: trips@example.com")
	assert.Contains(t, out, "addr: localhost:6379")
}

func TestConfigCommandMissingFile(t *testing.T) {
	isolate(t)

	_, err := executeCommand("config", "--config", filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
