package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME at an empty directory so no real config file is read.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.False(t, cfg.DevMode)
	assert.Equal(t, "https://json-data-1wm2.onrender.com", cfg.APIURL)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, time.Hour, cfg.CacheTTL)
	assert.Equal(t, "587", cfg.SMTP.Port)
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, "wander", cfg.Tracing.ServiceName)
}

func TestLoadEnv(t *testing.T) {
	isolate(t)
	t.Setenv("WANDER_PORT", "9090")
	t.Setenv("WANDER_DEV_MODE", "true")
	t.Setenv("WANDER_SMTP_HOST", "smtp.example.com")
	t.Setenv("WANDER_REDIS_ADDR", "localhost:6379")
	t.Setenv("WANDER_SESSION_TTL", "2h")
	t.Setenv("WANDER_TRACING_ENDPOINT", "localhost:4318")

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.True(t, cfg.DevMode)
	assert.Equal(t, "smtp.example.com", cfg.SMTP.Host)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "localhost:4318", cfg.Tracing.Endpoint)
}

const fileYAML = `port: 7070
api_url: http://catalog.local
agency_email: hello@agency.example
smtp:
  host: mail.example.com
  port: "465"
  pass: hunter2
redis:
  addr: redis:6379
  db: 2
`

func TestLoadExplicitFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "wander.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fileYAML), 0o600))

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Port)
	assert.Equal(t, "http://catalog.local", cfg.APIURL)
	assert.Equal(t, "hello@agency.example", cfg.AgencyEmail)
	assert.Equal(t, "465", cfg.SMTP.Port)
	assert.Equal(t, "hunter2", cfg.SMTP.Pass)
	assert.Equal(t, 2, cfg.Redis.DB)
}

func TestLoadDefaultFile(t *testing.T) {
	home := isolate(t)
	dir := filepath.Join(home, ".config", "wander")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("port: 6060\n"), 0o600))

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, 6060, cfg.Port)
}

func TestEnvOverridesFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "wander.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fileYAML), 0o600))
	t.Setenv("WANDER_PORT", "5050")

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 5050, cfg.Port)
}

func TestFlagsOverrideEnv(t *testing.T) {
	isolate(t)
	t.Setenv("WANDER_PORT", "5050")

	flags := pflag.NewFlagSet("serve", pflag.ContinueOnError)
	flags.Int("port", 8080, "")
	flags.String("db", "", "")
	require.NoError(t, flags.Parse([]string{"--port", "4040", "--db", "/tmp/w.db"}))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, 4040, cfg.Port)
	assert.Equal(t, "/tmp/w.db", cfg.DBPath)
}

func TestUnsetFlagsDoNotOverrideEnv(t *testing.T) {
	isolate(t)
	t.Setenv("WANDER_PORT", "5050")

	flags := pflag.NewFlagSet("serve", pflag.ContinueOnError)
	flags.Int("port", 8080, "")
	require.NoError(t, flags.Parse(nil))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, 5050, cfg.Port)
}

func TestLoadErrors(t *testing.T) {
	isolate(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.Error(t, err, "explicit file must exist")

	t.Setenv("WANDER_PORT", "70000")
	_, err = Load("", nil)
	assert.ErrorContains(t, err, "out of range")
}

func TestMasked(t *testing.T) {
	cfg := Config{}
	cfg.SMTP.Pass = "secret"
	cfg.Redis.Password = "other"

	m := cfg.Masked()
	assert.Equal(t, "********", m.SMTP.Pass)
	assert.Equal(t, "********", m.Redis.Password)
	assert.Equal(t, "secret", cfg.SMTP.Pass, "original untouched")

	assert.Empty(t, Config{}.Masked().SMTP.Pass)
}
