package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "hrdesk.sqlite", cfg.Database.URL)
	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ClientTimeout)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.HTTP.AllowOrigins)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "uploads", cfg.Uploads.Dir)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DATABASE_URL", "/tmp/test.sqlite")
	t.Setenv("AUTH_ADMIN_INVITE_TOKEN", "123456")
	t.Setenv("HTTP_ALLOW_ORIGINS", "http://a.test,http://b.test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/test.sqlite", cfg.Database.URL)
	assert.Equal(t, "123456", cfg.Auth.AdminInviteToken)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.HTTP.AllowOrigins)
}

func TestLoadCLI_ConsoleDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadCLI()
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ClientTimeout)
}

func TestLoadCLI_PrefixedOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HRDESK_LOG_LEVEL", "debug")
	t.Setenv("HRDESK_HTTP_CLIENT_TIMEOUT", "3s")

	cfg, err := LoadCLI()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 3*time.Second, cfg.HTTP.ClientTimeout)
}

func TestLoadCLI_UpdateCheck(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadCLI()
	require.NoError(t, err)
	assert.True(t, cfg.CLI.UpdateCheck)

	t.Setenv("HRDESK_CLI_UPDATE_CHECK", "false")
	cfg, err = LoadCLI()
	require.NoError(t, err)
	assert.False(t, cfg.CLI.UpdateCheck)
}
