package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrdesk-dev/hrdesk/internal/cli/config"
	"github.com/hrdesk-dev/hrdesk/internal/cli/userconfig"
)

func TestInitCommand_NewConfig(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	var out bytes.Buffer
	err := runInit(&out, "https://hr.example.com", initOptions{})
	require.NoError(t, err)

	cfg, err := config.Load(filepath.Join(dir, config.ConfigFileName))
	require.NoError(t, err)
	require.Len(t, cfg.Servers, 1)
	assert.Equal(t, "https://hr.example.com", cfg.Servers[0].URL)
	assert.Equal(t, "server-1", cfg.Servers[0].Alias)
	assert.Contains(t, out.String(), "Created ./hrdesk.json")
}

func TestInitCommand_AppendsServer(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	var out bytes.Buffer
	require.NoError(t, runInit(&out, "https://hr.example.com", initOptions{alias: "head-office"}))
	require.NoError(t, runInit(&out, "http://localhost:8080", initOptions{webURL: "http://localhost:5173"}))

	cfg, err := config.Load(filepath.Join(dir, config.ConfigFileName))
	require.NoError(t, err)
	require.Len(t, cfg.Servers, 2)
	assert.Equal(t, "head-office", cfg.Servers[0].Alias)
	assert.Equal(t, "server-2", cfg.Servers[1].Alias)
	assert.Equal(t, "http://localhost:5173", cfg.Servers[1].AppURL())
	assert.Contains(t, out.String(), "Added server http://localhost:8080")
}

func TestInitCommand_DuplicateURL(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	var out bytes.Buffer
	require.NoError(t, runInit(&out, "https://hr.example.com", initOptions{}))
	require.NoError(t, runInit(&out, "https://hr.example.com", initOptions{}))

	cfg, err := config.Load(filepath.Join(dir, config.ConfigFileName))
	require.NoError(t, err)
	assert.Len(t, cfg.Servers, 1)
	assert.Contains(t, out.String(), "already exists")
}

func TestInitCommand_DuplicateAlias(t *testing.T) {
	t.Chdir(t.TempDir())

	var out bytes.Buffer
	require.NoError(t, runInit(&out, "https://a.example.com", initOptions{alias: "prod"}))
	err := runInit(&out, "https://b.example.com", initOptions{alias: "prod"})
	assert.ErrorContains(t, err, "alias 'prod' is already used")
}

func TestInitCommand_InvalidURL(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	for _, raw := range []string{"hr.example.com", "ftp://hr.example.com", "https://"} {
		err := runInit(&bytes.Buffer{}, raw, initOptions{})
		assert.Error(t, err, raw)
	}

	_, err := os.Stat(filepath.Join(dir, config.ConfigFileName))
	assert.True(t, os.IsNotExist(err))
}

func TestSelectServerCommand(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())

	var out bytes.Buffer
	require.NoError(t, runInit(&out, "https://hr.example.com", initOptions{alias: "head-office"}))
	require.NoError(t, runInit(&out, "http://localhost:8080", initOptions{alias: "dev"}))

	out.Reset()
	require.NoError(t, runSelectServer(&out, "dev"))
	assert.Equal(t, "Selected server: dev (http://localhost:8080)\n", out.String())

	selected, err := userconfig.GetSelectedServer()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", selected)

	assert.Error(t, runSelectServer(&out, "staging"))
}

func TestSelectServerCommand_NoConfig(t *testing.T) {
	t.Chdir(t.TempDir())

	err := runSelectServer(&bytes.Buffer{}, "dev")
	assert.ErrorContains(t, err, "hrdesk init")
}
