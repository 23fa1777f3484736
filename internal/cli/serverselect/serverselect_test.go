package serverselect

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrdesk-dev/hrdesk/internal/cli/config"
	"github.com/hrdesk-dev/hrdesk/internal/cli/userconfig"
)

func isolateUserConfig(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
}

func twoServers() *config.Config {
	return &config.Config{Servers: []config.Server{
		{URL: "https://hr.example.com", Alias: "head-office"},
		{URL: "http://localhost:8080", Alias: "dev"},
	}}
}

func TestResolveServer_AliasWins(t *testing.T) {
	isolateUserConfig(t)
	require.NoError(t, userconfig.SetSelectedServer("https://hr.example.com"))

	server, err := ResolveServer(twoServers(), "dev")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", server.URL)
}

func TestResolveServer_UnknownAlias(t *testing.T) {
	isolateUserConfig(t)

	_, err := ResolveServer(twoServers(), "branch-office")
	assert.Error(t, err)
}

func TestResolveServer_UsesSelectedServer(t *testing.T) {
	isolateUserConfig(t)
	require.NoError(t, userconfig.SetSelectedServer("http://localhost:8080"))

	server, err := ResolveServer(twoServers(), "")
	require.NoError(t, err)
	assert.Equal(t, "dev", server.Alias)
}

func TestResolveServer_SingleServerIsRemembered(t *testing.T) {
	isolateUserConfig(t)
	cfg := &config.Config{Servers: []config.Server{{URL: "https://hr.example.com", Alias: "head-office"}}}

	server, err := ResolveServer(cfg, "")
	require.NoError(t, err)
	assert.Equal(t, "head-office", server.Alias)

	selected, err := userconfig.GetSelectedServer()
	require.NoError(t, err)
	assert.Equal(t, "https://hr.example.com", selected)
}

func TestResolveServer_StaleSelectionFallsBackToPrompt(t *testing.T) {
	isolateUserConfig(t)
	require.NoError(t, userconfig.SetSelectedServer("https://gone.example.com"))

	original := Prompter
	t.Cleanup(func() { Prompter = original })
	Prompter = func(cfg *config.Config) (*config.Server, error) {
		return &cfg.Servers[1], nil
	}

	server, err := ResolveServer(twoServers(), "")
	require.NoError(t, err)
	assert.Equal(t, "dev", server.Alias)

	selected, _ := userconfig.GetSelectedServer()
	assert.Equal(t, "http://localhost:8080", selected)
}

func TestResolveServer_PromptCancelled(t *testing.T) {
	isolateUserConfig(t)

	original := Prompter
	t.Cleanup(func() { Prompter = original })
	Prompter = func(*config.Config) (*config.Server, error) {
		return nil, errors.New("server selection cancelled")
	}

	_, err := ResolveServer(twoServers(), "")
	assert.Error(t, err)
}

func TestGetServerByURLOrAlias(t *testing.T) {
	cfg := twoServers()

	server, err := GetServerByURLOrAlias(cfg, "http://localhost:8080")
	require.NoError(t, err)
	assert.Equal(t, "dev", server.Alias)

	server, err = GetServerByURLOrAlias(cfg, "head-office")
	require.NoError(t, err)
	assert.Equal(t, "https://hr.example.com", server.URL)

	_, err = GetServerByURLOrAlias(cfg, "nope")
	assert.Error(t, err)
}
