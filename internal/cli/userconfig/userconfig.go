package userconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	configDirName  = "hrdesk"
	configFileName = "config.json"
)

// UserConfig is the per-user state kept in <user config dir>/hrdesk/config.json.
// It never holds credentials; tokens live in the OS keyring.
type UserConfig struct {
	SelectedServerURL string `json:"selected_server_url"`
	// LastEmail is offered as the default on the next login
	LastEmail string `json:"last_email,omitempty"`
}

// GetConfigPath returns the path to the user config file
func GetConfigPath() (string, error) {
	baseDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(baseDir, configDirName, configFileName), nil
}

// Load reads the user config. A missing file is an empty config.
func Load() (*UserConfig, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if errors.Is(err, fs.ErrNotExist) {
		return &UserConfig{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read user config file: %w", err)
	}

	var cfg UserConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse user config file: %w", err)
	}
	return &cfg, nil
}

// Save writes cfg, creating the config directory when needed
func Save(cfg *UserConfig) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(configPath), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal user config: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write user config file: %w", err)
	}
	return nil
}

// update loads the config, applies fn and saves the result
func update(fn func(*UserConfig)) error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	fn(cfg)
	return Save(cfg)
}

// SetSelectedServer remembers the server commands talk to by default
func SetSelectedServer(serverURL string) error {
	return update(func(cfg *UserConfig) { cfg.SelectedServerURL = serverURL })
}

// GetSelectedServer returns the selected server URL, or "" if none is set
func GetSelectedServer() (string, error) {
	cfg, err := Load()
	if err != nil {
		return "", err
	}
	return cfg.SelectedServerURL, nil
}

// SetLastEmail remembers the email of the last successful sign-in
func SetLastEmail(email string) error {
	return update(func(cfg *UserConfig) { cfg.LastEmail = email })
}

// GetLastEmail returns the remembered email, or "" if none is set
func GetLastEmail() (string, error) {
	cfg, err := Load()
	if err != nil {
		return "", err
	}
	return cfg.LastEmail, nil
}
