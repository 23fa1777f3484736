package commands

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hrdesk-dev/hrdesk/internal/cli/config"
)

type initOptions struct {
	alias  string
	webURL string
}

// NewInitCmd creates the init command
func NewInitCmd(opts *Options) *cobra.Command {
	var initOpts initOptions

	cmd := &cobra.Command{
		Use:   "init <api-url>",
		Short: "Add an HR API server to ./hrdesk.json",
		Example: `  $ hrdesk init https://hr.example.com
  $ hrdesk init http://localhost:8080 --alias dev --web-url http://localhost:5173`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(opts.out(), args[0], initOpts)
		},
	}

	cmd.Flags().StringVar(&initOpts.alias, "alias", "", "Server alias (default server-N)")
	cmd.Flags().StringVar(&initOpts.webURL, "web-url", "", "Web app URL, if it is not served from the API URL")

	return cmd
}

func runInit(out io.Writer, apiURL string, initOpts initOptions) error {
	if err := validateURL(apiURL); err != nil {
		return err
	}
	if initOpts.webURL != "" {
		if err := validateURL(initOpts.webURL); err != nil {
			return err
		}
	}

	currentDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	configPath := filepath.Join(currentDir, config.ConfigFileName)

	var cfg *config.Config
	isNewConfig := false

	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load existing config: %w", err)
		}
		fmt.Fprintf(out, "Found existing %s\n", config.ConfigFileName)
	} else {
		cfg = &config.Config{
			Servers: []config.Server{},
		}
		isNewConfig = true
	}

	for _, server := range cfg.Servers {
		if server.URL == apiURL {
			fmt.Fprintf(out, "Server %s already exists in %s\n", apiURL, config.ConfigFileName)
			return nil
		}
	}

	alias := initOpts.alias
	if alias == "" {
		alias = fmt.Sprintf("server-%d", len(cfg.Servers)+1)
	}
	if _, err := cfg.GetServerByAlias(alias); err == nil {
		return fmt.Errorf("alias '%s' is already used in %s", alias, config.ConfigFileName)
	}

	cfg.Servers = append(cfg.Servers, config.Server{
		URL:    apiURL,
		Alias:  alias,
		WebURL: initOpts.webURL,
	})

	if err := config.Save(configPath, cfg); err != nil {
		return err
	}

	if isNewConfig {
		fmt.Fprintf(out, "✓ Created ./%s with server %s (%s)\n", config.ConfigFileName, apiURL, alias)
	} else {
		fmt.Fprintf(out, "✓ Added server %s (%s) to ./%s\n", apiURL, alias, config.ConfigFileName)
	}

	fmt.Fprintln(out, "\nNext steps:")
	fmt.Fprintln(out, "  1. Run 'hrdesk signup' to create an account")
	fmt.Fprintln(out, "  2. Or run 'hrdesk login' if you already have one")

	return nil
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid URL '%s': expected http(s)://host", raw)
	}
	return nil
}
