package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hrdesk-dev/hrdesk/internal/cli/commands"
	"github.com/hrdesk-dev/hrdesk/internal/cli/update"
	"github.com/hrdesk-dev/hrdesk/internal/config"
	"github.com/hrdesk-dev/hrdesk/internal/logger"
)

var version = "dev" // Will be set during build

// NewRootCmd builds the command tree around opts
func NewRootCmd(opts *commands.Options, updateCheck bool) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "hrdesk",
		Short: "hrdesk - HR portal from the terminal",
		Long: `hrdesk CLI - Sign in to your company's HR portal, see the menu for
your role and keep your profile up to date.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if !updateCheck || cmd.Name() == "version" {
				return
			}

			// Check for updates (runs before every command except version)
			update.PrintUpdateNotification(os.Stderr, version)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.ServerAlias, "server", "s", "", "Server alias from hrdesk.json")
	flags.BoolVar(&opts.Browser, "browser", false, "Open pages in the browser instead of printing the route")
	flags.DurationVar(&opts.Timeout, "timeout", opts.Timeout, "API request timeout")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "hrdesk version %s\n", version)
		},
	})

	rootCmd.AddCommand(commands.NewInitCmd(opts))
	rootCmd.AddCommand(commands.NewSelectServerCmd(opts))
	rootCmd.AddCommand(commands.NewLoginCmd(opts))
	rootCmd.AddCommand(commands.NewSignupCmd(opts))
	rootCmd.AddCommand(commands.NewLogoutCmd(opts))
	rootCmd.AddCommand(commands.NewWhoamiCmd(opts))
	rootCmd.AddCommand(commands.NewMenuCmd(opts))
	rootCmd.AddCommand(commands.NewOpenCmd(opts))
	rootCmd.AddCommand(commands.NewPhotoCmd(opts))
	rootCmd.AddCommand(commands.NewUploadImageCmd(opts))
	rootCmd.AddCommand(commands.NewDashCmd(opts))

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	cfg, err := config.LoadCLI()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.Format, os.Stderr)

	opts := commands.DefaultOptions(logger.GetLogger())
	opts.Timeout = cfg.HTTP.ClientTimeout

	if err := NewRootCmd(opts, cfg.CLI.UpdateCheck).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
