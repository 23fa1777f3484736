package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hrdesk-dev/hrdesk/internal/cli/pages"
	"github.com/hrdesk-dev/hrdesk/internal/cli/userconfig"
)

// NewLoginCmd creates the login command
func NewLoginCmd(opts *Options) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the selected HR server",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Check for environment variables (useful for CI/CD)
			if email == "" {
				email = os.Getenv("HRDESK_EMAIL")
			}
			if password == "" {
				password = os.Getenv("HRDESK_PASSWORD")
			}

			var err error
			if email == "" {
				lastEmail, _ := userconfig.GetLastEmail()
				if email, err = promptEmail(lastEmail); err != nil {
					return fmt.Errorf("email is required (use --email flag or HRDESK_EMAIL env var): %w", err)
				}
			}
			if password == "" {
				if password, err = promptPassword(os.Stderr); err != nil {
					return fmt.Errorf("password is required (use --password flag or HRDESK_PASSWORD env var): %w", err)
				}
			}

			return runLogin(cmd.Context(), opts, email, password)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address (or set HRDESK_EMAIL)")
	cmd.Flags().StringVar(&password, "password", "", "Password (or set HRDESK_PASSWORD, will prompt if not provided)")

	return cmd
}

func runLogin(ctx context.Context, opts *Options, email, password string) error {
	rt, err := opts.connect()
	if err != nil {
		return err
	}

	form := pages.LoginForm{Email: email, Password: password}
	if err := form.Validate(); err != nil {
		rt.notifier.Error(err.Error())
		return err
	}

	rt.notifier.ActionWithSpinner(fmt.Sprintf("Logging in to %s (%s)", rt.server.Alias, rt.server.URL))
	route, err := pages.NewLogin(rt.api, rt.session, rt.navigator).Submit(ctx, form)
	if err := finishSubmit(rt, err); err != nil {
		return err
	}

	if err := userconfig.SetLastEmail(strings.TrimSpace(email)); err != nil {
		rt.logger.Warn().Err(err).Msg("Failed to remember login email")
	}

	user := rt.session.User()
	rt.notifier.Success("Login successful!")
	printUser(rt.out, user, user.ProfileImageURL, user.Initial())
	rt.logger.Debug().Str("route", route).Msg("Navigated to dashboard")

	return nil
}
