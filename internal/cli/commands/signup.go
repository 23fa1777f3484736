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

type signupFlags struct {
	form      pages.SignupForm
	photoPath string
}

// NewSignupCmd creates the signup command
func NewSignupCmd(opts *Options) *cobra.Command {
	var flags signupFlags

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account on the selected HR server",
		Example: `  $ hrdesk signup --name "Dewi Lestari" --email dewi@example.com --position "HR Lead" --photo ./dewi.png
  $ hrdesk signup --invite-token 123456   # register an admin account`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.form.Password == "" {
				flags.form.Password = os.Getenv("HRDESK_PASSWORD")
			}
			if err := promptMissing(&flags.form); err != nil {
				return err
			}
			return runSignup(cmd.Context(), opts, flags)
		},
	}

	cmd.Flags().StringVar(&flags.form.Name, "name", "", "Full name")
	cmd.Flags().StringVar(&flags.form.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&flags.form.Password, "password", "", "Password (or set HRDESK_PASSWORD, will prompt if not provided)")
	cmd.Flags().StringVar(&flags.form.Position, "position", "", "Job title")
	cmd.Flags().StringVar(&flags.form.AdminInviteToken, "invite-token", "", "Admin invite token")
	cmd.Flags().StringVar(&flags.photoPath, "photo", "", "Profile photo (max 5MB)")

	return cmd
}

// promptMissing asks for the fields not given as flags when running in a
// terminal. Otherwise the form validation reports them.
func promptMissing(form *pages.SignupForm) error {
	if !isInteractive() {
		return nil
	}

	var err error
	if form.Name == "" {
		if form.Name, err = promptText("Full name", "", nil); err != nil {
			return err
		}
	}
	if form.Email == "" {
		if form.Email, err = promptEmail(""); err != nil {
			return err
		}
	}
	if form.Password == "" {
		if form.Password, err = promptPassword(os.Stderr); err != nil {
			return err
		}
	}
	if form.Position == "" {
		if form.Position, err = promptText("Position", "", nil); err != nil {
			return err
		}
	}
	return nil
}

func runSignup(ctx context.Context, opts *Options, flags signupFlags) error {
	rt, err := opts.connect()
	if err != nil {
		return err
	}

	page := pages.NewSignup(rt.api, rt.session, rt.navigator, rt.notifier)

	if err := flags.form.Validate(); err != nil {
		rt.notifier.Error(err.Error())
		return err
	}

	if flags.photoPath != "" {
		if err := page.Selector().SelectPath(ctx, flags.photoPath); err != nil {
			return err
		}
	}

	rt.notifier.ActionWithSpinner(fmt.Sprintf("Creating account on %s (%s)", rt.server.Alias, rt.server.URL))
	route, err := page.Submit(ctx, flags.form)
	if err := finishSubmit(rt, err); err != nil {
		return err
	}

	if err := userconfig.SetLastEmail(strings.TrimSpace(flags.form.Email)); err != nil {
		rt.logger.Warn().Err(err).Msg("Failed to remember login email")
	}

	user := rt.session.User()
	rt.notifier.Success("Account created!")
	printUser(rt.out, user, user.ProfileImageURL, user.Initial())
	rt.logger.Debug().Str("route", route).Msg("Navigated to dashboard")

	return nil
}
