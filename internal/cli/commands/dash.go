package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/hrdesk-dev/hrdesk/internal/cli/menu"
	"github.com/hrdesk-dev/hrdesk/internal/cli/nav"
)

// NewDashCmd creates the dash command
func NewDashCmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "dash",
		Short: "Open your dashboard in the browser",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDash(cmd.Context(), opts)
		},
	}
}

func runDash(ctx context.Context, opts *Options) error {
	rt, err := opts.connect()
	if err != nil {
		return err
	}

	user, err := rt.requireUser(ctx)
	if err != nil {
		return err
	}

	navigator := opts.Navigator
	if navigator == nil {
		navigator = nav.NewBrowser(rt.server.AppURL(), rt.out)
	}

	return navigator.Navigate(menu.DashboardRoute(user.MenuRole()))
}
