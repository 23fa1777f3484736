package commands

import (
	"github.com/spf13/cobra"
)

// NewLogoutCmd creates the logout command
func NewLogoutCmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and remove every stored credential",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogout(opts)
		},
	}
}

func runLogout(opts *Options) error {
	rt, err := opts.connect()
	if err != nil {
		return err
	}

	if err := opts.sideMenu(rt).Logout(); err != nil {
		rt.notifier.Error("Logout incomplete")
		return err
	}

	rt.notifier.Success("Logged out")
	return nil
}
