package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// NewWhoamiCmd creates the whoami command
func NewWhoamiCmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWhoami(cmd.Context(), opts)
		},
	}
}

func runWhoami(ctx context.Context, opts *Options) error {
	rt, err := opts.connect()
	if err != nil {
		return err
	}

	user, err := rt.requireUser(ctx)
	if err != nil {
		return err
	}

	avatarURL, initial := opts.sideMenu(rt).Avatar()
	fmt.Fprintf(rt.out, "Signed in to %s (%s)\n", rt.server.Alias, rt.server.URL)
	printUser(rt.out, user, avatarURL, initial)
	return nil
}
