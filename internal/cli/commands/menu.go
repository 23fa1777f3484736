package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/hrdesk-dev/hrdesk/internal/cli/menu"
)

// menuPrompter picks a menu entry interactively. Swapped in tests.
var menuPrompter = promptMenuEntry

// NewMenuCmd creates the menu command
func NewMenuCmd(opts *Options) *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Show the side menu for your role",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenu(cmd.Context(), opts, interactive)
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Pick an entry and open it")

	return cmd
}

// NewOpenCmd creates the open command
func NewOpenCmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "open <label-or-path>",
		Short: "Open a side menu entry",
		Example: `  $ hrdesk open Dashboard
  $ hrdesk open /hrd/employees
  $ hrdesk open logout`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOpen(cmd.Context(), opts, args[0])
		},
	}
}

func runMenu(ctx context.Context, opts *Options, interactive bool) error {
	rt, err := opts.connect()
	if err != nil {
		return err
	}

	user, err := rt.requireUser(ctx)
	if err != nil {
		return err
	}

	sm := opts.sideMenu(rt)
	avatarURL, initial := sm.Avatar()
	printUser(rt.out, user, avatarURL, initial)
	fmt.Fprintln(rt.out)

	entries := sm.Entries()
	if !interactive {
		for _, entry := range entries {
			fmt.Fprintf(rt.out, "  %-16s %s\n", entry.Label, entry.Path)
		}
		return nil
	}

	entry, err := menuPrompter(entries)
	if err != nil {
		return err
	}
	return sm.Click(entry.Path)
}

func runOpen(ctx context.Context, opts *Options, labelOrPath string) error {
	rt, err := opts.connect()
	if err != nil {
		return err
	}

	user, err := rt.requireUser(ctx)
	if err != nil {
		return err
	}

	sm := opts.sideMenu(rt)
	entry, ok := menu.Find(sm.Entries(), labelOrPath)
	if !ok {
		return fmt.Errorf("no menu entry '%s' for role %s", labelOrPath, user.MenuRole())
	}

	if err := sm.Click(entry.Path); err != nil {
		return err
	}
	if entry.IsLogout() {
		rt.notifier.Success("Logged out")
	}
	return nil
}

func promptMenuEntry(entries []menu.Entry) (menu.Entry, error) {
	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "> {{ .Label | cyan }}",
		Inactive: "  {{ .Label }}",
		Selected: "{{ .Label | green }}",
	}

	prompt := promptui.Select{
		Label:     "Menu",
		Items:     entries,
		Templates: templates,
		Size:      len(entries),
		Searcher: func(input string, index int) bool {
			return strings.Contains(strings.ToLower(entries[index].Label), strings.ToLower(input))
		},
	}

	index, _, err := prompt.Run()
	if err != nil {
		return menu.Entry{}, fmt.Errorf("menu selection cancelled: %w", err)
	}
	return entries[index], nil
}
