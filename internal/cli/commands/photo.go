package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/cobra"

	"github.com/hrdesk-dev/hrdesk/internal/cli/notify"
	"github.com/hrdesk-dev/hrdesk/internal/cli/photo"
)

const previewWidth = 72

// NewPhotoCmd creates the photo command group
func NewPhotoCmd(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "photo",
		Short: "Manage your profile photo",
	}

	cmd.AddCommand(newPhotoSetCmd(opts))
	cmd.AddCommand(newPhotoPreviewCmd(opts))

	return cmd
}

func newPhotoSetCmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "set <image>",
		Short: "Upload a new profile photo (max 5MB)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPhotoSet(cmd.Context(), opts, args[0])
		},
	}
}

func newPhotoPreviewCmd(opts *Options) *cobra.Command {
	var full bool

	cmd := &cobra.Command{
		Use:   "preview <image>",
		Short: "Check an image and print its data URL preview",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPhotoPreview(cmd.Context(), opts.out(), args[0], full)
		},
	}

	cmd.Flags().BoolVar(&full, "full", false, "Print the whole data URL")

	return cmd
}

func runPhotoSet(ctx context.Context, opts *Options, path string) error {
	rt, err := opts.connect()
	if err != nil {
		return err
	}

	if _, err := rt.requireUser(ctx); err != nil {
		return err
	}

	f, err := photo.Open(path)
	if err != nil {
		return err
	}
	if !photo.IsImage(f.Data) {
		rt.notifier.Error("Only image files are allowed")
		return fmt.Errorf("%s is not an image", f.Name)
	}

	sm := opts.sideMenu(rt)
	if err := sm.ChangePhoto(ctx, f); err != nil {
		return err
	}

	avatarURL, _ := sm.Avatar()
	fmt.Fprintf(rt.out, "  Photo: %s\n", avatarURL)
	return nil
}

func runPhotoPreview(ctx context.Context, out io.Writer, path string, full bool) error {
	f, err := photo.Open(path)
	if err != nil {
		return err
	}

	selector := &photo.Selector{Notifier: notify.NewConsole(out)}
	if err := selector.Select(ctx, f); err != nil {
		return err
	}

	preview := selector.Preview()
	if !full && len(preview) > previewWidth {
		preview = preview[:previewWidth] + "..."
	}

	fmt.Fprintf(out, "  File: %s\n", selector.Input())
	fmt.Fprintf(out, "  Type: %s\n", mimetype.Detect(f.Data).String())
	fmt.Fprintf(out, "  Size: %d bytes\n", f.Size)
	fmt.Fprintf(out, "  Preview: %s\n", preview)
	return nil
}
