package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hrdesk-dev/hrdesk/internal/cli/photo"
)

// NewUploadImageCmd creates the upload-image command
func NewUploadImageCmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "upload-image <image>",
		Short: "Upload an image and print its URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUploadImage(cmd.Context(), opts, args[0])
		},
	}
}

func runUploadImage(ctx context.Context, opts *Options, path string) error {
	rt, err := opts.connect()
	if err != nil {
		return err
	}

	var imageURL string
	selector := &photo.Selector{
		Notifier: rt.notifier,
		OnSelected: func(ctx context.Context, f *photo.File) error {
			result, err := rt.api.UploadImage(ctx, f.Name, f.Reader())
			if err != nil {
				rt.notifier.Error("Failed to upload image")
				return err
			}
			imageURL = result.ImageURL
			return nil
		},
	}

	if err := selector.SelectPath(ctx, path); err != nil {
		return err
	}

	rt.notifier.Success("Image uploaded")
	fmt.Fprintln(rt.out, imageURL)
	return nil
}
