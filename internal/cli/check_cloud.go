package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"apt-archives/internal/app"
	"apt-archives/internal/types"
)

type checkCloudOptions struct {
	Codename string
	Cloud    string
	Pocket   string
}

func newCheckCloudCommand() *cobra.Command {
	opts := checkCloudOptions{}
	cmd := &cobra.Command{
		Use:   "check-cloud",
		Short: "Check that a cloud archive release exists for a codename",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheckCloud(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.Codename, "codename", "", "Ubuntu codename (e.g. jammy)")
	cmd.Flags().StringVar(&opts.Cloud, "cloud", "", "Cloud archive name (e.g. antelope)")
	cmd.Flags().StringVar(&opts.Pocket, "pocket", string(types.DefaultPocket), "Cloud archive pocket (updates or proposed)")
	return cmd
}

func runCheckCloud(ctx context.Context, opts checkCloudOptions) error {
	service := app.NewService()
	if err := service.CheckCloud(ctx, app.CheckCloudRequest{
		Codename: opts.Codename,
		Cloud:    opts.Cloud,
		Pocket:   opts.Pocket,
	}); err != nil {
		return err
	}
	fmt.Printf("cloud archive %s/%s is available for %s\n", opts.Cloud, opts.Pocket, opts.Codename)
	return nil
}
