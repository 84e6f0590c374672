package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"apt-archives/internal/adapters"
	"apt-archives/internal/app"
)

type migrateOptions struct {
	Root           string
	Deb822Name     string
	OldReleasesURL string
}

func newMigrateCommand() *cobra.Command {
	opts := migrateOptions{}
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Switch archived releases to the old-releases mirror",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMigrate(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.Root, "root", "/", "Filesystem root to examine")
	cmd.Flags().StringVar(&opts.Deb822Name, "deb822-name", "ubuntu.sources", "deb822 file holding the default sources")
	cmd.Flags().StringVar(&opts.OldReleasesURL, "old-releases-url", adapters.DefaultOldReleasesURL, "Old-releases archive URL")
	return cmd
}

func runMigrate(ctx context.Context, opts migrateOptions) error {
	service := app.NewService()
	result, err := service.Migrate(ctx, app.MigrateRequest{
		Root:           opts.Root,
		Deb822Name:     opts.Deb822Name,
		OldReleasesURL: opts.OldReleasesURL,
	})
	if err != nil {
		return err
	}
	if result.Changed {
		fmt.Println("sources migrated to old-releases")
	} else {
		fmt.Println("no migration needed")
	}
	return nil
}
