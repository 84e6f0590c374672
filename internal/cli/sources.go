package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"apt-archives/internal/adapters"
	"apt-archives/internal/app"
)

type sourcesOptions struct {
	Repositories string
	Codename     string
	SourcesDir   string
	KeyringsDir  string
}

func newSourcesCommand() *cobra.Command {
	opts := sourcesOptions{}
	cmd := &cobra.Command{
		Use:   "sources",
		Short: "Write deb822 sources files for the configured repositories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSources(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Repositories, "repositories", "", "Repositories config path")
	cmd.Flags().StringVar(&opts.Codename, "codename", "", "Host distribution codename")
	cmd.Flags().StringVar(&opts.SourcesDir, "sources-dir", adapters.DefaultSourcesDir, "Directory for generated .sources files")
	cmd.Flags().StringVar(&opts.KeyringsDir, "keyrings-dir", adapters.DefaultKeyringsDir, "Directory for installed keyring files")
	_ = viper.BindPFlag("repositories", cmd.Flags().Lookup("repositories"))
	_ = viper.BindPFlag("codename", cmd.Flags().Lookup("codename"))
	_ = viper.BindPFlag("sources_dir", cmd.Flags().Lookup("sources-dir"))
	_ = viper.BindPFlag("keyrings_dir", cmd.Flags().Lookup("keyrings-dir"))
	return cmd
}

func runSources(ctx context.Context, cmd *cobra.Command, opts sourcesOptions) error {
	service := app.NewService()
	result, err := service.WriteSources(ctx, app.SourcesRequest{
		RepositoriesPath: resolveString(cmd, opts.Repositories, "repositories", "repositories"),
		Codename:         resolveString(cmd, opts.Codename, "codename", "codename"),
		SourcesDir:       resolveString(cmd, opts.SourcesDir, "sources_dir", "sources-dir"),
		KeyringsDir:      resolveString(cmd, opts.KeyringsDir, "keyrings_dir", "keyrings-dir"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("wrote: %d, unchanged: %d\n", result.Written, result.Unchanged)
	return nil
}
