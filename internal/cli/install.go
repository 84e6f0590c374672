package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"apt-archives/internal/adapters"
	"apt-archives/internal/app"
)

type installKeysOptions struct {
	Repositories string
	KeyringsDir  string
	KeyAssetsDir string
}

func newInstallKeysCommand() *cobra.Command {
	opts := installKeysOptions{}
	cmd := &cobra.Command{
		Use:   "install-keys",
		Short: "Install the signing keys the configured repositories need",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInstallKeys(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Repositories, "repositories", "", "Repositories config path")
	cmd.Flags().StringVar(&opts.KeyringsDir, "keyrings-dir", adapters.DefaultKeyringsDir, "Directory for installed keyring files")
	cmd.Flags().StringVar(&opts.KeyAssetsDir, "key-assets", "", "Directory with local key assets")
	_ = viper.BindPFlag("repositories", cmd.Flags().Lookup("repositories"))
	_ = viper.BindPFlag("keyrings_dir", cmd.Flags().Lookup("keyrings-dir"))
	_ = viper.BindPFlag("key_assets", cmd.Flags().Lookup("key-assets"))
	return cmd
}

func runInstallKeys(ctx context.Context, cmd *cobra.Command, opts installKeysOptions) error {
	service := app.NewService()
	result, err := service.InstallKeys(ctx, app.InstallKeysRequest{
		RepositoriesPath: resolveString(cmd, opts.Repositories, "repositories", "repositories"),
		KeyringsDir:      resolveString(cmd, opts.KeyringsDir, "keyrings_dir", "keyrings-dir"),
		KeyAssetsDir:     resolveString(cmd, opts.KeyAssetsDir, "key_assets", "key-assets"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("installed: %d, unchanged: %d\n", result.Installed, result.Unchanged)
	return nil
}
