package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"apt-archives/internal/adapters"
	"apt-archives/internal/app"
)

type preferencesOptions struct {
	Repositories string
	Output       string
}

func newPreferencesCommand() *cobra.Command {
	opts := preferencesOptions{}
	cmd := &cobra.Command{
		Use:   "preferences",
		Short: "Write apt pin preferences for the configured repositories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPreferences(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Repositories, "repositories", "", "Repositories config path")
	cmd.Flags().StringVar(&opts.Output, "output", adapters.DefaultPreferencesPath, "Preferences file to write")
	_ = viper.BindPFlag("repositories", cmd.Flags().Lookup("repositories"))
	return cmd
}

func runPreferences(ctx context.Context, cmd *cobra.Command, opts preferencesOptions) error {
	service := app.NewService()
	result, err := service.WritePreferences(ctx, app.PreferencesRequest{
		RepositoriesPath: resolveString(cmd, opts.Repositories, "repositories", "repositories"),
		OutputPath:       opts.Output,
	})
	if err != nil {
		return err
	}
	fmt.Printf("wrote %d preferences\n", result.Written)
	return nil
}
