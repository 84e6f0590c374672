package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"apt-archives/internal/app"
)

type convertOptions struct {
	Input        string
	Output       string
	InputFormat  string
	OutputFormat string
}

func newConvertCommand() *cobra.Command {
	opts := convertOptions{}
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert apt sources between the one-line and deb822 formats",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConvert(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.Input, "input", "", "Input sources file")
	cmd.Flags().StringVar(&opts.Output, "output", "", "Output sources file")
	cmd.Flags().StringVar(&opts.InputFormat, "from", app.FormatSourcesList, "Input format (sources-list or deb822)")
	cmd.Flags().StringVar(&opts.OutputFormat, "to", app.FormatDeb822, "Output format (sources-list or deb822)")
	return cmd
}

func runConvert(ctx context.Context, opts convertOptions) error {
	service := app.NewService()
	result, err := service.Convert(ctx, app.ConvertRequest{
		InputPath:    opts.Input,
		OutputPath:   opts.Output,
		InputFormat:  opts.InputFormat,
		OutputFormat: opts.OutputFormat,
	})
	if err != nil {
		return err
	}
	fmt.Printf("converted: %d sources\n", result.Sources)
	return nil
}
