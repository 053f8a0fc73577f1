package cli

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formvalue/pkg/openapi"
)

func newImportCmd(a *app) *cobra.Command {
	var (
		operation string
		fill      bool
		save      bool
		name      string
	)
	cmd := &cobra.Command{
		Use:   "import <openapi>",
		Short: "Build a form from an OpenAPI operation request body",
		Long:  "Build a form from the request body of an OpenAPI operation. The source may be a file path or an http(s) URL. Without --fill the form rows and their defaults are printed.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := openapi.ReadSource(cmd.Context(), args[0], &http.Client{}, a.timeout)
			if err != nil {
				return err
			}
			built, err := openapi.Import(cmd.Context(), data, operation)
			if err != nil {
				return err
			}
			a.logger.Debug("operation imported", "operation", operation, "rows", len(built.Items()))
			if !fill {
				return a.writeSummary(cmd.OutOrStdout(), built)
			}

			filled, err := a.filler().Fill(cmd.Context(), built)
			if err != nil {
				return err
			}
			return a.submit(cmd, filled, save, submissionName(name, operation, args[0]))
		},
	}
	cmd.Flags().StringVarP(&operation, "operation", "o", "", "Operation id, or method:/path (required)")
	cmd.Flags().BoolVar(&fill, "fill", false, "Fill the imported form interactively")
	cmd.Flags().BoolVar(&save, "save", false, "Archive the submission (with --fill)")
	cmd.Flags().StringVar(&name, "name", "", "Archive name (default: operation id)")
	_ = cmd.MarkFlagRequired("operation")
	return cmd
}
