package cli

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formvalue/pkg/definition"
)

func newFillCmd(a *app) *cobra.Command {
	var (
		save bool
		name string
	)
	cmd := &cobra.Command{
		Use:   "fill <definition>",
		Short: "Fill a form definition interactively and print or archive the submission",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			built, err := definition.LoadFile(args[0])
			if err != nil {
				return err
			}
			filled, err := a.filler().Fill(cmd.Context(), built)
			if err != nil {
				return err
			}
			return a.submit(cmd, filled, save, submissionName(name, filled.Title, args[0]))
		},
	}
	cmd.Flags().BoolVar(&save, "save", false, "Archive the submission")
	cmd.Flags().StringVar(&name, "name", "", "Archive name (default: form title)")
	return cmd
}
