package cli

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formvalue/internal/archive"
)

func newHistoryCmd(a *app) *cobra.Command {
	var (
		limit int
		id    string
	)
	cmd := &cobra.Command{
		Use:   "history [form]",
		Short: "List archived submissions, newest first",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openArchive()
			if err != nil {
				return err
			}
			defer store.Close()

			if id != "" {
				sub, err := store.Get(cmd.Context(), id)
				if err != nil {
					return err
				}
				return a.writeSubmissions(cmd.OutOrStdout(), []archive.Submission{sub})
			}

			formName := ""
			if len(args) == 1 {
				formName = args[0]
			}
			subs, err := store.List(cmd.Context(), formName, limit)
			if err != nil {
				return err
			}
			return a.writeSubmissions(cmd.OutOrStdout(), subs)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "l", 20, "Maximum submissions to list")
	cmd.Flags().StringVar(&id, "id", "", "Show a single submission")
	return cmd
}
