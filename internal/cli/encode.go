package cli

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formvalue/internal/archive"
	"github.com/goliatone/go-formvalue/pkg/definition"
	"github.com/goliatone/go-formvalue/pkg/form"
)

var errInvalidSubmission = errors.New("submission failed validation")

func newEncodeCmd(a *app) *cobra.Command {
	var validate bool
	cmd := &cobra.Command{
		Use:   "encode <definition>",
		Short: "Print the encoded submission of a form definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			built, err := definition.LoadFile(args[0])
			if err != nil {
				return err
			}
			a.logger.Debug("definition loaded", "path", args[0], "rows", len(built.Items()))
			if validate {
				if err := a.checkValid(cmd, built); err != nil {
					return err
				}
			}
			return a.writePayload(cmd.OutOrStdout(), built.EncodedValue())
		},
	}
	cmd.Flags().BoolVar(&validate, "validate", false, "Fail when row validators reject the current values")
	return cmd
}

func (a *app) checkValid(cmd *cobra.Command, f form.Form) error {
	mapping := f.Validate()
	if mapping.Empty() {
		return nil
	}
	writeValidation(cmd.ErrOrStderr(), mapping)
	return errInvalidSubmission
}

// submit validates the filled form, then prints or archives its payload.
func (a *app) submit(cmd *cobra.Command, filled form.Form, save bool, name string) error {
	if err := a.checkValid(cmd, filled); err != nil {
		return err
	}
	payload := filled.EncodedValue()
	if !save {
		return a.writePayload(cmd.OutOrStdout(), payload)
	}

	store, err := a.openArchive()
	if err != nil {
		return err
	}
	defer store.Close()

	sub, err := store.Save(cmd.Context(), name, payload)
	if err != nil {
		return err
	}
	a.logger.Info("submission saved", "id", sub.ID, "form", sub.Form)
	return a.writeSubmissions(cmd.OutOrStdout(), []archive.Submission{sub})
}

// submissionName picks the archive name: the explicit flag, then the form
// title, then the source file name without extension.
func submissionName(flag, title, source string) string {
	if name := strings.TrimSpace(flag); name != "" {
		return name
	}
	if name := strings.TrimSpace(title); name != "" {
		return name
	}
	base := filepath.Base(source)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
