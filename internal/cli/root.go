// Package cli implements formctl, an offline companion to the server: it
// validates schema files, previews grading and runs the analytics and
// navigation engines over exported data.
package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd builds the formctl command tree
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "formctl",
		Short: "Offline tools for formflow schemas and submissions",
		Long: `formctl runs the form engine without a server.

Schema files may be YAML or JSON and hold either a bare schema
(fields, settings) or a whole form with a "schema" key.

  formctl validate survey.yaml
  formctl visible survey.yaml --responses answers.json
  formctl path survey.yaml --responses answers.json
  formctl grade --reference "cats sleep a lot" "my cat sleeps"
  formctl analyze survey.yaml --submissions export.json`,
		SilenceUsage: true,
	}

	root.AddCommand(newValidateCmd())
	root.AddCommand(newVisibleCmd())
	root.AddCommand(newPathCmd())
	root.AddCommand(newGradeCmd())
	root.AddCommand(newAnalyzeCmd())
	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
