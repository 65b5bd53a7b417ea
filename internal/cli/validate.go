package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <schema>",
		Short: "Check a schema for the problems the server rejects on save",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := loadSchema(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			issues := schema.Validate()
			for _, issue := range issues {
				fmt.Fprintf(out, "FAIL %s\n", issue)
			}
			if len(issues) > 0 {
				return fmt.Errorf("%d issue(s) in %s", len(issues), args[0])
			}
			fmt.Fprintf(out, "ok: %d fields\n", len(schema.Fields))
			return nil
		},
	}
}
