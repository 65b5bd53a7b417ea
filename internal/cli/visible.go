package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"formflow/internal/engine/navigation"
	"formflow/internal/engine/rules"
	"formflow/internal/model"
)

func newVisibleCmd() *cobra.Command {
	var (
		responsesPath string
		section       string
		page          bool
	)

	cmd := &cobra.Command{
		Use:   "visible <schema>",
		Short: "List the fields shown for a set of responses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := loadSchema(args[0])
			if err != nil {
				return err
			}
			responses, err := loadResponses(responsesPath)
			if err != nil {
				return err
			}

			var fields []model.FieldDefinition
			if page {
				for _, f := range navigation.SectionFields(schema, section) {
					if rules.ShouldShowField(&f, responses) {
						fields = append(fields, f)
					}
				}
			} else {
				fields = rules.VisibleFields(schema, responses)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, f := range fields {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", f.ID, f.Type, f.Label)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVarP(&responsesPath, "responses", "r", "", "YAML/JSON file of field id -> value")
	cmd.Flags().StringVar(&section, "section", "", "section id whose page to list (empty: fields before the first section)")
	cmd.Flags().BoolVar(&page, "page", false, "list one section page instead of the whole form")
	return cmd
}
