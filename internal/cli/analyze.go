package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"formflow/internal/engine/analytics"
)

func newAnalyzeCmd() *cobra.Command {
	var (
		submissionsPath string
		at              string
	)

	cmd := &cobra.Command{
		Use:   "analyze <schema>",
		Short: "Compute the analytics snapshot for exported submissions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := loadSchema(args[0])
			if err != nil {
				return err
			}
			subs, err := loadSubmissions(submissionsPath)
			if err != nil {
				return err
			}

			now := time.Now()
			if at != "" {
				if now, err = time.Parse(time.RFC3339, at); err != nil {
					return fmt.Errorf("--at: %w", err)
				}
			}

			snap := analytics.AggregateAt(schema, subs, now)
			return printJSON(cmd.OutOrStdout(), snap)
		},
	}

	cmd.Flags().StringVarP(&submissionsPath, "submissions", "s", "", "YAML/JSON list of submissions")
	cmd.Flags().StringVar(&at, "at", "", "reference time (RFC 3339) for the day and week windows")
	cmd.MarkFlagRequired("submissions")
	return cmd
}
