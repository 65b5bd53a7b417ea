package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"formflow/internal/engine/navigation"
	"formflow/internal/engine/rules"
	"formflow/internal/model"
)

func newPathCmd() *cobra.Command {
	var responsesPath string

	cmd := &cobra.Command{
		Use:   "path <schema>",
		Short: "Walk the sections a respondent with these answers would visit",
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

			out := cmd.OutOrStdout()
			for _, step := range walk(schema, responses) {
				fmt.Fprintf(out, "%s\t%s\n", pageName(step.page), step.decision)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&responsesPath, "responses", "r", "", "YAML/JSON file of field id -> value")
	return cmd
}

type pathStep struct {
	page     string
	decision navigation.Decision
}

// walk answers each page from responses and follows Next until the session
// submits or stays put. A page is never entered twice.
func walk(schema *model.FormSchema, responses model.ResponseMap) []pathStep {
	now := time.Now()
	state := navigation.Start(schema, "walk", "", now)
	seen := make(map[string]bool)
	var steps []pathStep

	for !seen[state.CurrentSectionID] {
		seen[state.CurrentSectionID] = true
		page := state.CurrentSectionID

		for _, f := range navigation.SectionFields(schema, page) {
			v, ok := responses[f.ID]
			if !ok || !f.Type.IsInput() || !rules.ShouldShowField(&f, state.Responses) {
				continue
			}
			var d navigation.Decision
			state, d = navigation.Answer(schema, state, f.ID, v, now)
			if d.SubmitNow() {
				return append(steps, pathStep{page: page, decision: d})
			}
		}

		var d navigation.Decision
		state, d = navigation.Next(schema, state, now)
		steps = append(steps, pathStep{page: page, decision: d})
		if d.Outcome == navigation.OutcomeSubmit || d.Outcome == navigation.OutcomeStay {
			break
		}
	}
	return steps
}

func pageName(id string) string {
	if id == "" {
		return "(start)"
	}
	return id
}
