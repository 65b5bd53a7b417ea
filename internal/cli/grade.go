package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"formflow/internal/config"
	"formflow/internal/model"
	"formflow/internal/service"
)

func newGradeCmd() *cobra.Command {
	var (
		req        service.GradeRequest
		mode       string
		answerFile string
	)

	cmd := &cobra.Command{
		Use:   "grade [answer]",
		Short: "Score a free-text answer against a reference answer and keywords",
		Long: `Score a free-text answer the way a graded field would.

Unset options fall back to GRADING_DEFAULT_MODE, GRADING_PASSING_THRESHOLD
and GRADING_DEFAULT_POINTS. The answer comes from the argument, --answer-file,
or stdin when the argument is "-".`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if req.ReferenceAnswer == "" && len(req.Keywords) == 0 {
				return fmt.Errorf("set --reference or --keywords")
			}
			answer, err := readAnswer(args, answerFile)
			if err != nil {
				return err
			}
			req.Answer = answer
			req.Enabled = true
			req.Mode = model.GradingMode(mode)

			grading := service.NewGradingService(config.DefaultGradingConfig())
			return printJSON(cmd.OutOrStdout(), grading.Preview(req))
		},
	}

	f := cmd.Flags()
	f.StringVar(&req.ReferenceAnswer, "reference", "", "reference answer")
	f.StringSliceVar(&req.Keywords, "keywords", nil, "expected keywords, comma separated")
	f.StringVar(&mode, "mode", "", "keywords, similarity or ai-combined")
	f.IntVar(&req.PassingThreshold, "threshold", 0, "passing score 0-100")
	f.IntVar(&req.Points, "points", 0, "points for a perfect answer")
	f.IntVar(&req.MinWords, "min-words", 0, "minimum word count (0: none)")
	f.IntVar(&req.MaxWords, "max-words", 0, "maximum word count (0: none)")
	f.StringVar(&answerFile, "answer-file", "", "read the answer from a file")
	return cmd
}

func readAnswer(args []string, answerFile string) (string, error) {
	switch {
	case answerFile != "":
		data, err := os.ReadFile(answerFile)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", answerFile, err)
		}
		return strings.TrimSpace(string(data)), nil
	case len(args) == 1 && args[0] == "-":
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	case len(args) == 1:
		return args[0], nil
	}
	return "", fmt.Errorf("no answer given")
}
