package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/storylint/internal/infrastructure/render"
	"github.com/felixgeelhaar/storylint/pkg/application"
)

var (
	analyzeCriteria string
	analyzeFormat   string
	failBelow       int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [story text or file path]",
	Short: "Score a user story or a directory of story files",
	Long: `Analyze scores a user story and prints the full readiness report.

The argument may be the story text itself, the path to a story file, or a
directory to scan for story files. Inside a file, an "Acceptance Criteria"
heading or a "---" divider separates the criteria from the story.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, err := loadServices()
		if err != nil {
			return err
		}

		results, err := resolveInput(svc, args[0])
		if err != nil {
			return err
		}

		for _, result := range results {
			if err := printResult(cmd, result); err != nil {
				return err
			}
		}

		for _, result := range results {
			if failBelow > 0 && result.Report.OverallReadinessScore.ReadinessRating < failBelow {
				return fmt.Errorf("%s scored %d, below the threshold of %d",
					result.Source, result.Report.OverallReadinessScore.ReadinessRating, failBelow)
			}
		}
		return nil
	},
}

func resolveInput(svc *application.AnalysisService, arg string) ([]*application.AnalysisResult, error) {
	info, err := os.Stat(arg)
	switch {
	case err == nil && info.IsDir():
		return svc.AnalyzeDirectory(arg)
	case err == nil:
		result, err := svc.AnalyzeFile(arg)
		if err != nil {
			return nil, err
		}
		return []*application.AnalysisResult{result}, nil
	default:
		// Not a path: treat the argument as inline story text.
		return []*application.AnalysisResult{svc.Analyze(arg, analyzeCriteria)}, nil
	}
}

func printResult(cmd *cobra.Command, result *application.AnalysisResult) error {
	switch analyzeFormat {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result.Report)
	case "markdown", "md":
		fmt.Fprintln(cmd.OutOrStdout(), render.Markdown(result.Source, result.Report))
		return nil
	case "text", "":
		fmt.Fprintln(cmd.OutOrStdout(), render.Terminal(result.Source, result.Report))
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s", analyzeFormat)
	}
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeCriteria, "criteria", "", "Acceptance criteria for inline story text, one per line")
	analyzeCmd.Flags().StringVarP(&analyzeFormat, "output", "o", "text", "Output format (text, json, markdown)")
	analyzeCmd.Flags().IntVar(&failBelow, "fail-below", 0, "Exit non-zero if any story scores below this rating")
	RootCmd.AddCommand(analyzeCmd)
}
