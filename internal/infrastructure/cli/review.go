package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/storylint/pkg/application"
)

var reviewThreshold int

var reviewCmd = &cobra.Command{
	Use:   "review [directory]",
	Short: "Run the review workflow over a directory of story files",
	Long: `Review scores every story file in the directory, submits each story
for review, and approves the ones whose readiness rating meets the
threshold. Stories below the threshold are sent back for rework.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := "."
		if len(args) == 1 {
			root = args[0]
		}

		svc, _, err := loadServices()
		if err != nil {
			return err
		}
		results, err := svc.AnalyzeDirectory(root)
		if err != nil {
			return err
		}

		reviews := application.NewReviewService(reviewThreshold)
		out := cmd.OutOrStdout()
		approved := 0
		for _, result := range results {
			rating := result.Report.OverallReadinessScore.ReadinessRating
			reviews.RecordRating(result.Source, rating)

			if _, err := reviews.Transition(result.Source, "submit"); err != nil {
				return err
			}
			state, err := reviews.Transition(result.Source, "approve")
			if err != nil {
				state, err = reviews.Transition(result.Source, "rework")
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%-12s %3d  %s\n", state, rating, result.Source)
				continue
			}
			approved++
			fmt.Fprintf(out, "%-12s %3d  %s\n", state, rating, result.Source)
		}

		fmt.Fprintf(out, "\n%d of %d stories approved at threshold %d\n", approved, len(results), reviewThreshold)
		return nil
	},
}

func init() {
	reviewCmd.Flags().IntVar(&reviewThreshold, "threshold", 71, "Minimum readiness rating for approval")
	RootCmd.AddCommand(reviewCmd)
}
