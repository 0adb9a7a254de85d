package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/storylint/internal/infrastructure/render"
	"github.com/felixgeelhaar/storylint/pkg/application"
)

var (
	githubOwner string
	githubRepo  string
	githubLimit int
)

var githubCmd = &cobra.Command{
	Use:   "github",
	Short: "Score open GitHub issues as user stories",
	Long: `Github fetches open issues from a repository and scores each issue
body as a user story. Pull requests are skipped. Set GITHUB_TOKEN for
private repositories and higher rate limits.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if githubOwner == "" || githubRepo == "" {
			return fmt.Errorf("both --owner and --repo are required")
		}

		svc, _, err := loadServices()
		if err != nil {
			return err
		}

		gh := application.NewGitHubService(cmd.Context(), svc, os.Getenv("GITHUB_TOKEN"))
		results, err := gh.AnalyzeIssues(cmd.Context(), githubOwner, githubRepo, githubLimit)
		if err != nil {
			return err
		}

		for _, result := range results {
			fmt.Fprintln(cmd.OutOrStdout(), render.Terminal(result.Source, result.Report))
		}
		return nil
	},
}

func init() {
	githubCmd.Flags().StringVar(&githubOwner, "owner", "", "Repository owner")
	githubCmd.Flags().StringVar(&githubRepo, "repo", "", "Repository name")
	githubCmd.Flags().IntVar(&githubLimit, "limit", 20, "Maximum number of issues to score")
	RootCmd.AddCommand(githubCmd)
}
