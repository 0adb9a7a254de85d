package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/storylint/internal/infrastructure/render"
	"github.com/felixgeelhaar/storylint/pkg/application"
)

var jiraLimit int

var jiraCmd = &cobra.Command{
	Use:   "jira",
	Short: "Score Jira issues as user stories",
	Long: `Jira fetches issues from the project configured in the config file
and scores each description as a user story. The config file needs a jira
section with domain, project_key, email, and api_token.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, file, err := loadServices()
		if err != nil {
			return err
		}
		if file.Jira == nil {
			return fmt.Errorf("no jira section in %s", configPath)
		}

		jira, err := application.NewJiraService(svc, *file.Jira)
		if err != nil {
			return err
		}
		results, err := jira.AnalyzeProject(cmd.Context(), jiraLimit)
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
	jiraCmd.Flags().IntVar(&jiraLimit, "limit", 20, "Maximum number of issues to score")
	RootCmd.AddCommand(jiraCmd)
}
