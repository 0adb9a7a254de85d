package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/storylint/internal/infrastructure/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the storylint configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented starter config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.WriteDefault(configPath); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", configPath)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the active scoring configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, err := loadServices()
		if err != nil {
			return err
		}
		cfg := svc.Config()

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Short story length:  %d\n", cfg.ShortStoryLength)
		fmt.Fprintf(out, "Long story length:   %d\n", cfg.LongStoryLength)
		fmt.Fprintf(out, "Max criteria count:  %d\n", cfg.MaxCriteriaCount)
		fmt.Fprintf(out, "Ambiguous keywords:  %v\n", cfg.AmbiguousKeywords)
		fmt.Fprintf(out, "Dependency keywords: %v\n", cfg.DependencyKeywords)
		fmt.Fprintf(out, "Technical keywords:  %v\n", cfg.TechnicalKeywords)
		fmt.Fprintf(out, "Testable keywords:   %v\n", cfg.TestableKeywords)
		fmt.Fprintln(out, "Readiness bands:")
		for _, b := range cfg.Bands {
			fmt.Fprintf(out, "  >= %3d  %s\n", b.Threshold, b.Label)
		}
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	RootCmd.AddCommand(configCmd)
}
