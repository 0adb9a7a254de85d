// Package cli implements the storylint command-line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/storylint/internal/infrastructure/config"
	"github.com/felixgeelhaar/storylint/pkg/application"
	"github.com/felixgeelhaar/storylint/pkg/domain/scoring"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var configPath string

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:     "storylint",
	Version: Version,
	Short:   "Score user stories for clarity and INVEST readiness",
	Long: `Storylint scores user stories the way a thorough reviewer would.
It checks the "As a ..., I want ..., so that ..." format, hunts for
ambiguous wording, assesses each INVEST criterion, and turns the findings
into concrete suggestions for improvement.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultFileName, "Path to the config file")
}

// loadServices builds the analysis service and config file from --config.
func loadServices() (*application.AnalysisService, *config.File, error) {
	cfg, file, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	return application.NewAnalysisService(cfg), file, nil
}

// defaultService returns a service with engine defaults, ignoring config
// errors. Used by commands where a broken config should not block startup.
func defaultService() *application.AnalysisService {
	svc, _, err := loadServices()
	if err != nil {
		return application.NewAnalysisService(scoring.DefaultConfig())
	}
	return svc
}
