package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/storylint/internal/infrastructure/httpapi"
	"github.com/felixgeelhaar/storylint/internal/infrastructure/webhook"
	"github.com/felixgeelhaar/storylint/pkg/application"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the analysis HTTP API",
	Long: `Serve starts the analysis API: POST /api/v1/analyze scores a story,
GET /health reports liveness, and GET /ws streams completed results over
WebSocket. Configured webhooks receive each completed report.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if os.Getenv("STORYLINT_SKIP_SERVE") == "true" {
			return nil
		}

		svc, file, err := loadServices()
		if err != nil {
			return err
		}

		server := httpapi.NewServer(svc, serveAddr)

		if len(file.Webhooks) > 0 {
			store := webhook.NewDeadLetterStore(".storylint-deadletters.jsonl")
			notifier := webhook.NewNotifier(file.Webhooks, store)
			server.SetOnResult(func(result *application.AnalysisResult) {
				notifier.Notify(context.Background(), result)
			})
		}

		return server.Start()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8484", "Address to listen on")
	RootCmd.AddCommand(serveCmd)
}
