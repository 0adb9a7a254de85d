package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/storylint/internal/infrastructure/render"
	"github.com/felixgeelhaar/storylint/internal/infrastructure/watch"
	"github.com/felixgeelhaar/storylint/pkg/application"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch [directory]",
	Short: "Re-score story files whenever they change",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := "."
		if len(args) == 1 {
			root = args[0]
		}

		svc, _, err := loadServices()
		if err != nil {
			return err
		}

		watcher, err := watch.NewStoryWatcher(svc, watchDebounce, func(result *application.AnalysisResult) {
			fmt.Fprintln(cmd.OutOrStdout(), render.Terminal(result.Source, result.Report))
		})
		if err != nil {
			return err
		}
		if err := watcher.WatchRecursive(root); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Watching %s for story changes. Press Ctrl+C to stop.\n", root)
		if os.Getenv("STORYLINT_SKIP_WATCH_RUN") == "true" {
			return nil
		}
		return watcher.Run(cmd.Context())
	},
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 500*time.Millisecond, "Debounce window for rapid file changes")
	RootCmd.AddCommand(watchCmd)
}
