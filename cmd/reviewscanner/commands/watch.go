package commands

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"ReviewScanner/internal/usecase"
)

var (
	watchOut      string
	watchFull     bool
	watchInterval time.Duration
)

func init() {
	watchCmd.Flags().StringVarP(&watchOut, "out", "o", "", "CSV snapshot rewritten after every successful run")
	watchCmd.Flags().BoolVar(&watchFull, "full", false, "emit every record field, not only the Review column")
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 0, "time between runs (default watch.interval)")
	_ = watchCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch <product-url> --out <file.csv> [--interval 1h]",
	Short: "Re-scrapes a product on an interval and keeps a CSV snapshot current.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := loadApp()
		if err != nil {
			return err
		}
		logger := application.Logger()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, syscall.SIGINT)
		defer stop()

		watcher := application.Watcher(args[0], watchInterval, func(ctx context.Context, result usecase.Result) error {
			if err := writeSnapshot(watchOut, result, watchFull); err != nil {
				return err
			}
			logger.InfoContext(ctx, "snapshot written", "path", watchOut, "reviews", len(result.Table), "run_id", result.RunID)
			return nil
		})
		if err := watcher.Start(ctx); err != nil {
			return err
		}

		<-ctx.Done()
		stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return watcher.Stop(stopCtx)
	},
}
