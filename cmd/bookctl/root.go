package main

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// runID correlates every log line emitted by one invocation of bookctl,
// so operators replaying a captured feed can tie a run's log output
// together. It is not attached to any metrics label.
var runID = uuid.New().String()

func rootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "bookctl",
		Short: "Reconstruct and inspect a limit-order book from a captured feed",
		Long: `bookctl drives the order book core from a captured feed file,
with one CLI for replay, benchmarking, profiling, and symbol extraction
(run, bench, profile, extract). No subcommand reads a live WebSocket source.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a bookctl TOML config file")
	cmd.AddCommand(newRunCmd(&configPath))
	cmd.AddCommand(newBenchCmd())
	cmd.AddCommand(newProfileCmd())
	cmd.AddCommand(newExtractCmd())
	return cmd
}

func newLogger() *zap.Logger {
	log, err := zap.NewProduction(zap.Fields(zap.String("run_id", runID)))
	if err != nil {
		return zap.NewNop()
	}
	return log
}
