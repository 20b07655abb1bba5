package main

import (
	"fmt"
	"os"
	"runtime/pprof"

	"github.com/spf13/cobra"

	"bookengine/orderbook"
)

// newProfileCmd wraps the same synthetic load bench.go generates in CPU
// profiling (pprof.StartCPUProfile/StopCPUProfile around a load of a fixed
// number of events).
func newProfileCmd() *cobra.Command {
	var events int
	var out string

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "CPU-profile the default array-backed ladder under synthetic load",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("bookctl profile: %w", err)
			}
			defer f.Close()

			if err := pprof.StartCPUProfile(f); err != nil {
				return fmt.Errorf("bookctl profile: %w", err)
			}
			defer pprof.StopCPUProfile()

			elapsed := runBenchOnce(func(isBid bool) orderbook.SideLadder {
				return orderbook.NewArrayLadder(isBid, events)
			}, events)

			fmt.Printf("profiled %d events in %v, wrote %s\n", events, elapsed, out)
			return nil
		},
	}

	cmd.Flags().IntVar(&events, "events", 1_000_000, "number of add/execute/cancel events to generate")
	cmd.Flags().StringVar(&out, "out", "bookctl.pprof", "path to write the CPU profile")
	return cmd
}
