package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bookengine/extractor"
)

// newExtractCmd exposes extractor.Filter as its own subcommand, grounded
// in original_source/src/bin/extractor.rs's standalone binary: the
// symbol-resolution utility treated as an external collaborator elsewhere,
// made runnable on its own.
func newExtractCmd() *cobra.Command {
	var file, symbol, out string
	var maxMessages int

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Copy one symbol's order-lifecycle frames out of a multi-symbol feed file",
		RunE: func(cmd *cobra.Command, args []string) error {
			pass1, err := os.Open(file)
			if err != nil {
				return fmt.Errorf("bookctl extract: open %s: %w", file, err)
			}
			defer pass1.Close()

			pass2, err := os.Open(file)
			if err != nil {
				return fmt.Errorf("bookctl extract: open %s: %w", file, err)
			}
			defer pass2.Close()

			w, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("bookctl extract: create %s: %w", out, err)
			}
			defer w.Close()

			stats, err := extractor.Filter(pass1, pass2, w, symbol, maxMessages)
			if err != nil {
				return fmt.Errorf("bookctl extract: %w", err)
			}

			fmt.Printf("symbol=%s stock_locate=%d scanned=%d kept=%d -> %s\n",
				symbol, stats.StockLocate, stats.Scanned, stats.Kept, out)
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "path to a multi-symbol feed file")
	cmd.Flags().StringVar(&symbol, "symbol", "", "instrument symbol to extract")
	cmd.Flags().StringVar(&out, "out", "", "path to write the extracted frames")
	cmd.Flags().IntVar(&maxMessages, "max-messages", 0, "stop after this many kept frames (0 = unlimited)")
	cmd.MarkFlagRequired("file")
	cmd.MarkFlagRequired("symbol")
	cmd.MarkFlagRequired("out")
	return cmd
}
