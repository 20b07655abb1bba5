package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"bookengine/config"
	"bookengine/extractor"
	"bookengine/feed"
	"bookengine/metrics"
	"bookengine/orderbook"
)

// newRunCmd replays a captured feed file through extractor.Filter then
// feed.Dispatcher, printing best bid/ask/spread/meta once the file is
// exhausted. Grounded in original_source/src/bin/processor.rs's main.
func newRunCmd(configPath *string) *cobra.Command {
	var file, symbol string
	var metricsAddr string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Replay a captured feed file through the order book",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.MustLoadOrDefault(*configPath)
			if err != nil {
				return fmt.Errorf("bookctl run: %w", err)
			}
			if symbol == "" {
				symbol = cfg.Symbol
			}

			log := newLogger()
			defer log.Sync()

			f, err := os.Open(file)
			if err != nil {
				return fmt.Errorf("bookctl run: open %s: %w", file, err)
			}
			defer f.Close()

			pass1, err := os.Open(file)
			if err != nil {
				return fmt.Errorf("bookctl run: open %s: %w", file, err)
			}
			defer pass1.Close()

			extracted, err := os.CreateTemp("", "bookctl-extract-*.bin")
			if err != nil {
				return fmt.Errorf("bookctl run: %w", err)
			}
			defer os.Remove(extracted.Name())
			defer extracted.Close()

			stats, err := extractor.Filter(pass1, f, extracted, symbol, 0)
			if err != nil {
				return fmt.Errorf("bookctl run: extract %s: %w", symbol, err)
			}
			log.Info("symbol extracted",
				zap.String("symbol", symbol),
				zap.Uint16("stock_locate", stats.StockLocate),
				zap.Int("scanned", stats.Scanned),
				zap.Int("kept", stats.Kept))

			if _, err := extracted.Seek(0, 0); err != nil {
				return fmt.Errorf("bookctl run: %w", err)
			}

			orderCap, levelCap := cfg.Capacity.Orders, cfg.Capacity.Levels
			if orderCap == 0 {
				orderCap = config.Default().Capacity.Orders
			}
			if levelCap == 0 {
				levelCap = config.Default().Capacity.Levels
			}
			book := orderbook.NewOrderBookWithCapacity(
				orderbook.NewArrayLadder(true, levelCap),
				orderbook.NewArrayLadder(false, levelCap),
				orderCap, levelCap,
			)
			mc := metrics.New()
			if metricsAddr != "" {
				mux := http.NewServeMux()
				mux.Handle("/metrics", mc.Handler())
				srv := &http.Server{Addr: metricsAddr, Handler: mux}
				go func() {
					if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
						log.Error("metrics server stopped", zap.Error(err))
					}
				}()
				defer srv.Close()
			}

			dispatcher := feed.NewDispatcher(book, log, 1024)
			dispatcher.OnApplied(func(tag feed.Tag, err error, latency time.Duration) {
				mc.RecordEvent(string(tag), err, latency)
			})
			dispatcher.Start()

			dec := feed.NewDecoder(extracted)
			applied := 0
			for {
				ev, err := dec.Next()
				if err != nil {
					break
				}
				dispatcher.Submit(ev)
				applied++
			}
			dispatcher.Stop()

			bidLevels, askLevels, liveLevels, liveOrders := book.Meta()
			mc.SetBookMeta(bidLevels, askLevels, liveOrders)
			spreadTicks, spreadOK := book.Spread()
			mc.SetSpread(int64(spreadTicks), spreadOK)

			fmt.Printf("applied %d events for %s (stock_locate=%d)\n", applied, symbol, stats.StockLocate)
			if bid, ok := book.BestBid(); ok {
				fmt.Printf("best bid: %d\n", bid)
			} else {
				fmt.Println("best bid: none")
			}
			if ask, ok := book.BestAsk(); ok {
				fmt.Printf("best ask: %d\n", ask)
			} else {
				fmt.Println("best ask: none")
			}
			if spreadOK {
				fmt.Printf("spread: %d\n", spreadTicks)
			} else {
				fmt.Println("spread: none")
			}
			fmt.Printf("meta: bid_levels=%d ask_levels=%d live_levels=%d live_orders=%d\n",
				bidLevels, askLevels, liveLevels, liveOrders)
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "path to a captured ITCH-like feed file")
	cmd.Flags().StringVar(&symbol, "symbol", "", "instrument symbol to extract (defaults to config symbol)")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "optional listen address for a /metrics endpoint")
	cmd.MarkFlagRequired("file")
	return cmd
}
