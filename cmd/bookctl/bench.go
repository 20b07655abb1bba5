package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"bookengine/domain"
	"bookengine/orderbook"
)

// newBenchCmd runs a synthetic add/execute/cancel load over each of the
// four SideLadder backings and reports wall-clock time per backing,
// grounded in a throughput harness over a single matching engine and the
// workload shape original_source/benches/bench_orders.rs generates:
// prices clustered within 100 ticks of a fixed mid, so most adds land
// near the top of book.
func newBenchCmd() *cobra.Command {
	var events int

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Synthetic load generator comparing the four SideLadder backings",
		RunE: func(cmd *cobra.Command, args []string) error {
			backings := map[string]func(isBid bool) orderbook.SideLadder{
				"array":    func(isBid bool) orderbook.SideLadder { return orderbook.NewArrayLadder(isBid, events) },
				"redblack": func(isBid bool) orderbook.SideLadder { return orderbook.NewRedBlackLadder(isBid) },
				"skiplist": func(isBid bool) orderbook.SideLadder { return orderbook.NewSkipListLadder(isBid) },
				"btree":    func(isBid bool) orderbook.SideLadder { return orderbook.NewBTreeLadder(isBid) },
			}

			for _, name := range []string{"array", "redblack", "skiplist", "btree"} {
				newLadder := backings[name]
				elapsed := runBenchOnce(newLadder, events)
				fmt.Printf("%-8s %9d events in %v (%.0f events/sec)\n",
					name, events, elapsed, float64(events)/elapsed.Seconds())
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&events, "events", 1_000_000, "number of add/execute/cancel events to generate per backing")
	return cmd
}

func runBenchOnce(newLadder func(isBid bool) orderbook.SideLadder, events int) time.Duration {
	book := orderbook.NewOrderBookWithLadders(newLadder(true), newLadder(false))
	r := rand.New(rand.NewSource(1))
	mid := domain.Price(50_000)

	start := time.Now()
	for i := 0; i < events; i++ {
		id := domain.OrderID(i + 1)
		price := mid + domain.Price(r.Intn(200)) - 100
		side := domain.Buy
		if i%2 == 1 {
			side = domain.Sell
		}
		_ = book.Add(id, price, 10, side)
		if i%3 == 0 {
			_ = book.Execute(id, 5)
		} else if i%3 == 1 {
			_ = book.Cancel(id, 5)
		}
	}
	return time.Since(start)
}
