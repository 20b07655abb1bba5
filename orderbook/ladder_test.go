package orderbook

import (
	"testing"

	"bookengine/domain"
)

// ladderFactories exercises every SideLadder backing against the same
// scenario, confirming the array ladder and its three substitutes agree
// on observable behaviour.
func ladderFactories() map[string]func(isBid bool) SideLadder {
	return map[string]func(isBid bool) SideLadder{
		"array": func(isBid bool) SideLadder {
			return NewArrayLadder(isBid, 16)
		},
		"redblack": func(isBid bool) SideLadder {
			return NewRedBlackLadder(isBid)
		},
		"skiplist": func(isBid bool) SideLadder {
			return NewSkipListLadder(isBid)
		},
		"btree": func(isBid bool) SideLadder {
			return NewBTreeLadder(isBid)
		},
	}
}

func TestLadderBackingsAgreeOnBidOrdering(t *testing.T) {
	for name, factory := range ladderFactories() {
		t.Run(name, func(t *testing.T) {
			store := NewPriceLevelStore(16)
			ladder := factory(true)

			prices := []domain.Price{100, 95, 110, 90, 105}
			for _, p := range prices {
				if _, wasNew := ladder.FindOrInsert(store, p, domain.Buy); !wasNew {
					t.Errorf("expected %d to be a new level", p)
				}
			}
			if ladder.Len() != len(prices) {
				t.Errorf("expected %d levels, got %d", len(prices), ladder.Len())
			}

			best, _, ok := ladder.Best()
			if !ok || best != 110 {
				t.Errorf("expected best bid 110, got %d (ok=%v)", best, ok)
			}

			// Re-inserting an existing price must not create a new level.
			h, wasNew := ladder.FindOrInsert(store, 100, domain.Buy)
			if wasNew {
				t.Error("expected existing level to be reused")
			}
			ladder.Remove(h)
			if ladder.Len() != len(prices)-1 {
				t.Errorf("expected %d levels after remove, got %d", len(prices)-1, ladder.Len())
			}

			best, _, ok = ladder.Best()
			if !ok || best != 110 {
				t.Errorf("expected best bid to remain 110 after unrelated remove, got %d", best)
			}
		})
	}
}

func TestLadderBackingsAgreeOnAskOrdering(t *testing.T) {
	for name, factory := range ladderFactories() {
		t.Run(name, func(t *testing.T) {
			store := NewPriceLevelStore(16)
			ladder := factory(false)

			prices := []domain.Price{100, 95, 110, 90, 105}
			for _, p := range prices {
				ladder.FindOrInsert(store, p, domain.Sell)
			}

			best, _, ok := ladder.Best()
			if !ok || best != 90 {
				t.Errorf("expected best ask 90, got %d (ok=%v)", best, ok)
			}
		})
	}
}

// A freshly-constructed array ladder must report an empty top of book.
func TestArrayLadderEmptyBest(t *testing.T) {
	ladder := NewArrayLadder(true, 0)
	if _, _, ok := ladder.Best(); ok {
		t.Error("expected empty ladder to report ok=false")
	}
}

// The array ladder must keep entries strictly ascending by price
// regardless of insertion order, including inserts that land below the
// current head and above the current tail.
func TestArrayLadderMaintainsAscendingOrder(t *testing.T) {
	store := NewPriceLevelStore(16)
	ladder := NewArrayLadder(true, 0)

	for _, p := range []domain.Price{50, 10, 90, 30, 5, 100} {
		ladder.FindOrInsert(store, p, domain.Buy)
	}

	prev := domain.Price(0)
	for i, e := range ladder.entries {
		if i > 0 && e.price <= prev {
			t.Errorf("entries not strictly ascending at index %d: %d after %d", i, e.price, prev)
		}
		prev = e.price
	}
}
