package orderbook

import (
	"errors"
	"testing"

	"bookengine/domain"
)

// Only bids: add 990 buy orders at prices 10..999, volume 10 each.
func TestOnlyBids(t *testing.T) {
	ob := NewOrderBook()
	for p := domain.Price(10); p <= 999; p++ {
		id := domain.OrderID(p - 9)
		if err := ob.Add(id, p, 10, domain.Buy); err != nil {
			t.Fatalf("add(%d): %v", id, err)
		}
	}

	bestBid, ok := ob.BestBid()
	if !ok || bestBid != 999 {
		t.Errorf("expected best bid 999, got %d (ok=%v)", bestBid, ok)
	}
	if _, ok := ob.BestAsk(); ok {
		t.Error("expected no best ask")
	}

	bidLevels, askLevels, _, _ := ob.Meta()
	if bidLevels != 990 {
		t.Errorf("expected 990 bid levels, got %d", bidLevels)
	}
	if askLevels != 0 {
		t.Errorf("expected 0 ask levels, got %d", askLevels)
	}
}

// Only asks: symmetric to TestOnlyBids.
func TestOnlyAsks(t *testing.T) {
	ob := NewOrderBook()
	for p := domain.Price(10); p <= 999; p++ {
		id := domain.OrderID(p - 9)
		if err := ob.Add(id, p, 10, domain.Sell); err != nil {
			t.Fatalf("add(%d): %v", id, err)
		}
	}

	bestAsk, ok := ob.BestAsk()
	if !ok || bestAsk != 10 {
		t.Errorf("expected best ask 10, got %d (ok=%v)", bestAsk, ok)
	}
	if _, ok := ob.BestBid(); ok {
		t.Error("expected no best bid")
	}
}

// Simple non-crossing add: sells at 10 and 11, a bid at 9. Expect spread 1.
func TestSimpleNonCrossingAdd(t *testing.T) {
	ob := NewOrderBook()
	mustAdd(t, ob, 1, 10, 10, domain.Sell)
	mustAdd(t, ob, 2, 11, 10, domain.Sell)
	mustAdd(t, ob, 3, 9, 10, domain.Buy)

	bid, _ := ob.BestBid()
	ask, _ := ob.BestAsk()
	if bid != 9 {
		t.Errorf("expected best bid 9, got %d", bid)
	}
	if ask != 10 {
		t.Errorf("expected best ask 10, got %d", ask)
	}
	spread, ok := ob.Spread()
	if !ok || spread != 1 {
		t.Errorf("expected spread 1, got %d (ok=%v)", spread, ok)
	}

	_, _, liveLevels, liveOrders := ob.Meta()
	if liveLevels != 3 {
		t.Errorf("expected 3 live levels, got %d", liveLevels)
	}
	if liveOrders != 3 {
		t.Errorf("expected 3 live orders, got %d", liveOrders)
	}
}

// Partial execute then delete: level and order state must track the
// residual exactly, and the level must vanish once the order is deleted.
func TestPartialExecuteThenDelete(t *testing.T) {
	ob := NewOrderBook()
	mustAdd(t, ob, 1, 100, 10, domain.Buy)

	if err := ob.Execute(1, 3); err != nil {
		t.Fatalf("execute: %v", err)
	}

	handle, residual, ok := ob.orderIndex.Lookup(1)
	if !ok {
		t.Fatal("order 1 should still be live")
	}
	if residual != 7 {
		t.Errorf("expected residual 7, got %d", residual)
	}
	level := ob.levels.Get(handle)
	if level.Volume != 7 || level.Depth != 1 {
		t.Errorf("expected level volume=7 depth=1, got volume=%d depth=%d", level.Volume, level.Depth)
	}

	if err := ob.Delete(1); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := ob.BestBid(); ok {
		t.Error("expected bid ladder empty after delete")
	}
	if ob.levels.Get(handle) != nil {
		t.Error("expected level destroyed after delete")
	}
}

// Replace: old order's level must vanish, new order must land on its own
// level with the replacement price and volume.
func TestReplace(t *testing.T) {
	ob := NewOrderBook()
	mustAdd(t, ob, 1, 100, 10, domain.Buy)

	if err := ob.Replace(1, 2, 101, 5); err != nil {
		t.Fatalf("replace: %v", err)
	}

	if ob.orderIndex.IsLive(1) {
		t.Error("expected order 1 to no longer be live")
	}
	handle, residual, ok := ob.orderIndex.Lookup(2)
	if !ok {
		t.Fatal("order 2 should be live")
	}
	if residual != 5 {
		t.Errorf("expected order 2 residual 5, got %d", residual)
	}
	level := ob.levels.Get(handle)
	if level.Price != 101 {
		t.Errorf("expected level price 101, got %d", level.Price)
	}

	bid, ok := ob.BestBid()
	if !ok || bid != 101 {
		t.Errorf("expected only level 101 in bid ladder, got %d (ok=%v)", bid, ok)
	}
}

// Level collapse: three sells at the same price, fully executed in
// sequence. The level must disappear exactly on the event that drains it.
func TestLevelCollapse(t *testing.T) {
	ob := NewOrderBook()
	mustAdd(t, ob, 1, 50, 4, domain.Sell)
	mustAdd(t, ob, 2, 50, 5, domain.Sell)
	mustAdd(t, ob, 3, 50, 6, domain.Sell)

	if err := ob.Execute(1, 4); err != nil {
		t.Fatalf("execute 1: %v", err)
	}
	if err := ob.Execute(2, 5); err != nil {
		t.Fatalf("execute 2: %v", err)
	}
	if _, ok := ob.BestAsk(); !ok {
		t.Fatal("expected level at 50 still live with order 3 resting")
	}
	if err := ob.Execute(3, 6); err != nil {
		t.Fatalf("execute 3: %v", err)
	}

	if _, ok := ob.BestAsk(); ok {
		t.Error("expected ask ladder empty after final execute")
	}
	_, askLevels, _, _ := ob.Meta()
	if askLevels != 0 {
		t.Errorf("expected 0 ask levels, got %d", askLevels)
	}
}

func TestAddRejectsZeroVolume(t *testing.T) {
	ob := NewOrderBook()
	err := ob.Add(1, 100, 0, domain.Buy)
	if !errors.Is(err, ErrZeroVolume) {
		t.Errorf("expected ErrZeroVolume, got %v", err)
	}
}

func TestAddRejectsDuplicateLiveID(t *testing.T) {
	ob := NewOrderBook()
	mustAdd(t, ob, 1, 100, 10, domain.Buy)
	err := ob.Add(1, 200, 5, domain.Sell)
	if !errors.Is(err, ErrOrderAlreadyLive) {
		t.Errorf("expected ErrOrderAlreadyLive, got %v", err)
	}
}

func TestExecuteUnknownOrderIsFatal(t *testing.T) {
	ob := NewOrderBook()
	err := ob.Execute(999, 1)
	if !errors.Is(err, ErrUnknownOrder) {
		t.Errorf("expected ErrUnknownOrder, got %v", err)
	}
}

func TestExecuteResidualUnderflowIsFatal(t *testing.T) {
	ob := NewOrderBook()
	mustAdd(t, ob, 1, 100, 10, domain.Buy)
	err := ob.Execute(1, 11)
	if !errors.Is(err, ErrResidualUnderflow) {
		t.Errorf("expected ErrResidualUnderflow, got %v", err)
	}
}

// Execute and cancel are equivalent for book-state purposes.
func TestExecuteCancelEquivalence(t *testing.T) {
	executed := NewOrderBook()
	mustAdd(t, executed, 1, 100, 10, domain.Buy)
	if err := executed.Execute(1, 4); err != nil {
		t.Fatalf("execute: %v", err)
	}

	cancelled := NewOrderBook()
	mustAdd(t, cancelled, 1, 100, 10, domain.Buy)
	if err := cancelled.Cancel(1, 4); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	eBid, _ := executed.BestBid()
	cBid, _ := cancelled.BestBid()
	if eBid != cBid {
		t.Errorf("expected matching best bid, got execute=%d cancel=%d", eBid, cBid)
	}
}

func mustAdd(t *testing.T, ob *OrderBook, id domain.OrderID, price domain.Price, vol domain.Volume, side domain.Side) {
	t.Helper()
	if err := ob.Add(id, price, vol, side); err != nil {
		t.Fatalf("add(%d): %v", id, err)
	}
}
