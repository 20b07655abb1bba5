package orderbook

import (
	"errors"
	"testing"
)

func TestOrderIndexInsertLookup(t *testing.T) {
	idx := NewOrderIndex(0)
	h := Handle{index: 3, generation: 1}
	idx.Insert(42, h, 10)

	got, residual, ok := idx.Lookup(42)
	if !ok {
		t.Fatal("expected id 42 to be live")
	}
	if got != h || residual != 10 {
		t.Errorf("expected handle=%v residual=10, got handle=%v residual=%d", h, got, residual)
	}
}

func TestOrderIndexGrowsToID(t *testing.T) {
	idx := NewOrderIndex(0)
	idx.Insert(1000, Handle{}, 1)
	if !idx.IsLive(1000) {
		t.Error("expected index to grow to accommodate id 1000")
	}
	if idx.IsLive(999) {
		t.Error("expected id 999 to remain not live")
	}
}

func TestOrderIndexLookupUnknown(t *testing.T) {
	idx := NewOrderIndex(0)
	if _, _, ok := idx.Lookup(5); ok {
		t.Error("expected lookup of never-inserted id to fail")
	}
}

func TestOrderIndexReduceVolume(t *testing.T) {
	idx := NewOrderIndex(0)
	idx.Insert(1, Handle{}, 10)

	residual, err := idx.ReduceVolume(1, 4)
	if err != nil {
		t.Fatalf("reduceVolume: %v", err)
	}
	if residual != 6 {
		t.Errorf("expected residual 6, got %d", residual)
	}
}

func TestOrderIndexReduceVolumeUnderflow(t *testing.T) {
	idx := NewOrderIndex(0)
	idx.Insert(1, Handle{}, 10)

	if _, err := idx.ReduceVolume(1, 11); !errors.Is(err, ErrResidualUnderflow) {
		t.Errorf("expected ErrResidualUnderflow, got %v", err)
	}
}

func TestOrderIndexRemoveThenLookupFails(t *testing.T) {
	idx := NewOrderIndex(0)
	idx.Insert(1, Handle{}, 10)
	idx.Remove(1)

	if idx.IsLive(1) {
		t.Error("expected id 1 to no longer be live after remove")
	}
	if _, _, ok := idx.Lookup(1); ok {
		t.Error("expected lookup to fail after remove")
	}
}

func TestOrderIndexReserve(t *testing.T) {
	idx := NewOrderIndex(0)
	idx.Reserve(100)
	idx.Insert(50, Handle{}, 1)
	if !idx.IsLive(50) {
		t.Error("expected id 50 live after reserve+insert")
	}
}
