package orderbook

import (
	"testing"

	"bookengine/domain"
)

func TestPriceLevelStoreInsertGet(t *testing.T) {
	store := NewPriceLevelStore(0)
	h := store.Insert(PriceLevel{Price: 100, Side: domain.Buy})

	level := store.Get(h)
	if level == nil {
		t.Fatal("expected level to be retrievable")
	}
	if level.Price != 100 || level.Side != domain.Buy {
		t.Errorf("unexpected level: %+v", level)
	}
}

func TestPriceLevelStoreRemoveInvalidatesHandle(t *testing.T) {
	store := NewPriceLevelStore(0)
	h := store.Insert(PriceLevel{Price: 100, Side: domain.Buy})
	store.Remove(h)

	if store.Get(h) != nil {
		t.Error("expected handle to be invalid after remove")
	}
}

// A recycled slot must bump its generation: a handle captured before the
// slot was recycled must not resolve to the new occupant.
func TestPriceLevelStoreGenerationGuardsStaleHandle(t *testing.T) {
	store := NewPriceLevelStore(0)
	stale := store.Insert(PriceLevel{Price: 100, Side: domain.Buy})
	store.Remove(stale)

	fresh := store.Insert(PriceLevel{Price: 200, Side: domain.Sell})
	if fresh.index != stale.index {
		t.Fatalf("expected slot reuse for test to be meaningful, got fresh=%v stale=%v", fresh, stale)
	}

	if store.Get(stale) != nil {
		t.Error("expected stale handle to fail after slot recycling")
	}
	freshLevel := store.Get(fresh)
	if freshLevel == nil || freshLevel.Price != 200 {
		t.Errorf("expected fresh handle to resolve to its own level, got %+v", freshLevel)
	}
}

func TestPriceLevelStoreLen(t *testing.T) {
	store := NewPriceLevelStore(0)
	a := store.Insert(PriceLevel{Price: 1, Side: domain.Buy})
	store.Insert(PriceLevel{Price: 2, Side: domain.Buy})
	if store.Len() != 2 {
		t.Errorf("expected len 2, got %d", store.Len())
	}
	store.Remove(a)
	if store.Len() != 1 {
		t.Errorf("expected len 1 after remove, got %d", store.Len())
	}
}
