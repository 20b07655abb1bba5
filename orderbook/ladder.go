package orderbook

import "bookengine/domain"

// SideLadder is the ordered sequence of (price, PriceLevel handle) pairs
// for one side of the book. Exactly one instance exists per side; both are
// kept sorted ascending by price — the façade reads bids from the tail
// and asks from the head.
//
// Four implementations satisfy this contract: the array-backed ladder
// below (the default SideLadder, O(1) top-of-book, O(k) deep insert) and
// three alternative backings (redblack-tree, skip-list, B-tree) for
// workloads whose updates skew away from the top of book.
type SideLadder interface {
	// FindOrInsert locates the level at price, creating and inserting a
	// fresh zero-volume PriceLevel into store if none exists yet. wasNew
	// reports whether a new level (and ladder slot) was created.
	FindOrInsert(store *PriceLevelStore, price domain.Price, side domain.Side) (handle Handle, wasNew bool)

	// Remove drops the ladder slot referencing handle; it does not touch
	// the store. The façade calls it before destroying the level in store.
	Remove(handle Handle)

	// Best returns the top-of-book (price, handle) pair, or ok=false if
	// the ladder is empty.
	Best() (price domain.Price, handle Handle, ok bool)

	// Len reports the number of live levels on this side.
	Len() int
}

// arrayEntry is one (price, handle) pair in the array ladder.
type arrayEntry struct {
	price  domain.Price
	handle Handle
}

// ArrayLadder is the default SideLadder: a single contiguous, ascending-by-
// price slice. Both find_or_insert and remove scan from the tail inward:
// most real-feed activity lands within a handful of ticks of the top, so
// the amortised cost is small despite the O(k) worst case. Bids read
// their best price from the tail; asks read theirs from the head — the
// scan direction is the same for both sides, only the accessor differs.
type ArrayLadder struct {
	entries  []arrayEntry
	bidsSide bool // true for bids (best = tail), false for asks (best = head)
}

// NewArrayLadder constructs the default ladder for one side. isBid selects
// the accessor convention (bids read the tail, asks read the head).
func NewArrayLadder(isBid bool, capacityHint int) *ArrayLadder {
	return &ArrayLadder{
		entries:  make([]arrayEntry, 0, capacityHint),
		bidsSide: isBid,
	}
}

func (l *ArrayLadder) FindOrInsert(store *PriceLevelStore, price domain.Price, side domain.Side) (Handle, bool) {
	n := len(l.entries)
	if n == 0 {
		h := store.Insert(PriceLevel{Price: price, Side: side})
		l.entries = append(l.entries, arrayEntry{price: price, handle: h})
		return h, true
	}

	// Scan from the tail inward. Ascending order means: walking toward the
	// head, prices only decrease, so the first entry smaller than price is
	// its immediate predecessor.
	i := n - 1
	for i >= 0 && l.entries[i].price > price {
		i--
	}
	if i >= 0 && l.entries[i].price == price {
		return l.entries[i].handle, false
	}

	h := store.Insert(PriceLevel{Price: price, Side: side})
	insertAt := i + 1
	l.entries = append(l.entries, arrayEntry{})
	copy(l.entries[insertAt+1:], l.entries[insertAt:])
	l.entries[insertAt] = arrayEntry{price: price, handle: h}
	return h, true
}

func (l *ArrayLadder) Remove(handle Handle) {
	for i := len(l.entries) - 1; i >= 0; i-- {
		if l.entries[i].handle == handle {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			return
		}
	}
}

func (l *ArrayLadder) Best() (domain.Price, Handle, bool) {
	n := len(l.entries)
	if n == 0 {
		return 0, Handle{}, false
	}
	if l.bidsSide {
		e := l.entries[n-1]
		return e.price, e.handle, true
	}
	e := l.entries[0]
	return e.price, e.handle, true
}

func (l *ArrayLadder) Len() int {
	return len(l.entries)
}
