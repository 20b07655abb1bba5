package orderbook

import "bookengine/domain"

// defaultOrderCapacity and defaultLevelCapacity size a book for tens of
// thousands of levels and about a million orders, a trading-session-sized
// workload.
const (
	defaultOrderCapacity = 1 << 20
	defaultLevelCapacity = 1 << 16
)

// OrderBook is the façade composing OrderIndex, PriceLevelStore, and the
// two SideLadders into one set of event handlers. It is a book
// reconstructor, not a matching engine: every execute/cancel is applied as
// reported by the feed, never decided here.
//
// All operations are single-threaded; the core performs no I/O and holds
// no lock, a single-writer model.
type OrderBook struct {
	orderIndex *OrderIndex
	levels     *PriceLevelStore
	bids       SideLadder
	asks       SideLadder

	liveOrders int
}

// NewOrderBook constructs a book with the default array-backed ladders
// and generous preallocated capacity.
func NewOrderBook() *OrderBook {
	return NewOrderBookWithLadders(
		NewArrayLadder(true, defaultLevelCapacity),
		NewArrayLadder(false, defaultLevelCapacity),
	)
}

// NewOrderBookWithLadders constructs a book over caller-supplied SideLadder
// implementations, letting a benchmark harness swap in the redblack-tree,
// skip-list, or B-tree backing behind the same contract.
func NewOrderBookWithLadders(bids, asks SideLadder) *OrderBook {
	return NewOrderBookWithCapacity(bids, asks, defaultOrderCapacity, defaultLevelCapacity)
}

// NewOrderBookWithCapacity is NewOrderBookWithLadders with caller-supplied
// preallocation hints, so a deployment can size the order index and level
// arena from its own config.Config.Capacity rather than the built-in
// defaults, pre-reserving generous capacity at construction.
func NewOrderBookWithCapacity(bids, asks SideLadder, orderCapacity, levelCapacity int) *OrderBook {
	return &OrderBook{
		orderIndex: NewOrderIndex(orderCapacity),
		levels:     NewPriceLevelStore(levelCapacity),
		bids:       bids,
		asks:       asks,
	}
}

func (b *OrderBook) ladderFor(side domain.Side) SideLadder {
	if side == domain.Buy {
		return b.bids
	}
	return b.asks
}

// Add records a new resting order.
func (b *OrderBook) Add(id domain.OrderID, price domain.Price, volume domain.Volume, side domain.Side) error {
	if volume == 0 {
		return newOrderError("add", id, ErrZeroVolume)
	}
	if b.orderIndex.IsLive(id) {
		return newOrderError("add", id, ErrOrderAlreadyLive)
	}

	ladder := b.ladderFor(side)
	handle, _ := ladder.FindOrInsert(b.levels, price, side)
	level := b.levels.Get(handle)
	level.Depth++
	level.Volume += uint64(volume)

	b.orderIndex.Insert(id, handle, volume)
	b.liveOrders++
	return nil
}

// reduce implements the shared book-state semantics of execute and cancel:
// both shrink the resting residual at the affected level by delta and are
// indistinguishable to the core past that point.
func (b *OrderBook) reduce(op string, id domain.OrderID, delta domain.Volume) error {
	handle, _, ok := b.orderIndex.Lookup(id)
	if !ok {
		return newOrderError(op, id, ErrUnknownOrder)
	}
	newResidual, err := b.orderIndex.ReduceVolume(id, delta)
	if err != nil {
		return newOrderError(op, id, err)
	}

	level := b.levels.Get(handle)
	level.Volume -= uint64(delta)

	if newResidual == 0 {
		level.Depth--
		b.orderIndex.Remove(id)
		b.liveOrders--
	}

	// Tie-break: volume and depth can both reach zero in the same event;
	// always collapse the level now, never defer.
	if level.Volume == 0 && level.Depth == 0 {
		b.ladderFor(level.Side).Remove(handle)
		b.levels.Remove(handle)
	}
	return nil
}

// Execute applies a reported fill against id's resting order.
func (b *OrderBook) Execute(id domain.OrderID, executedVolume domain.Volume) error {
	return b.reduce("execute", id, executedVolume)
}

// Cancel applies a reported partial (or full) cancellation against id.
func (b *OrderBook) Cancel(id domain.OrderID, cancelledVolume domain.Volume) error {
	return b.reduce("cancel", id, cancelledVolume)
}

// Delete removes id's entire remaining residual.
func (b *OrderBook) Delete(id domain.OrderID) error {
	handle, residual, ok := b.orderIndex.Lookup(id)
	if !ok {
		return newOrderError("delete", id, ErrUnknownOrder)
	}

	level := b.levels.Get(handle)
	level.Volume -= uint64(residual)
	level.Depth--
	b.orderIndex.Remove(id)
	b.liveOrders--

	if level.Volume == 0 && level.Depth == 0 {
		b.ladderFor(level.Side).Remove(handle)
		b.levels.Remove(handle)
	}
	return nil
}

// Replace is semantically delete(oldID) followed by add(newID, newPrice,
// newVolume, side_of(oldID)); side is inherited, never supplied by the
// caller.
func (b *OrderBook) Replace(oldID, newID domain.OrderID, newPrice domain.Price, newVolume domain.Volume) error {
	handle, residual, ok := b.orderIndex.Lookup(oldID)
	if !ok {
		return newOrderError("replace", oldID, ErrUnknownOrder)
	}
	level := b.levels.Get(handle)
	side := level.Side

	level.Volume -= uint64(residual)
	level.Depth--
	b.orderIndex.Remove(oldID)
	b.liveOrders--

	if level.Volume == 0 && level.Depth == 0 {
		b.ladderFor(side).Remove(handle)
		b.levels.Remove(handle)
	}

	return b.Add(newID, newPrice, newVolume, side)
}

// BestBid returns the highest resting buy price, or ok=false if no bids
// are live.
func (b *OrderBook) BestBid() (price domain.Price, ok bool) {
	price, _, ok = b.bids.Best()
	return price, ok
}

// BestAsk returns the lowest resting sell price, or ok=false if no asks
// are live.
func (b *OrderBook) BestAsk() (price domain.Price, ok bool) {
	price, _, ok = b.asks.Best()
	return price, ok
}

// Spread returns best ask minus best bid, or ok=false if either side is
// empty. It never returns a negative or zero sentinel for an empty side —
// a crossed book from a malformed feed is surfaced as whatever (possibly
// negative-looking, wrapped) value the subtraction produces; the core
// does not enforce non-crossing against the feed.
func (b *OrderBook) Spread() (spread domain.Price, ok bool) {
	bid, bidOK := b.BestBid()
	ask, askOK := b.BestAsk()
	if !bidOK || !askOK {
		return 0, false
	}
	return ask - bid, true
}

// Meta reports diagnostic-only aggregate counts.
func (b *OrderBook) Meta() (bidLevels, askLevels, liveLevels, liveOrders int) {
	bidLevels = b.bids.Len()
	askLevels = b.asks.Len()
	return bidLevels, askLevels, bidLevels + askLevels, b.liveOrders
}
