// Package feed turns a decoded market-data stream into calls against an
// orderbook.OrderBook. The wire format and dispatch loop are the
// collaborators treated as already-decoded external input elsewhere;
// this package is what makes that input concrete and runnable.
package feed

import "bookengine/domain"

// Tag is the one-byte message discriminant carried on every frame, the
// same tag alphabet original_source/src/bin/extractor.rs filters on and
// original_source/src/bin/processor.rs dispatches on.
type Tag byte

const (
	TagAddOrder           Tag = 'A'
	TagAddOrderAttributed Tag = 'F'
	TagOrderExecuted      Tag = 'E'
	TagOrderExecutedPrice Tag = 'C'
	TagOrderCancelled     Tag = 'X'
	TagOrderDelete        Tag = 'D'
	TagOrderReplace       Tag = 'U'
	TagStockDirectory     Tag = 'R'
)

// IsOrderTag reports whether tag is one of the seven order-lifecycle
// messages the core consumes, mirroring extractor.rs's is_order_tag.
func IsOrderTag(tag Tag) bool {
	switch tag {
	case TagAddOrder, TagAddOrderAttributed, TagOrderExecuted, TagOrderExecutedPrice,
		TagOrderCancelled, TagOrderDelete, TagOrderReplace:
		return true
	default:
		return false
	}
}

// Event is the decoded, typed representation of one frame. Exactly one of
// the typed payload fields is meaningful, selected by Tag — this mirrors
// itchy::Body's enum shape from the original source without needing a
// sum-type library.
type Event struct {
	Tag         Tag
	StockLocate uint16

	AddOrder        *AddOrder
	OrderExecuted   *OrderExecuted
	OrderExecutedPx *OrderExecutedWithPrice
	OrderCancelled  *OrderCancelled
	OrderDelete     *OrderDelete
	OrderReplace    *OrderReplace
	StockDirectory  *StockDirectory
}

// AddOrder is shared by TagAddOrder and TagAddOrderAttributed; attribution
// fields the original carries are not decoded since the core ignores them.
type AddOrder struct {
	Reference domain.OrderID
	Side      domain.Side
	Shares    domain.Volume
	Price     domain.Price
}

// OrderExecuted reports an unconditional fill.
type OrderExecuted struct {
	Reference domain.OrderID
	Executed  domain.Volume
}

// OrderExecutedWithPrice additionally carries the printable flag: the core
// must apply the fill only when Printable is true.
type OrderExecutedWithPrice struct {
	Reference domain.OrderID
	Executed  domain.Volume
	Printable bool
	Price     domain.Price
}

// OrderCancelled reports a partial (or full) cancellation.
type OrderCancelled struct {
	Reference domain.OrderID
	Cancelled domain.Volume
}

// OrderDelete removes an order's entire remaining residual.
type OrderDelete struct {
	Reference domain.OrderID
}

// OrderReplace is a combined cancel-and-add.
type OrderReplace struct {
	OldReference domain.OrderID
	NewReference domain.OrderID
	Price        domain.Price
	Shares       domain.Volume
}

// StockDirectory resolves a ticker symbol to the stock_locate used on every
// other frame in the session; it is never applied to the book, only
// consumed by the extractor package's symbol-resolution pass.
type StockDirectory struct {
	Stock string
}
