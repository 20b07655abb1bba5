// Package domain holds the value types shared by the order book core and
// its surrounding feed/extractor/CLI layers: sides, prices, volumes, and
// order identifiers as they appear on an exchange market-data feed.
package domain

import "github.com/shopspring/decimal"

// Side is the two-valued tag every order and price level carries.
type Side uint8

const (
	Buy Side = iota
	Sell
)

func (s Side) String() string {
	if s == Buy {
		return "Buy"
	}
	return "Sell"
}

// Price is a raw exchange price expressed in fixed-point ticks. All core
// arithmetic stays in this integer domain; decimal conversion only happens
// at the API boundary via Decimal.
type Price uint32

// Volume is a resting or traded quantity in whatever unit the feed uses
// (shares, lots, base-asset units).
type Volume uint32

// OrderID is the exchange-assigned identifier carried on every event in a
// single feed session. It is unique within the stream but not necessarily
// dense across the whole id space a session might eventually see.
type OrderID uint64

// TickSize is the configurable multiplier between a raw Price tick and its
// human-readable decimal value. The default matches the source convention
// of ten-thousandths of a currency unit (raw 1234500 -> 123.4500).
type TickSize struct {
	value decimal.Decimal
}

// DefaultTickSize returns the ten-thousandths convention described on
// TickSize.
func DefaultTickSize() TickSize {
	return TickSize{value: decimal.New(1, -4)}
}

// NewTickSize parses a decimal tick multiplier, e.g. "0.01" for cents.
func NewTickSize(raw string) (TickSize, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return TickSize{}, err
	}
	return TickSize{value: d}, nil
}

// Decimal converts a raw tick price to its human-readable decimal value.
// This is an API-boundary convenience only; nothing inside the orderbook
// package calls it.
func (p Price) Decimal(tick TickSize) decimal.Decimal {
	return decimal.NewFromInt(int64(p)).Mul(tick.value)
}

// Decimal returns the tick multiplier itself as a decimal.Decimal, e.g.
// for printing "tick size: 0.0001" in a config dump.
func (t TickSize) Decimal() decimal.Decimal {
	return t.value
}
