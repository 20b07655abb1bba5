package feed

import (
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	"bookengine/domain"
)

// ErrTruncatedFrame reports a length-prefixed frame whose payload was cut
// short, mirroring extractor.rs's read_exact_or_eof treating a zero-byte
// read mid-frame as corruption rather than clean EOF.
var ErrTruncatedFrame = fmt.Errorf("feed: truncated frame")

// frame byte layout (all multi-byte integers big-endian, matching
// extractor.rs's u16 length prefix and stock_locate fields):
//
//	u16 length        (byte count of everything after this field)
//	u8  tag
//	u16 stock_locate
//	... tag-specific payload
const (
	stockDirectorySymbolLen = 8
)

// Decoder reads length-prefixed frames from an io.Reader and decodes the
// order-lifecycle and stock-directory tags the core and the extractor
// package need. Unknown tags are returned as an Event with only Tag and
// StockLocate set, so
// callers can skip them without the decoder needing to know every wire
// message an exchange feed might carry.
type Decoder struct {
	src io.Reader
}

// NewDecoder wraps r for frame-at-a-time decoding.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{src: r}
}

// Next decodes the next frame, or returns io.EOF once the stream is
// exhausted cleanly between frames.
func (d *Decoder) Next() (Event, error) {
	var lenBuf [2]byte
	if _, err := io.ReadFull(d.src, lenBuf[:]); err != nil {
		if err == io.ErrUnexpectedEOF {
			return Event{}, ErrTruncatedFrame
		}
		return Event{}, err
	}

	length := binary.BigEndian.Uint16(lenBuf[:])
	payload := make([]byte, length)
	if _, err := io.ReadFull(d.src, payload); err != nil {
		return Event{}, fmt.Errorf("%w: %v", ErrTruncatedFrame, err)
	}

	return decodeFrame(payload)
}

func decodeFrame(payload []byte) (Event, error) {
	if len(payload) < 3 {
		return Event{}, fmt.Errorf("feed: frame too short for tag+stock_locate: %d bytes", len(payload))
	}
	tag := Tag(payload[0])
	stockLocate := binary.BigEndian.Uint16(payload[1:3])
	body := payload[3:]

	switch tag {
	case TagAddOrder, TagAddOrderAttributed:
		return decodeAddOrder(tag, stockLocate, body)
	case TagOrderExecuted:
		return decodeOrderExecuted(tag, stockLocate, body)
	case TagOrderExecutedPrice:
		return decodeOrderExecutedWithPrice(tag, stockLocate, body)
	case TagOrderCancelled:
		return decodeOrderCancelled(tag, stockLocate, body)
	case TagOrderDelete:
		return decodeOrderDelete(tag, stockLocate, body)
	case TagOrderReplace:
		return decodeOrderReplace(tag, stockLocate, body)
	case TagStockDirectory:
		return decodeStockDirectory(tag, stockLocate, body)
	default:
		return Event{Tag: tag, StockLocate: stockLocate}, nil
	}
}

// decodeAddOrder handles both TagAddOrder and TagAddOrderAttributed: the
// attribution fields the latter carries are never read, matching
// processor.rs treating both tags identically.
func decodeAddOrder(tag Tag, locate uint16, body []byte) (Event, error) {
	const want = 8 + 1 + 4 + 4
	if len(body) < want {
		return Event{}, fmt.Errorf("feed: short AddOrder body: %d bytes", len(body))
	}
	side := domain.Buy
	if body[8] == 'S' {
		side = domain.Sell
	}
	return Event{
		Tag:         tag,
		StockLocate: locate,
		AddOrder: &AddOrder{
			Reference: domain.OrderID(binary.BigEndian.Uint64(body[0:8])),
			Side:      side,
			Shares:    domain.Volume(binary.BigEndian.Uint32(body[9:13])),
			Price:     domain.Price(binary.BigEndian.Uint32(body[13:17])),
		},
	}, nil
}

func decodeOrderExecuted(tag Tag, locate uint16, body []byte) (Event, error) {
	const want = 8 + 4
	if len(body) < want {
		return Event{}, fmt.Errorf("feed: short OrderExecuted body: %d bytes", len(body))
	}
	return Event{
		Tag:         tag,
		StockLocate: locate,
		OrderExecuted: &OrderExecuted{
			Reference: domain.OrderID(binary.BigEndian.Uint64(body[0:8])),
			Executed:  domain.Volume(binary.BigEndian.Uint32(body[8:12])),
		},
	}, nil
}

func decodeOrderExecutedWithPrice(tag Tag, locate uint16, body []byte) (Event, error) {
	const want = 8 + 4 + 1 + 4
	if len(body) < want {
		return Event{}, fmt.Errorf("feed: short OrderExecutedWithPrice body: %d bytes", len(body))
	}
	return Event{
		Tag:         tag,
		StockLocate: locate,
		OrderExecutedPx: &OrderExecutedWithPrice{
			Reference: domain.OrderID(binary.BigEndian.Uint64(body[0:8])),
			Executed:  domain.Volume(binary.BigEndian.Uint32(body[8:12])),
			Printable: body[12] != 0,
			Price:     domain.Price(binary.BigEndian.Uint32(body[13:17])),
		},
	}, nil
}

func decodeOrderCancelled(tag Tag, locate uint16, body []byte) (Event, error) {
	const want = 8 + 4
	if len(body) < want {
		return Event{}, fmt.Errorf("feed: short OrderCancelled body: %d bytes", len(body))
	}
	return Event{
		Tag:         tag,
		StockLocate: locate,
		OrderCancelled: &OrderCancelled{
			Reference: domain.OrderID(binary.BigEndian.Uint64(body[0:8])),
			Cancelled: domain.Volume(binary.BigEndian.Uint32(body[8:12])),
		},
	}, nil
}

func decodeOrderDelete(tag Tag, locate uint16, body []byte) (Event, error) {
	const want = 8
	if len(body) < want {
		return Event{}, fmt.Errorf("feed: short OrderDelete body: %d bytes", len(body))
	}
	return Event{
		Tag:         tag,
		StockLocate: locate,
		OrderDelete: &OrderDelete{
			Reference: domain.OrderID(binary.BigEndian.Uint64(body[0:8])),
		},
	}, nil
}

func decodeOrderReplace(tag Tag, locate uint16, body []byte) (Event, error) {
	const want = 8 + 8 + 4 + 4
	if len(body) < want {
		return Event{}, fmt.Errorf("feed: short OrderReplace body: %d bytes", len(body))
	}
	return Event{
		Tag:         tag,
		StockLocate: locate,
		OrderReplace: &OrderReplace{
			OldReference: domain.OrderID(binary.BigEndian.Uint64(body[0:8])),
			NewReference: domain.OrderID(binary.BigEndian.Uint64(body[8:16])),
			Price:        domain.Price(binary.BigEndian.Uint32(body[16:20])),
			Shares:       domain.Volume(binary.BigEndian.Uint32(body[20:24])),
		},
	}, nil
}

func decodeStockDirectory(tag Tag, locate uint16, body []byte) (Event, error) {
	if len(body) < stockDirectorySymbolLen {
		return Event{}, fmt.Errorf("feed: short StockDirectory body: %d bytes", len(body))
	}
	symbol := strings.TrimRight(string(body[:stockDirectorySymbolLen]), " ")
	return Event{
		Tag:         tag,
		StockLocate: locate,
		StockDirectory: &StockDirectory{
			Stock: symbol,
		},
	}, nil
}
