package feed

import (
	"encoding/binary"
	"io"
)

// Encoder writes frames in the same length-prefixed layout Decoder reads.
// It exists for tests; nothing in the core or in cmd/bookctl encodes a
// frame.
type Encoder struct {
	w io.Writer
}

func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

func (e *Encoder) writeFrame(payload []byte) error {
	var lenBuf [2]byte
	binary.BigEndian.PutUint16(lenBuf[:], uint16(len(payload)))
	if _, err := e.w.Write(lenBuf[:]); err != nil {
		return err
	}
	_, err := e.w.Write(payload)
	return err
}

func putHeader(buf []byte, tag Tag, stockLocate uint16) {
	buf[0] = byte(tag)
	binary.BigEndian.PutUint16(buf[1:3], stockLocate)
}

// WriteAddOrder encodes a TagAddOrder frame.
func (e *Encoder) WriteAddOrder(stockLocate uint16, ev AddOrder) error {
	buf := make([]byte, 3+8+1+4+4)
	putHeader(buf, TagAddOrder, stockLocate)
	binary.BigEndian.PutUint64(buf[3:11], uint64(ev.Reference))
	side := byte('B')
	if ev.Side.String() == "Sell" {
		side = 'S'
	}
	buf[11] = side
	binary.BigEndian.PutUint32(buf[12:16], uint32(ev.Shares))
	binary.BigEndian.PutUint32(buf[16:20], uint32(ev.Price))
	return e.writeFrame(buf)
}

// WriteOrderExecuted encodes a TagOrderExecuted frame.
func (e *Encoder) WriteOrderExecuted(stockLocate uint16, ev OrderExecuted) error {
	buf := make([]byte, 3+8+4)
	putHeader(buf, TagOrderExecuted, stockLocate)
	binary.BigEndian.PutUint64(buf[3:11], uint64(ev.Reference))
	binary.BigEndian.PutUint32(buf[11:15], uint32(ev.Executed))
	return e.writeFrame(buf)
}

// WriteOrderExecutedWithPrice encodes a TagOrderExecutedPrice frame.
func (e *Encoder) WriteOrderExecutedWithPrice(stockLocate uint16, ev OrderExecutedWithPrice) error {
	buf := make([]byte, 3+8+4+1+4)
	putHeader(buf, TagOrderExecutedPrice, stockLocate)
	binary.BigEndian.PutUint64(buf[3:11], uint64(ev.Reference))
	binary.BigEndian.PutUint32(buf[11:15], uint32(ev.Executed))
	if ev.Printable {
		buf[15] = 1
	}
	binary.BigEndian.PutUint32(buf[16:20], uint32(ev.Price))
	return e.writeFrame(buf)
}

// WriteOrderCancelled encodes a TagOrderCancelled frame.
func (e *Encoder) WriteOrderCancelled(stockLocate uint16, ev OrderCancelled) error {
	buf := make([]byte, 3+8+4)
	putHeader(buf, TagOrderCancelled, stockLocate)
	binary.BigEndian.PutUint64(buf[3:11], uint64(ev.Reference))
	binary.BigEndian.PutUint32(buf[11:15], uint32(ev.Cancelled))
	return e.writeFrame(buf)
}

// WriteOrderDelete encodes a TagOrderDelete frame.
func (e *Encoder) WriteOrderDelete(stockLocate uint16, ev OrderDelete) error {
	buf := make([]byte, 3+8)
	putHeader(buf, TagOrderDelete, stockLocate)
	binary.BigEndian.PutUint64(buf[3:11], uint64(ev.Reference))
	return e.writeFrame(buf)
}

// WriteOrderReplace encodes a TagOrderReplace frame.
func (e *Encoder) WriteOrderReplace(stockLocate uint16, ev OrderReplace) error {
	buf := make([]byte, 3+8+8+4+4)
	putHeader(buf, TagOrderReplace, stockLocate)
	binary.BigEndian.PutUint64(buf[3:11], uint64(ev.OldReference))
	binary.BigEndian.PutUint64(buf[11:19], uint64(ev.NewReference))
	binary.BigEndian.PutUint32(buf[19:23], uint32(ev.Price))
	binary.BigEndian.PutUint32(buf[23:27], uint32(ev.Shares))
	return e.writeFrame(buf)
}

// WriteStockDirectory encodes a TagStockDirectory frame. symbol is
// truncated or space-padded to 8 bytes, the same fixed width Decoder
// expects.
func (e *Encoder) WriteStockDirectory(stockLocate uint16, symbol string) error {
	buf := make([]byte, 3+stockDirectorySymbolLen)
	putHeader(buf, TagStockDirectory, stockLocate)
	padded := []byte(symbol)
	if len(padded) > stockDirectorySymbolLen {
		padded = padded[:stockDirectorySymbolLen]
	}
	copy(buf[3:], padded)
	for i := 3 + len(padded); i < len(buf); i++ {
		buf[i] = ' '
	}
	return e.writeFrame(buf)
}
