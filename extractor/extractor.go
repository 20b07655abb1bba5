// Package extractor filters a raw multi-symbol feed file down to one
// instrument's order-lifecycle frames: a symbol-resolution utility
// treated as an external collaborator, described only by the interface
// the core consumes. Ported from original_source/src/bin/extractor.rs's
// two-pass design.
package extractor

import (
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	"bookengine/feed"
)

// ErrSymbolNotFound is returned by Filter when symbol never appears in a
// StockDirectory frame before the directory section ends, mirroring
// extractor.rs printing "symbol not found" and returning without writing
// an output file.
var ErrSymbolNotFound = fmt.Errorf("extractor: symbol not found in stock directory")

// Stats reports what Filter did, for the CLI to print (extractor.rs's
// "Frames scanned: N, kept: M").
type Stats struct {
	StockLocate uint16
	Scanned     int
	Kept        int
}

// Filter performs extractor.rs's two passes, pass 1 over pass1 and pass 2
// over pass2, copying only frames belonging to symbol to w:
//
//  1. Scan StockDirectory frames to resolve symbol -> stock_locate. The
//     directory section is assumed contiguous at the start of the file;
//     scanning stops at the first non-directory frame once the section has
//     started, exactly as extractor.rs does.
//  2. Re-scan every frame and copy verbatim (length prefix and payload,
//     unmodified) those whose stock_locate matches and whose tag is one of
//     the seven order-lifecycle tags (feed.IsOrderTag).
//
// Filter never seeks: pass1 and pass2 must each start at the beginning of
// the same stream; callers typically pass the same file opened twice.
func Filter(pass1, pass2 io.Reader, w io.Writer, symbol string, maxMessages int) (Stats, error) {
	locate, err := resolveStockLocate(pass1, symbol)
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{StockLocate: locate}
	for {
		if maxMessages > 0 && stats.Kept >= maxMessages {
			break
		}

		lenBuf, payload, err := readFrame(pass2)
		if err == io.EOF {
			break
		}
		if err != nil {
			return stats, err
		}
		stats.Scanned++

		if len(payload) < 3 {
			continue // malformed, matching extractor.rs's msg_len < 3 skip
		}
		tag := feed.Tag(payload[0])
		stockLocate := binary.BigEndian.Uint16(payload[1:3])

		if stockLocate != locate || !feed.IsOrderTag(tag) {
			continue
		}

		if _, err := w.Write(lenBuf); err != nil {
			return stats, err
		}
		if _, err := w.Write(payload); err != nil {
			return stats, err
		}
		stats.Kept++
	}
	return stats, nil
}

func resolveStockLocate(r io.Reader, symbol string) (uint16, error) {
	want := strings.ToLower(strings.TrimSpace(symbol))
	directoryStarted := false

	for {
		_, payload, err := readFrame(r)
		if err == io.EOF {
			return 0, ErrSymbolNotFound
		}
		if err != nil {
			return 0, err
		}
		if len(payload) < 3 {
			continue
		}
		tag := feed.Tag(payload[0])
		stockLocate := binary.BigEndian.Uint16(payload[1:3])

		if tag != feed.TagStockDirectory {
			if directoryStarted {
				break // directory section is finished
			}
			continue
		}
		directoryStarted = true

		if len(payload) < 3+8 {
			continue
		}
		stock := strings.ToLower(strings.TrimRight(string(payload[3:11]), " "))
		if stock == want {
			return stockLocate, nil
		}
	}
	return 0, ErrSymbolNotFound
}

func readFrame(r io.Reader) (lenBuf []byte, payload []byte, err error) {
	var lb [2]byte
	if _, err := io.ReadFull(r, lb[:]); err != nil {
		if err == io.ErrUnexpectedEOF {
			return nil, nil, io.EOF
		}
		return nil, nil, err
	}
	length := binary.BigEndian.Uint16(lb[:])
	body := make([]byte, length)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, nil, fmt.Errorf("extractor: truncated frame: %w", err)
	}
	return lb[:], body, nil
}
