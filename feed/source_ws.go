package feed

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// WSSource is the live-feed collaborator treated as external elsewhere:
// it dials a market-data host and streams framed events to a Dispatcher.
// Each binary WebSocket message is treated as one or more concatenated
// length-prefixed frames, decoded with the same Decoder the file-replay
// path uses.
//
// Grounded in the retrieved pack's WebSocket client
// (DimaJoyti-ai-agentic-crypto-browser/internal/binance/websocket.go):
// websocket.DefaultDialer.Dial, conn.ReadMessage, and a reconnect-with-
// backoff loop on read error.
type WSSource struct {
	url        string
	log        *zap.Logger
	maxRetries int
}

// NewWSSource constructs a source dialing url. maxRetries bounds the
// reconnect-with-backoff loop; 0 means retry forever.
func NewWSSource(url string, log *zap.Logger, maxRetries int) *WSSource {
	return &WSSource{url: url, log: log, maxRetries: maxRetries}
}

// Run dials url and feeds decoded events to dispatcher until ctx is
// cancelled or the retry budget is exhausted.
func (s *WSSource) Run(ctx context.Context, dispatcher *Dispatcher) error {
	attempt := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := s.runOnce(ctx, dispatcher)
		if err == nil || ctx.Err() != nil {
			return ctx.Err()
		}

		attempt++
		if s.maxRetries > 0 && attempt > s.maxRetries {
			return fmt.Errorf("feed: websocket source %q: %w (retries exhausted)", s.url, err)
		}
		s.log.Warn("websocket connection dropped, reconnecting",
			zap.String("url", s.url), zap.Int("attempt", attempt), zap.Error(err))

		backoff := time.Duration(attempt) * time.Second
		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (s *WSSource) runOnce(ctx context.Context, dispatcher *Dispatcher) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, s.url, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close()

	for {
		messageType, message, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("read: %w", err)
		}
		if messageType != websocket.BinaryMessage {
			continue
		}

		dec := NewDecoder(bytes.NewReader(message))
		for {
			ev, err := dec.Next()
			if err == io.EOF {
				break
			}
			if err != nil {
				s.log.Error("dropping malformed frame from live feed", zap.Error(err))
				break
			}
			dispatcher.Submit(ev)
		}
	}
}
