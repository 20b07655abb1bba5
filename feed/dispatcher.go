package feed

import (
	"fmt"
	"runtime"
	"time"

	"go.uber.org/zap"

	"bookengine/orderbook"
)

// Dispatcher is the single-writer event-application loop: one goroutine,
// one channel intake, driving exactly one OrderBook. It is adapted from a
// per-symbol matching-engine goroutine shape but carries no
// crossing/matching logic and no multi-symbol registry. It only ever
// calls OrderBook.Add/Execute/Cancel/Delete/Replace; it never decides a
// trade.
type Dispatcher struct {
	book   *orderbook.OrderBook
	log    *zap.Logger
	events chan Event
	stop   chan struct{}
	done   chan struct{}

	onApplied func(tag Tag, err error, latency time.Duration)
}

// NewDispatcher constructs a dispatcher over book. bufferSize sizes the
// intake channel; 0 selects an unbuffered channel.
func NewDispatcher(book *orderbook.OrderBook, log *zap.Logger, bufferSize int) *Dispatcher {
	return &Dispatcher{
		book:   book,
		log:    log,
		events: make(chan Event, bufferSize),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// OnApplied registers a callback invoked after every event is applied
// (err is nil on success), with the wall-clock time d.apply took, for
// metrics instrumentation. Must be called before Start.
func (d *Dispatcher) OnApplied(fn func(tag Tag, err error, latency time.Duration)) {
	d.onApplied = fn
}

// Submit enqueues a decoded event for application. Blocks if the intake
// channel is full — backpressure is intentional; the core has no buffering
// of its own.
func (d *Dispatcher) Submit(ev Event) {
	d.events <- ev
}

// Start runs the dispatch loop in a dedicated goroutine, locked to its OS
// thread for cache locality.
func (d *Dispatcher) Start() {
	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		defer close(d.done)

		handle := func(ev Event) {
			start := time.Now()
			err := d.apply(ev)
			elapsed := time.Since(start)
			if d.onApplied != nil {
				d.onApplied(ev.Tag, err, elapsed)
			}
			if err != nil {
				d.log.Error("event application failed",
					zap.String("event_type", string(ev.Tag)),
					zap.Error(err))
			}
		}

		for {
			select {
			case <-d.stop:
				// Apply every event already queued before exiting.
				for {
					select {
					case ev := <-d.events:
						handle(ev)
					default:
						return
					}
				}
			case ev := <-d.events:
				handle(ev)
			}
		}
	}()
}

// Stop signals the dispatch loop to exit and waits for it to drain.
func (d *Dispatcher) Stop() {
	close(d.stop)
	<-d.done
}

// apply maps one decoded Event onto the OrderBook façade's event table.
// A malformed or unknown event never panics; it is reported through the
// normal error-return path the façade already uses.
func (d *Dispatcher) apply(ev Event) error {
	switch ev.Tag {
	case TagAddOrder, TagAddOrderAttributed:
		if ev.AddOrder == nil {
			return fmt.Errorf("feed: %c frame missing AddOrder body", ev.Tag)
		}
		a := ev.AddOrder
		return d.book.Add(a.Reference, a.Price, a.Shares, a.Side)

	case TagOrderExecuted:
		if ev.OrderExecuted == nil {
			return fmt.Errorf("feed: %c frame missing OrderExecuted body", ev.Tag)
		}
		e := ev.OrderExecuted
		return d.book.Execute(e.Reference, e.Executed)

	case TagOrderExecutedPrice:
		if ev.OrderExecutedPx == nil {
			return fmt.Errorf("feed: %c frame missing OrderExecutedWithPrice body", ev.Tag)
		}
		e := ev.OrderExecutedPx
		if !e.Printable {
			// Non-printable prints are not economically relevant and
			// must not touch the book.
			return nil
		}
		return d.book.Execute(e.Reference, e.Executed)

	case TagOrderCancelled:
		if ev.OrderCancelled == nil {
			return fmt.Errorf("feed: %c frame missing OrderCancelled body", ev.Tag)
		}
		c := ev.OrderCancelled
		return d.book.Cancel(c.Reference, c.Cancelled)

	case TagOrderDelete:
		if ev.OrderDelete == nil {
			return fmt.Errorf("feed: %c frame missing OrderDelete body", ev.Tag)
		}
		return d.book.Delete(ev.OrderDelete.Reference)

	case TagOrderReplace:
		if ev.OrderReplace == nil {
			return fmt.Errorf("feed: %c frame missing OrderReplace body", ev.Tag)
		}
		r := ev.OrderReplace
		return d.book.Replace(r.OldReference, r.NewReference, r.Price, r.Shares)

	case TagStockDirectory:
		// Used only for symbol resolution upstream (extractor package);
		// the core never applies it.
		return nil

	default:
		return nil
	}
}
