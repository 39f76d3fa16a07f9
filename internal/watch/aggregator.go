// Package watch merges the store's two realtime streams — day-filtered
// shifts and the full click log — into a single consistent per-day view.
package watch

import (
	"sync"
	"time"

	"github.com/okanz/shiftwatch/internal/store"
)

// Aggregator owns one shift subscription and one click subscription and
// recomputes the full View whenever either stream pushes a snapshot. The
// projection state lives entirely inside the run goroutine; consumers only
// ever see completed views on the Updates channel.
type Aggregator struct {
	store     *store.Store
	updates   chan View
	setDay    chan time.Time
	done      chan struct{}
	closeOnce sync.Once
}

// New subscribes to both streams for the given day and starts aggregating.
func New(s *store.Store, day time.Time) (*Aggregator, error) {
	shiftSub, err := s.SubscribeShifts(day)
	if err != nil {
		return nil, err
	}
	clickSub, err := s.SubscribeClicks()
	if err != nil {
		shiftSub.Unsubscribe()
		return nil, err
	}

	a := &Aggregator{
		store:   s,
		updates: make(chan View, 1),
		setDay:  make(chan time.Time),
		done:    make(chan struct{}),
	}
	go a.run(day, shiftSub, clickSub)
	return a, nil
}

// Updates delivers recomputed views, coalesced to the latest. The channel is
// closed by Close.
func (a *Aggregator) Updates() <-chan View {
	return a.updates
}

// SetDay switches the shift stream to a new calendar day. The old shift
// subscription is torn down and replaced; the click subscription persists.
func (a *Aggregator) SetDay(day time.Time) {
	select {
	case a.setDay <- day:
	case <-a.done:
	}
}

// Close unsubscribes both streams and closes the Updates channel. In-flight
// store writes are unaffected; only future pushes stop.
func (a *Aggregator) Close() {
	a.closeOnce.Do(func() { close(a.done) })
}

func (a *Aggregator) run(day time.Time, shiftSub *store.ShiftSubscription, clickSub *store.ClickSubscription) {
	defer func() {
		shiftSub.Unsubscribe()
		clickSub.Unsubscribe()
		close(a.updates)
	}()

	// Latest full snapshot of each stream. Every recompute below rebuilds
	// the view from these from scratch; the result is the same no matter
	// which stream delivered last.
	var shifts []store.Shift
	var clicks []store.Click

	for {
		select {
		case snap, ok := <-shiftSub.Snapshots():
			if !ok {
				return
			}
			shifts = snap

		case snap, ok := <-clickSub.Snapshots():
			if !ok {
				return
			}
			clicks = snap

		case newDay := <-a.setDay:
			newSub, err := a.store.SubscribeShifts(newDay)
			if err != nil {
				// Keep the current day's subscription; the view is
				// unchanged and the caller's day switch simply fails open.
				continue
			}
			shiftSub.Unsubscribe()
			shiftSub = newSub
			day = newDay
			shifts = nil // replaced by the new subscription's initial snapshot

		case <-a.done:
			return
		}

		publish(a.updates, buildView(day, shifts, clicks))
	}
}

// publish replaces any unconsumed view so the consumer always wakes to the
// newest one. Single sender; the send after the drain cannot block.
func publish(ch chan View, v View) {
	select {
	case <-ch:
	default:
	}
	ch <- v
}
