package store

import (
	"fmt"
	"time"
)

// Realtime subscriptions. Each committed write re-runs every subscriber's
// query and pushes the full matching result set — snapshot semantics, never
// deltas. Channels are buffered with capacity one and pushes are
// latest-wins: a slow consumer can miss intermediate snapshots but always
// sees the newest one. Unsubscribe closes the channel and suppresses all
// future pushes; it never cancels an in-flight write.

// ShiftSubscription streams day-filtered shift snapshots, newest first.
type ShiftSubscription struct {
	id    int
	store *Store
	day   time.Time
	ch    chan []Shift
}

// Snapshots returns the channel snapshots are delivered on. The channel is
// closed by Unsubscribe.
func (sub *ShiftSubscription) Snapshots() <-chan []Shift {
	return sub.ch
}

func (sub *ShiftSubscription) Unsubscribe() {
	sub.store.mu.Lock()
	defer sub.store.mu.Unlock()
	if _, ok := sub.store.shiftSubs[sub.id]; !ok {
		return
	}
	delete(sub.store.shiftSubs, sub.id)
	close(sub.ch)
}

// SubscribeShifts registers a subscription for the local calendar day
// containing day and immediately pushes the current result set.
func (s *Store) SubscribeShifts(day time.Time) (*ShiftSubscription, error) {
	shifts, err := s.ShiftsForDay(day)
	if err != nil {
		return nil, fmt.Errorf("subscribe shifts: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sub := &ShiftSubscription{
		id:    s.nextSubID,
		store: s,
		day:   day,
		ch:    make(chan []Shift, 1),
	}
	s.nextSubID++
	s.shiftSubs[sub.id] = sub
	sub.ch <- shifts
	return sub, nil
}

// ClickSubscription streams snapshots of all clicks in timestamp order.
type ClickSubscription struct {
	id    int
	store *Store
	ch    chan []Click
}

func (sub *ClickSubscription) Snapshots() <-chan []Click {
	return sub.ch
}

func (sub *ClickSubscription) Unsubscribe() {
	sub.store.mu.Lock()
	defer sub.store.mu.Unlock()
	if _, ok := sub.store.clickSubs[sub.id]; !ok {
		return
	}
	delete(sub.store.clickSubs, sub.id)
	close(sub.ch)
}

// SubscribeClicks registers a subscription over the whole clicks collection
// and immediately pushes the current result set.
func (s *Store) SubscribeClicks() (*ClickSubscription, error) {
	clicks, err := s.ClicksAsc()
	if err != nil {
		return nil, fmt.Errorf("subscribe clicks: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sub := &ClickSubscription{
		id:    s.nextSubID,
		store: s,
		ch:    make(chan []Click, 1),
	}
	s.nextSubID++
	s.clickSubs[sub.id] = sub
	sub.ch <- clicks
	return sub, nil
}

// notifyShifts re-queries and pushes to every shift subscriber. Query
// failures drop the push; the subscriber keeps its previous snapshot.
func (s *Store) notifyShifts() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sub := range s.shiftSubs {
		shifts, err := s.ShiftsForDay(sub.day)
		if err != nil {
			continue
		}
		// Drop a stale pending snapshot so the send below cannot block.
		select {
		case <-sub.ch:
		default:
		}
		sub.ch <- shifts
	}
}

func (s *Store) notifyClicks() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.clickSubs) == 0 {
		return
	}
	clicks, err := s.ClicksAsc()
	if err != nil {
		return
	}
	for _, sub := range s.clickSubs {
		select {
		case <-sub.ch:
		default:
		}
		sub.ch <- clicks
	}
}
