package game

import (
	"sync"
	"time"
)

// Clock delivers frame ticks. Subscribers are invoked once per frame in
// subscription order; the mover subscribes before the session so its
// position reports are staged ahead of the session's collision check.
type Clock interface {
	Subscribe(fn func(now time.Time)) int
	Unsubscribe(id int)
}

type clockSub struct {
	id int
	fn func(time.Time)
}

// TickerClock drives subscribers from a time.Ticker goroutine.
type TickerClock struct {
	interval time.Duration
	stopCh   chan struct{}

	mu     sync.Mutex
	subs   []clockSub
	nextID int
}

// NewTickerClock creates and starts a ticker-driven frame clock.
func NewTickerClock(interval time.Duration) *TickerClock {
	c := &TickerClock{
		interval: interval,
		stopCh:   make(chan struct{}),
	}
	go c.run()
	return c
}

func (c *TickerClock) run() {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case now := <-ticker.C:
			for _, s := range c.snapshot() {
				s.fn(now)
			}
		}
	}
}

func (c *TickerClock) snapshot() []clockSub {
	c.mu.Lock()
	defer c.mu.Unlock()
	subs := make([]clockSub, len(c.subs))
	copy(subs, c.subs)
	return subs
}

// Subscribe registers a frame callback and returns its subscription ID.
func (c *TickerClock) Subscribe(fn func(now time.Time)) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	c.subs = append(c.subs, clockSub{id: c.nextID, fn: fn})
	return c.nextID
}

// Unsubscribe removes a subscription. Unknown IDs are ignored.
func (c *TickerClock) Unsubscribe(id int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, s := range c.subs {
		if s.id == id {
			c.subs = append(c.subs[:i], c.subs[i+1:]...)
			return
		}
	}
}

// Stop halts the ticker goroutine. Safe to call more than once.
func (c *TickerClock) Stop() {
	select {
	case <-c.stopCh:
	default:
		close(c.stopCh)
	}
}

// ManualClock advances only when Tick is called. Used by tests to drive
// frames deterministically.
type ManualClock struct {
	mu     sync.Mutex
	subs   []clockSub
	nextID int
}

// NewManualClock creates a stopped clock.
func NewManualClock() *ManualClock {
	return &ManualClock{}
}

// Subscribe registers a frame callback and returns its subscription ID.
func (c *ManualClock) Subscribe(fn func(now time.Time)) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	c.subs = append(c.subs, clockSub{id: c.nextID, fn: fn})
	return c.nextID
}

// Unsubscribe removes a subscription. Unknown IDs are ignored.
func (c *ManualClock) Unsubscribe(id int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, s := range c.subs {
		if s.id == id {
			c.subs = append(c.subs[:i], c.subs[i+1:]...)
			return
		}
	}
}

// Tick invokes all subscribers in subscription order with the given time.
func (c *ManualClock) Tick(now time.Time) {
	c.mu.Lock()
	subs := make([]clockSub, len(c.subs))
	copy(subs, c.subs)
	c.mu.Unlock()

	for _, s := range subs {
		s.fn(now)
	}
}

// SubscriberCount returns the number of active subscriptions.
func (c *ManualClock) SubscriberCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.subs)
}
