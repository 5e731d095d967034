package game

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManualClock_InvokesInSubscriptionOrder(t *testing.T) {
	clock := NewManualClock()

	var order []string
	clock.Subscribe(func(time.Time) { order = append(order, "mover") })
	clock.Subscribe(func(time.Time) { order = append(order, "session") })

	clock.Tick(time.Now())
	assert.Equal(t, []string{"mover", "session"}, order)
}

func TestManualClock_Unsubscribe(t *testing.T) {
	clock := NewManualClock()

	calls := 0
	id := clock.Subscribe(func(time.Time) { calls++ })

	clock.Tick(time.Now())
	clock.Unsubscribe(id)
	clock.Tick(time.Now())

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, clock.SubscriberCount())

	// Unknown IDs are ignored
	clock.Unsubscribe(999)
}

func TestTickerClock_DeliversTicks(t *testing.T) {
	clock := NewTickerClock(5 * time.Millisecond)
	defer clock.Stop()

	var mu sync.Mutex
	ticks := 0
	clock.Subscribe(func(time.Time) {
		mu.Lock()
		ticks++
		mu.Unlock()
	})

	time.Sleep(50 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	require.Greater(t, ticks, 0, "subscriber should have received at least one tick")
}

func TestTickerClock_UnsubscribeStopsDelivery(t *testing.T) {
	clock := NewTickerClock(5 * time.Millisecond)
	defer clock.Stop()

	var mu sync.Mutex
	ticks := 0
	id := clock.Subscribe(func(time.Time) {
		mu.Lock()
		ticks++
		mu.Unlock()
	})

	time.Sleep(30 * time.Millisecond)
	clock.Unsubscribe(id)

	mu.Lock()
	after := ticks
	mu.Unlock()

	time.Sleep(30 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.LessOrEqual(t, ticks, after+1, "at most one in-flight tick after unsubscribe")
}

func TestTickerClock_StopIsIdempotent(t *testing.T) {
	clock := NewTickerClock(5 * time.Millisecond)
	clock.Stop()
	clock.Stop()
}
