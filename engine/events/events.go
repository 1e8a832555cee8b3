// Package events implements single-pass dispatch of engine events to
// subscribed observers. Handlers observe; they cannot change the game.
package events

import (
	"sync"

	"github.com/nathoo/jaipur/types"
)

// Event types emitted by the engine.
const (
	CamelsTaken    = "camels_taken"
	GoodTaken      = "good_taken"
	GoodsSold      = "goods_sold"
	GoodsTraded    = "goods_traded"
	BonusClaimed   = "bonus_claimed"
	MarketRefilled = "market_refilled"
	GameEnded      = "game_ended"
)

// Any subscribes a handler to every event type.
const Any = "*"

// Handler observes one event.
type Handler func(types.Event)

// Bus routes events to handlers by type.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[string][]Handler)}
}

// On registers h for eventType, or for every event when eventType is Any.
func (b *Bus) On(eventType string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], h)
}

// Dispatch runs matching handlers over evts in order. Single pass: events
// emitted while dispatching are not delivered. Returns the number of
// handler calls made.
func (b *Bus) Dispatch(evts []types.Event) int {
	calls := 0
	for _, event := range evts {
		for _, h := range b.subscribers(event.Type) {
			h(event)
			calls++
		}
	}
	return calls
}

// subscribers copies the handlers for eventType followed by the Any
// handlers, so a handler may subscribe without deadlocking.
func (b *Bus) subscribers(eventType string) []Handler {
	b.mu.RLock()
	defer b.mu.RUnlock()
	hs := make([]Handler, 0, len(b.handlers[eventType])+len(b.handlers[Any]))
	hs = append(hs, b.handlers[eventType]...)
	return append(hs, b.handlers[Any]...)
}
