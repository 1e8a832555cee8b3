package events

import (
	"testing"

	"github.com/nathoo/jaipur/types"
)

func TestDispatch_MatchesEventType(t *testing.T) {
	bus := NewBus()
	var got []string
	bus.On(GoodsSold, func(e types.Event) { got = append(got, "sold:"+e.Type) })
	bus.On(GoodsSold, func(e types.Event) { got = append(got, "again") })

	n := bus.Dispatch([]types.Event{{Type: GoodsSold, Seat: 1}})
	if n != 2 {
		t.Fatalf("expected 2 handler calls, got %d", n)
	}
	if len(got) != 2 || got[0] != "sold:goods_sold" || got[1] != "again" {
		t.Errorf("handlers ran out of order: %v", got)
	}
}

func TestDispatch_SkipsNonMatchingEventType(t *testing.T) {
	bus := NewBus()
	called := false
	bus.On(GameEnded, func(types.Event) { called = true })

	if n := bus.Dispatch([]types.Event{{Type: CamelsTaken}}); n != 0 {
		t.Fatalf("expected 0 handler calls, got %d", n)
	}
	if called {
		t.Error("handler for game_ended must not see camels_taken")
	}
}

func TestDispatch_Any(t *testing.T) {
	bus := NewBus()
	var seen []string
	bus.On(Any, func(e types.Event) { seen = append(seen, e.Type) })

	bus.Dispatch([]types.Event{{Type: GoodTaken}, {Type: MarketRefilled}})
	if len(seen) != 2 || seen[0] != GoodTaken || seen[1] != MarketRefilled {
		t.Errorf("expected both events in order, got %v", seen)
	}
}

func TestDispatch_NoHandlers(t *testing.T) {
	bus := NewBus()
	if n := bus.Dispatch([]types.Event{{Type: GoodsTraded}}); n != 0 {
		t.Fatalf("expected 0 calls, got %d", n)
	}
}
