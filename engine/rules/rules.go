// Package rules decides whether an action is legal for a position and
// enumerates the legal actions. The engine and every agent share it, so a
// move an agent generates is exactly a move the engine accepts.
package rules

import (
	"errors"
	"fmt"

	"github.com/nathoo/jaipur/engine/goods"
	"github.com/nathoo/jaipur/types"
)

// Rule violations. Check wraps them with context.
var (
	ErrUnknownAction  = errors.New("unknown action")
	ErrNoCamels       = errors.New("no camels in the market")
	ErrSlotOutOfRange = errors.New("market slot out of range")
	ErrDuplicateSlot  = errors.New("market slot listed twice")
	ErrCamelGrab      = errors.New("camels are taken with the camel action")
	ErrHandFull       = errors.New("hand limit exceeded")
	ErrNotTradable    = errors.New("good cannot be sold")
	ErrMinimumSale    = errors.New("sale below minimum count")
	ErrNotEnoughCards = errors.New("not enough cards")
	ErrTradeSize      = errors.New("trade must exchange at least two cards for the same number")
	ErrTradeCamel     = errors.New("camels cannot be taken in a trade")
	ErrTradeOverlap   = errors.New("same good on both sides of a trade")
	ErrUnknownGood    = errors.New("unknown good")
)

// MinTrade is the smallest legal trade.
const MinTrade = 2

// Position is everything needed to judge the acting player's move: their
// holdings (hand plus herd under goods.Camel) and the market.
type Position struct {
	Holdings goods.Counts
	Market   []goods.Good
}

// FromSnapshot builds the acting seat's position from its snapshot.
func FromSnapshot(s types.Snapshot) Position {
	h := goods.CountOf(s.Hand)
	h[goods.Camel] = s.Camels
	m := make([]goods.Good, len(s.Market))
	copy(m, s.Market)
	return Position{Holdings: h, Market: m}
}

// HandSize is the number of non-camel cards held.
func (p Position) HandSize() int {
	return p.Holdings.Total() - p.Holdings[goods.Camel]
}

// Check returns nil if a is legal in p, or an error wrapping one of the
// package's sentinel errors.
func Check(p Position, a types.Action) error {
	switch a.Kind {
	case types.TakeCamels:
		return checkTakeCamels(p)
	case types.Grab:
		return checkGrab(p, a.Slot)
	case types.Sell:
		return checkSell(p, a.Good, a.Count)
	case types.Trade:
		return checkTrade(p, a.Offer, a.Take)
	default:
		return fmt.Errorf("%w %q", ErrUnknownAction, string(a.Kind))
	}
}
