package rules

import (
	"fmt"

	"github.com/nathoo/jaipur/engine/goods"
)

func checkTakeCamels(p Position) error {
	if goods.CountOf(p.Market)[goods.Camel] == 0 {
		return ErrNoCamels
	}
	return nil
}

func checkGrab(p Position, slot int) error {
	if slot < 0 || slot >= len(p.Market) {
		return fmt.Errorf("%w: %d of %d", ErrSlotOutOfRange, slot, len(p.Market))
	}
	if p.Market[slot] == goods.Camel {
		return fmt.Errorf("%w: slot %d", ErrCamelGrab, slot)
	}
	if p.HandSize() >= goods.HandLimit {
		return fmt.Errorf("%w: already holding %d", ErrHandFull, p.HandSize())
	}
	return nil
}

func checkSell(p Position, g goods.Good, count int) error {
	if !g.Tradable() {
		return fmt.Errorf("%w: %v", ErrNotTradable, g)
	}
	if count < g.MinSale() {
		return fmt.Errorf("%w: %d %v, need %d", ErrMinimumSale, count, g, g.MinSale())
	}
	if held := p.Holdings[g]; held < count {
		return fmt.Errorf("%w: selling %d %v, holding %d", ErrNotEnoughCards, count, g, held)
	}
	return nil
}

func checkTrade(p Position, offer []goods.Good, take []int) error {
	if len(offer) != len(take) || len(take) < MinTrade {
		return fmt.Errorf("%w: offered %d, requested %d", ErrTradeSize, len(offer), len(take))
	}

	var taken goods.Counts
	seen := make(map[int]bool, len(take))
	for _, slot := range take {
		if slot < 0 || slot >= len(p.Market) {
			return fmt.Errorf("%w: %d of %d", ErrSlotOutOfRange, slot, len(p.Market))
		}
		if seen[slot] {
			return fmt.Errorf("%w: %d", ErrDuplicateSlot, slot)
		}
		seen[slot] = true
		g := p.Market[slot]
		if g == goods.Camel {
			return fmt.Errorf("%w: slot %d", ErrTradeCamel, slot)
		}
		taken[g]++
	}

	for _, g := range offer {
		if !g.Valid() {
			return fmt.Errorf("%w: %d", ErrUnknownGood, int(g))
		}
	}
	given := goods.CountOf(offer)
	if !p.Holdings.Contains(given) {
		return fmt.Errorf("%w: offered %v", ErrNotEnoughCards, offer)
	}
	if given.Overlaps(taken) {
		return ErrTradeOverlap
	}

	after := p.HandSize() - (given.Total() - given[goods.Camel]) + taken.Total()
	if after > goods.HandLimit {
		return fmt.Errorf("%w: trade leaves %d cards in hand", ErrHandFull, after)
	}
	return nil
}
