package rules

import (
	"github.com/nathoo/jaipur/engine/goods"
	"github.com/nathoo/jaipur/types"
)

// Legal returns every legal action in p. Grabs are listed per slot; trades
// are listed once per distinct pair of given and taken multisets, taking
// the lowest slots holding each requested good.
func Legal(p Position) []types.Action {
	actions := make([]types.Action, 0, 16)

	if checkTakeCamels(p) == nil {
		actions = append(actions, types.Action{Kind: types.TakeCamels})
	}

	for slot := range p.Market {
		if checkGrab(p, slot) == nil {
			actions = append(actions, types.Action{Kind: types.Grab, Slot: slot})
		}
	}

	for _, g := range goods.Tradables() {
		for n := g.MinSale(); n <= p.Holdings[g]; n++ {
			actions = append(actions, types.Action{Kind: types.Sell, Good: g, Count: n})
		}
	}

	return append(actions, legalTrades(p)...)
}

// legalTrades enumerates trades: every distinct multiset of non-camel
// market cards of size >= MinTrade, against every multiset of held cards of
// the same size that shares no good with it.
func legalTrades(p Position) []types.Action {
	var out []types.Action

	slotsOf := make(map[goods.Good][]int)
	for i, g := range p.Market {
		if g != goods.Camel {
			slotsOf[g] = append(slotsOf[g], i)
		}
	}

	seen := make(map[goods.Counts]bool)
	n := len(p.Market)
	for mask := 1; mask < 1<<n; mask++ {
		var taken goods.Counts
		for i := 0; i < n; i++ {
			if mask&(1<<i) != 0 {
				taken[p.Market[i]]++
			}
		}
		size := taken.Total()
		if taken[goods.Camel] > 0 || size < MinTrade || seen[taken] {
			continue
		}
		seen[taken] = true

		take := make([]int, 0, size)
		for _, g := range goods.All() {
			take = append(take, slotsOf[g][:taken[g]]...)
		}

		// Held cards not among the taken goods can be offered.
		pool := p.Holdings
		for g := range pool {
			if taken[g] > 0 {
				pool[g] = 0
			}
		}
		for _, given := range subMultisets(pool, size) {
			a := types.Action{Kind: types.Trade, Offer: given.Cards(), Take: append([]int(nil), take...)}
			if checkTrade(p, a.Offer, a.Take) == nil {
				out = append(out, a)
			}
		}
	}
	return out
}

// subMultisets lists every multiset of exactly size cards drawn from pool.
func subMultisets(pool goods.Counts, size int) []goods.Counts {
	var out []goods.Counts
	var cur goods.Counts
	var walk func(g, left int)
	walk = func(g, left int) {
		if left == 0 {
			out = append(out, cur)
			return
		}
		if g == goods.Count {
			return
		}
		most := pool[g]
		if most > left {
			most = left
		}
		for k := most; k >= 0; k-- {
			cur[g] = k
			walk(g+1, left-k)
		}
		cur[g] = 0
	}
	walk(0, size)
	return out
}
