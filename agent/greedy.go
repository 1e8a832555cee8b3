package agent

import (
	"context"

	"github.com/nathoo/jaipur/engine/bank"
	"github.com/nathoo/jaipur/engine/goods"
	"github.com/nathoo/jaipur/engine/rules"
	"github.com/nathoo/jaipur/types"
)

// Greedy thresholds.
const (
	SellThreshold = 8 // points a sale must reach unless the hand is full
	GrabThreshold = 4 // next-token value that makes a card worth grabbing
	CamelMinimum  = 2 // camels on display worth a turn
)

// Greedy plays for immediate value: a rich sale, else the most valuable
// card, else a good camel haul, else whatever sale or trade remains.
type Greedy struct{}

// NewGreedy creates a greedy agent.
func NewGreedy() *Greedy { return &Greedy{} }

func (g *Greedy) Name() string { return "greedy" }

func (g *Greedy) Decide(ctx context.Context, s types.Snapshot) (types.Action, error) {
	if err := ctx.Err(); err != nil {
		return types.Action{}, err
	}
	legal := rules.Legal(rules.FromSnapshot(s))
	if len(legal) == 0 {
		return types.Action{}, ErrNoMove
	}

	var (
		sale, grab, camels *types.Action
		saleVal, grabVal   float64
	)
	for i := range legal {
		a := &legal[i]
		switch a.Kind {
		case types.Sell:
			if v := saleValue(s, a.Good, a.Count); sale == nil || v > saleVal {
				sale, saleVal = a, v
			}
		case types.Grab:
			if v := float64(nextToken(s, s.Market[a.Slot])); grab == nil || v > grabVal {
				grab, grabVal = a, v
			}
		case types.TakeCamels:
			camels = a
		}
	}

	full := len(s.Hand) >= goods.HandLimit
	switch {
	case sale != nil && (saleVal >= SellThreshold || full):
		return *sale, nil
	case grab != nil && grabVal >= GrabThreshold:
		return *grab, nil
	case camels != nil && goods.CountOf(s.Market)[goods.Camel] >= CamelMinimum:
		return *camels, nil
	case grab != nil:
		return *grab, nil
	case sale != nil:
		return *sale, nil
	case camels != nil:
		return *camels, nil
	}
	return legal[0], nil
}

// stackOf rebuilds g's remaining tokens from its ladder. Stacks only lose
// tokens from the top, so the size alone determines them.
func stackOf(s types.Snapshot, g goods.Good) []int {
	ladder := g.Ladder()
	n := s.TokensLeft[g]
	if n > len(ladder) {
		n = len(ladder)
	}
	return ladder[len(ladder)-n:]
}

func nextToken(s types.Snapshot, g goods.Good) int {
	if st := stackOf(s, g); len(st) > 0 {
		return st[0]
	}
	return 0
}

// saleValue is the tokens a sale would earn plus the mean of its bonus
// tier, if still unclaimed.
func saleValue(s types.Snapshot, g goods.Good, count int) float64 {
	st := stackOf(s, g)
	if count < len(st) {
		st = st[:count]
	}
	v := 0.0
	for _, t := range st {
		v += float64(t)
	}
	if tier := bank.TierFor(count); tier > 0 && s.BonusLeft[tier] {
		pool := bank.BonusPool(tier)
		sum := 0
		for _, p := range pool {
			sum += p
		}
		v += float64(sum) / float64(len(pool))
	}
	return v
}
