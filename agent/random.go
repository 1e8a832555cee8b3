package agent

import (
	"context"
	"math/rand"

	"github.com/nathoo/jaipur/engine/rules"
	"github.com/nathoo/jaipur/types"
)

// Random picks an action type uniformly among those with a legal move, then
// a legal move of that type. Picking the type first keeps trades, which
// vastly outnumber the other moves, from crowding them out.
type Random struct {
	rng *rand.Rand
}

// NewRandom creates a random agent with its own seeded source.
func NewRandom(seed int64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

func (r *Random) Name() string { return "random" }

func (r *Random) Decide(ctx context.Context, s types.Snapshot) (types.Action, error) {
	if err := ctx.Err(); err != nil {
		return types.Action{}, err
	}
	byKind := map[types.ActionKind][]types.Action{}
	var kinds []types.ActionKind
	for _, a := range rules.Legal(rules.FromSnapshot(s)) {
		if len(byKind[a.Kind]) == 0 {
			kinds = append(kinds, a.Kind)
		}
		byKind[a.Kind] = append(byKind[a.Kind], a)
	}
	if len(kinds) == 0 {
		return types.Action{}, ErrNoMove
	}
	pool := byKind[kinds[r.rng.Intn(len(kinds))]]
	return pool[r.rng.Intn(len(pool))], nil
}
