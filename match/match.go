// Package match drives two agents against one engine, turn by turn.
package match

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/nathoo/jaipur/agent"
	"github.com/nathoo/jaipur/engine"
	"github.com/nathoo/jaipur/engine/goods"
	"github.com/nathoo/jaipur/engine/parser"
	"github.com/nathoo/jaipur/types"
)

// DefaultMaxRetries is how many rejected proposals a seat may make in one
// turn before the match gives up.
const DefaultMaxRetries = 3

var (
	ErrFinished       = errors.New("match finished")
	ErrTooManyRetries = errors.New("too many rejected actions")
	ErrMissingAgent   = errors.New("seat has no agent")
)

// Turn records one applied action.
type Turn struct {
	Number   int
	Seat     int
	Agent    string
	Action   types.Action
	Outcome  types.Outcome
	Rejected []error // proposals the engine refused before this one
}

// String renders the turn as "12 seat 0 (greedy): s leather 3".
func (t Turn) String() string {
	return fmt.Sprintf("%d seat %d (%s): %s", t.Number, t.Seat, t.Agent, parser.Format(t.Action))
}

// Summary describes what the turn gained, e.g. "+19 from [7 7 5]; bonus tier 3".
func (t Turn) Summary() string {
	out := t.Outcome
	var parts []string
	switch t.Action.Kind {
	case types.TakeCamels:
		parts = append(parts, fmt.Sprintf("+%d camels", out.CamelsGained))
	case types.Grab:
		parts = append(parts, "+"+joinGoods(out.GoodsGained))
	case types.Sell:
		sum := 0
		for _, v := range out.TokensAwarded {
			sum += v
		}
		parts = append(parts, fmt.Sprintf("+%d from %v", sum, out.TokensAwarded))
		if out.Bonus != nil {
			parts = append(parts, fmt.Sprintf("bonus tier %d", out.Bonus.Tier))
		}
	case types.Trade:
		parts = append(parts, fmt.Sprintf("gave %s, got %s", joinGoods(out.CardsGiven), joinGoods(out.GoodsGained)))
	}
	if len(out.Refilled) > 0 {
		parts = append(parts, "market +"+joinGoods(out.Refilled))
	}
	if out.Ended {
		parts = append(parts, "game over")
	}
	return strings.Join(parts, "; ")
}

func joinGoods(cards []goods.Good) string {
	if len(cards) == 0 {
		return "-"
	}
	out := make([]string, len(cards))
	for i, g := range cards {
		out[i] = g.String()
	}
	return strings.Join(out, ",")
}

// Match pairs an engine with one agent per seat.
type Match struct {
	Engine     *engine.Engine
	Agents     [types.NumPlayers]agent.Agent
	MaxRetries int
	Logger     *zap.Logger
}

// New creates a match with default retries. The engine must be started.
func New(e *engine.Engine, agents [types.NumPlayers]agent.Agent, log *zap.Logger) *Match {
	if log == nil {
		log = zap.NewNop()
	}
	return &Match{Engine: e, Agents: agents, MaxRetries: DefaultMaxRetries, Logger: log}
}

// Done reports whether the game is over.
func (m *Match) Done() bool {
	return m.Engine.Phase() == engine.PhaseEnded
}

// Step asks the seat on turn for an action and submits it. Rejected
// proposals are retried with a fresh snapshot, up to MaxRetries times.
func (m *Match) Step(ctx context.Context) (Turn, error) {
	if m.Done() {
		return Turn{}, ErrFinished
	}
	seat := m.Engine.Turn()
	ag := m.Agents[seat]
	if ag == nil {
		return Turn{}, fmt.Errorf("%w: %d", ErrMissingAgent, seat)
	}
	log := m.logger().With(zap.Int("seat", seat), zap.String("agent", ag.Name()))

	t := Turn{Number: m.Engine.Turns() + 1, Seat: seat, Agent: ag.Name()}
	for attempt := 0; attempt <= m.MaxRetries; attempt++ {
		snap, err := m.Engine.State(seat)
		if err != nil {
			return Turn{}, err
		}
		a, err := ag.Decide(ctx, snap)
		if err != nil {
			return Turn{}, fmt.Errorf("seat %d (%s): %w", seat, ag.Name(), err)
		}
		out, err := m.Engine.Submit(seat, a)
		if errors.Is(err, engine.ErrInvalidAction) {
			log.Warn("action rejected", zap.String("action", parser.Format(a)), zap.Int("attempt", attempt+1), zap.Error(err))
			t.Rejected = append(t.Rejected, err)
			continue
		}
		if err != nil {
			return Turn{}, err
		}
		t.Action, t.Outcome = a, out
		return t, nil
	}
	return Turn{}, fmt.Errorf("%w: seat %d (%s) after %d attempts", ErrTooManyRetries, seat, ag.Name(), m.MaxRetries+1)
}

// Run steps until the game ends and returns the final score. onTurn, if
// not nil, sees every applied turn.
func (m *Match) Run(ctx context.Context, onTurn func(Turn)) (types.FinalScore, error) {
	for !m.Done() {
		if err := ctx.Err(); err != nil {
			return types.FinalScore{}, err
		}
		t, err := m.Step(ctx)
		if err != nil {
			return types.FinalScore{}, err
		}
		if onTurn != nil {
			onTurn(t)
		}
	}
	return m.Engine.Final()
}

func (m *Match) logger() *zap.Logger {
	if m.Logger == nil {
		return zap.NewNop()
	}
	return m.Logger
}
