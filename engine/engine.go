// Package engine owns a two-player game: it validates and applies actions,
// runs the token economy, detects the end of the game and scores it.
//
// An Engine is not safe for concurrent use.
package engine

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nathoo/jaipur/engine/bank"
	"github.com/nathoo/jaipur/engine/events"
	"github.com/nathoo/jaipur/engine/goods"
	"github.com/nathoo/jaipur/engine/market"
	"github.com/nathoo/jaipur/engine/parser"
	"github.com/nathoo/jaipur/engine/rules"
	"github.com/nathoo/jaipur/engine/state"
	"github.com/nathoo/jaipur/types"
)

// Deal is the number of cards each player is dealt.
const Deal = 5

// EndEmptyStacks is how many empty good stacks end the game.
const EndEmptyStacks = 3

// Engine holds one game's state.
type Engine struct {
	cfg Config
	log *zap.Logger
	rng *RNG
	bus *events.Bus

	id        uuid.UUID
	phase     Phase
	deck      *market.Deck
	market    *market.Market
	bank      *bank.Bank
	players   [types.NumPlayers]*state.Player
	turn      int
	turns     int
	discarded int
	final     *types.FinalScore
}

// New creates an engine in PhaseNotStarted. Call Start to deal.
func New(cfg Config) *Engine {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		cfg: cfg,
		log: log,
		rng: NewRNG(cfg.Seed),
		bus: events.NewBus(),
	}
}

// Start builds and shuffles the deck, draws the bonus tokens, seeds the
// market, deals both hands and picks the opening seat. An ended engine can
// be started again; the RNG carries on from where the last game left it.
func (e *Engine) Start() error {
	if e.phase == PhaseInProgress {
		return invalidState(ErrInProgress)
	}
	if fp := e.cfg.FirstPlayer; fp != RandomFirstPlayer && (fp < 0 || fp >= types.NumPlayers) {
		return invalidState(fmt.Errorf("%w: first player %d", ErrUnknownSeat, fp))
	}

	e.deck = market.FullDeck()
	e.deck.Shuffle(e.rng)
	e.bank = bank.New(e.rng)
	e.market = market.Seed(e.deck)
	for seat := range e.players {
		e.players[seat] = state.NewPlayer(e.deck.Draw(Deal))
	}

	e.turn = e.cfg.FirstPlayer
	if e.turn == RandomFirstPlayer {
		e.turn = e.rng.Intn(types.NumPlayers)
	}
	e.id = uuid.New()
	e.turns = 0
	e.discarded = 0
	e.final = nil
	e.phase = PhaseInProgress

	e.log.Info("game started",
		zap.String("game_id", e.id.String()),
		zap.Int64("seed", e.rng.Seed()),
		zap.Int("first_player", e.turn),
	)
	return nil
}

// ID returns the current game's ID, or uuid.Nil before Start.
func (e *Engine) ID() uuid.UUID { return e.id }

// Phase returns the lifecycle phase.
func (e *Engine) Phase() Phase { return e.phase }

// Turn returns the seat to act.
func (e *Engine) Turn() int { return e.turn }

// Turns returns the number of actions applied this game.
func (e *Engine) Turns() int { return e.turns }

// Subscribe registers h for an event type, or events.Any. Handlers run
// after each applied action, in emission order.
func (e *Engine) Subscribe(eventType string, h events.Handler) {
	e.bus.On(eventType, h)
}

// Final returns the frozen final score. Before the game ends it fails with
// ErrInvalidState.
func (e *Engine) Final() (types.FinalScore, error) {
	if e.phase != PhaseEnded || e.final == nil {
		return types.FinalScore{}, invalidState(ErrNotEnded)
	}
	return *e.final, nil
}

// checkTurn runs the checks shared by every submission path: started, not
// ended, seat known and on turn.
func (e *Engine) checkTurn(seat int) error {
	switch e.phase {
	case PhaseNotStarted:
		return invalidState(ErrNotStarted)
	case PhaseEnded:
		return invalidAction(ErrGameOver)
	}
	if seat < 0 || seat >= types.NumPlayers {
		return invalidAction(fmt.Errorf("%w: %d", ErrUnknownSeat, seat))
	}
	if seat != e.turn {
		return invalidAction(fmt.Errorf("%w: seat %d to act", ErrNotYourTurn, e.turn))
	}
	return nil
}

func (e *Engine) position(seat int) rules.Position {
	return rules.Position{
		Holdings: e.players[seat].Holdings(),
		Market:   e.market.Cards(),
	}
}

// Submit validates and applies a for seat. On any error nothing changes.
func (e *Engine) Submit(seat int, a types.Action) (types.Outcome, error) {
	// 1. Lifecycle and turn order.
	if err := e.checkTurn(seat); err != nil {
		e.reject(seat, a, err)
		return types.Outcome{}, err
	}

	// 2. Rules, against a copy of the position.
	if err := rules.Check(e.position(seat), a); err != nil {
		err = invalidAction(err)
		e.reject(seat, a, err)
		return types.Outcome{}, err
	}

	// 3. Apply. Validation is complete, so errors here are engine faults.
	out := types.Outcome{Seat: seat, Action: a}
	if err := e.apply(seat, a, &out); err != nil {
		e.log.Error("apply failed after validation", zap.Error(err))
		return types.Outcome{}, invalidState(err)
	}
	e.turns++

	// 4. Pass the turn and check for the end.
	e.turn = 1 - seat
	out.NextTurn = e.turn
	if e.deck.Empty() || e.bank.EmptyStacks() >= EndEmptyStacks {
		e.finish(&out)
	}

	e.log.Debug("action applied",
		zap.String("game_id", e.id.String()),
		zap.Int("seat", seat),
		zap.String("action", parser.Format(a)),
		zap.Int("deck", e.deck.Len()),
	)

	// 5. Observers.
	e.bus.Dispatch(out.Events)
	return out, nil
}

func (e *Engine) reject(seat int, a types.Action, err error) {
	e.log.Debug("action rejected",
		zap.String("game_id", e.id.String()),
		zap.Int("seat", seat),
		zap.String("action", parser.Format(a)),
		zap.Error(err),
	)
}

func (e *Engine) apply(seat int, a types.Action, out *types.Outcome) error {
	p := e.players[seat]

	switch a.Kind {
	case types.TakeCamels:
		n := e.market.TakeCamels()
		p.AddCamels(n)
		out.CamelsGained = n
		out.Events = append(out.Events, event(events.CamelsTaken, seat, map[string]any{"count": n}))
		e.refill(seat, out)

	case types.Grab:
		g, err := e.market.Take(a.Slot)
		if err != nil {
			return err
		}
		p.AddGoods(g)
		out.GoodsGained = []goods.Good{g}
		out.Events = append(out.Events, event(events.GoodTaken, seat, map[string]any{"good": g.String(), "slot": a.Slot}))
		e.refill(seat, out)

	case types.Sell:
		var sold goods.Counts
		sold[a.Good] = a.Count
		if err := p.Remove(sold); err != nil {
			return err
		}
		e.discarded += a.Count
		tokens := e.bank.Take(a.Good, a.Count)
		p.AwardTokens(tokens...)
		out.CardsGiven = sold.Cards()
		out.TokensAwarded = tokens
		out.Events = append(out.Events, event(events.GoodsSold, seat, map[string]any{
			"good": a.Good.String(), "count": a.Count, "tokens": tokens,
		}))
		if tier := bank.TierFor(a.Count); tier > 0 {
			if v, ok := e.bank.ClaimBonus(tier); ok {
				p.AwardBonus(v)
				out.Bonus = &types.Bonus{Tier: tier, Value: v}
				out.Events = append(out.Events, event(events.BonusClaimed, seat, map[string]any{"tier": tier, "value": v}))
			}
		}

	case types.Trade:
		if err := p.Remove(goods.CountOf(a.Offer)); err != nil {
			return err
		}
		taken, err := e.market.Swap(a.Take, a.Offer)
		if err != nil {
			return err
		}
		p.AddGoods(taken...)
		out.GoodsGained = taken
		out.CardsGiven = append([]goods.Good(nil), a.Offer...)
		out.Events = append(out.Events, event(events.GoodsTraded, seat, map[string]any{
			"given": names(a.Offer), "taken": names(taken),
		}))

	default:
		return fmt.Errorf("unknown action %q", a.Kind)
	}
	return nil
}

func (e *Engine) refill(seat int, out *types.Outcome) {
	drawn := e.market.Refill(e.deck)
	if len(drawn) == 0 {
		return
	}
	out.Refilled = drawn
	out.Events = append(out.Events, event(events.MarketRefilled, seat, map[string]any{
		"cards": names(drawn), "deck": e.deck.Len(),
	}))
}

func (e *Engine) finish(out *types.Outcome) {
	final := computeScores(e.players, e.bank)
	e.final = &final
	e.phase = PhaseEnded

	out.Ended = true
	fs := final
	out.Final = &fs
	out.Events = append(out.Events, event(events.GameEnded, final.Winner, map[string]any{
		"winner": final.Winner, "decider": final.Decider,
		"scores": []int{final.Players[0].Total, final.Players[1].Total},
	}))

	e.log.Info("game ended",
		zap.String("game_id", e.id.String()),
		zap.Int("turns", e.turns),
		zap.Int("winner", final.Winner),
		zap.String("decider", final.Decider),
		zap.Int("score_0", final.Players[0].Total),
		zap.Int("score_1", final.Players[1].Total),
	)
}

// computeScores awards the camel token and ranks the players: total, then
// bonus token count, then herd size.
func computeScores(players [types.NumPlayers]*state.Player, b *bank.Bank) types.FinalScore {
	switch c0, c1 := players[0].Camels(), players[1].Camels(); {
	case c0 > c1:
		if v, ok := b.ClaimCamelBonus(); ok {
			players[0].AwardCamelBonus(v)
		}
	case c1 > c0:
		if v, ok := b.ClaimCamelBonus(); ok {
			players[1].AwardCamelBonus(v)
		}
	}

	var fs types.FinalScore
	for seat, p := range players {
		fs.Players[seat] = types.PlayerScore{
			Seat:        seat,
			GoodsTokens: p.TokenPoints(),
			BonusTokens: p.BonusPoints(),
			BonusCount:  p.BonusCount(),
			Camels:      p.Camels(),
			CamelBonus:  p.CamelBonus(),
			Total:       p.Score(),
		}
	}

	p0, p1 := fs.Players[0], fs.Players[1]
	fs.Winner, fs.Decider = types.NoWinner, "draw"
	for _, cmp := range []struct {
		decider string
		x, y    int
	}{
		{"score", p0.Total, p1.Total},
		{"bonus_tokens", p0.BonusCount, p1.BonusCount},
		{"camels", p0.Camels, p1.Camels},
	} {
		if cmp.x == cmp.y {
			continue
		}
		fs.Decider = cmp.decider
		if cmp.x > cmp.y {
			fs.Winner = 0
		} else {
			fs.Winner = 1
		}
		break
	}
	return fs
}

// State returns seat's view of the game. The opponent's hand is reduced to
// its size; everything else is public.
func (e *Engine) State(seat int) (types.Snapshot, error) {
	if e.phase == PhaseNotStarted {
		return types.Snapshot{}, invalidState(ErrNotStarted)
	}
	if seat < 0 || seat >= types.NumPlayers {
		return types.Snapshot{}, invalidAction(fmt.Errorf("%w: %d", ErrUnknownSeat, seat))
	}

	me, opp := e.players[seat], e.players[1-seat]
	s := types.Snapshot{
		GameID:     e.id.String(),
		Seat:       seat,
		Turn:       e.turn,
		TurnNumber: e.turns,
		Phase:      e.phase.String(),
		Hand:       me.Hand(),
		Camels:     me.Camels(),
		Tokens:     me.Tokens(),
		BonusCount: me.BonusCount(),
		Score:      me.Score(),
		Opponent: types.Opponent{
			HandSize:   opp.HandSize(),
			Camels:     opp.Camels(),
			TokenCount: len(opp.Tokens()),
			BonusCount: opp.BonusCount(),
		},
		Market:         e.market.Cards(),
		TokensLeft:     make(map[goods.Good]int, len(goods.Tradables())),
		TopToken:       make(map[goods.Good]int, len(goods.Tradables())),
		BonusLeft:      make(map[int]bool, len(bank.Tiers())),
		CamelBonusLeft: e.bank.CamelBonusAvailable(),
		DeckSize:       e.deck.Len(),
		Discarded:      e.discarded,
		Ended:          e.phase == PhaseEnded,
	}
	for _, g := range goods.Tradables() {
		s.TokensLeft[g] = e.bank.Remaining(g)
		if top := e.bank.Peek(g, 1); len(top) == 1 {
			s.TopToken[g] = top[0]
		}
	}
	for _, tier := range bank.Tiers() {
		s.BonusLeft[tier] = e.bank.BonusAvailable(tier)
	}
	if e.final != nil {
		fs := *e.final
		s.Final = &fs
	}
	return s, nil
}

// IsInvalidAction reports whether err is an action rejection.
func IsInvalidAction(err error) bool {
	return errors.Is(err, ErrInvalidAction)
}

func event(typ string, seat int, data map[string]any) types.Event {
	return types.Event{Type: typ, Seat: seat, Data: data}
}

func names(cards []goods.Good) []string {
	out := make([]string, len(cards))
	for i, g := range cards {
		out[i] = g.String()
	}
	return out
}
