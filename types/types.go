// Package types defines the shared data structures for the Jaipur engine.
// It holds type definitions only, no logic.
package types

import "github.com/nathoo/jaipur/engine/goods"

// NumPlayers is the number of seats at the table.
const NumPlayers = 2

// NoWinner marks a drawn game in FinalScore.Winner.
const NoWinner = -1

// ActionKind is the one-letter code of an action type.
type ActionKind string

const (
	TakeCamels ActionKind = "c"
	Grab       ActionKind = "g"
	Sell       ActionKind = "s"
	Trade      ActionKind = "t"
)

// Action is one turn's request. Only the fields of its Kind are read.
type Action struct {
	Kind  ActionKind   `json:"kind"`
	Slot  int          `json:"slot"`            // Grab: market slot
	Good  goods.Good   `json:"good"`            // Sell: good sold
	Count int          `json:"count,omitempty"` // Sell: cards sold
	Offer []goods.Good `json:"offer,omitempty"` // Trade: cards given, camels from the herd
	Take  []int        `json:"take,omitempty"`  // Trade: market slots taken
}

// Event is emitted by the engine after an action is applied.
type Event struct {
	Type string         `json:"type"`
	Seat int            `json:"seat"`
	Data map[string]any `json:"data,omitempty"`
}

// Bonus is a bulk-sale bonus token won in a sale.
type Bonus struct {
	Tier  int `json:"tier"`
	Value int `json:"value"`
}

// Outcome is the structured result of a successful action.
type Outcome struct {
	Seat          int          `json:"seat"`
	Action        Action       `json:"action"`
	GoodsGained   []goods.Good `json:"goods_gained,omitempty"`
	CamelsGained  int          `json:"camels_gained,omitempty"`
	CardsGiven    []goods.Good `json:"cards_given,omitempty"`
	TokensAwarded []int        `json:"tokens_awarded,omitempty"`
	Bonus         *Bonus       `json:"bonus,omitempty"`
	Refilled      []goods.Good `json:"refilled,omitempty"`
	NextTurn      int          `json:"next_turn"`
	Ended         bool         `json:"ended"`
	Final         *FinalScore  `json:"final,omitempty"`
	Events        []Event      `json:"events,omitempty"`
}

// PlayerScore is one seat's end-of-game breakdown.
type PlayerScore struct {
	Seat        int `json:"seat"`
	GoodsTokens int `json:"goods_tokens"`
	BonusTokens int `json:"bonus_tokens"`
	BonusCount  int `json:"bonus_count"`
	Camels      int `json:"camels"`
	CamelBonus  int `json:"camel_bonus"`
	Total       int `json:"total"`
}

// FinalScore is the frozen result of an ended game.
type FinalScore struct {
	Players [NumPlayers]PlayerScore `json:"players"`
	Winner  int                     `json:"winner"`  // seat, or NoWinner for a draw
	Decider string                  `json:"decider"` // "score", "bonus_tokens", "camels" or "draw"
}

// Opponent is what a seat may see of the other player.
type Opponent struct {
	HandSize   int `json:"hand_size"`
	Camels     int `json:"camels"`
	TokenCount int `json:"token_count"`
	BonusCount int `json:"bonus_count"`
}

// Snapshot is a deep, player-sanitized copy of the game state.
type Snapshot struct {
	GameID         string             `json:"game_id"`
	Seat           int                `json:"seat"`
	Turn           int                `json:"turn"`
	TurnNumber     int                `json:"turn_number"`
	Phase          string             `json:"phase"`
	Hand           []goods.Good       `json:"hand"`
	Camels         int                `json:"camels"`
	Tokens         []int              `json:"tokens"`
	BonusCount     int                `json:"bonus_count"`
	Score          int                `json:"score"`
	Opponent       Opponent           `json:"opponent"`
	Market         []goods.Good       `json:"market"`
	TokensLeft     map[goods.Good]int `json:"tokens_left"`
	TopToken       map[goods.Good]int `json:"top_token"`
	BonusLeft      map[int]bool       `json:"bonus_left"`
	CamelBonusLeft bool               `json:"camel_bonus_left"`
	DeckSize       int                `json:"deck_size"`
	Discarded      int                `json:"discarded"`
	Ended          bool               `json:"ended"`
	Final          *FinalScore        `json:"final,omitempty"`
}
