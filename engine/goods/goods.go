// Package goods is the fixed registry of card types: the six tradable goods
// plus camels, with their deck counts and token price ladders.
package goods

import (
	"fmt"
	"strings"
)

// Good is one of the seven card types. The numeric value is the table index
// used by every per-good table in this package.
type Good int

const (
	Leather Good = iota
	Spice
	Cloth
	Silver
	Gold
	Diamond
	Camel
)

// Count is the number of card types, camels included.
const Count = 7

// HandLimit caps the number of non-camel cards a player may hold.
const HandLimit = 7

// MarketCamels is how many camels seed the market before the first draw.
const MarketCamels = 3

var names = [Count]string{"leather", "spice", "cloth", "silver", "gold", "diamond", "camel"}

// deckCounts includes the camels that seed the market.
var deckCounts = [Count]int{10, 8, 8, 6, 6, 6, 11}

// ladders list token values top-first; the first value is taken first.
var ladders = [Camel][]int{
	Leather: {4, 3, 2, 1, 1, 1, 1, 1, 1},
	Spice:   {5, 3, 3, 2, 2, 1, 1},
	Cloth:   {5, 3, 3, 2, 2, 1, 1},
	Silver:  {5, 5, 5, 5, 5},
	Gold:    {6, 6, 5, 5, 5},
	Diamond: {7, 7, 5, 5, 5},
}

func (g Good) String() string {
	if !g.Valid() {
		return fmt.Sprintf("good(%d)", int(g))
	}
	return names[g]
}

// Valid reports whether g is one of the seven registered types.
func (g Good) Valid() bool {
	return g >= Leather && g <= Camel
}

// Tradable reports whether g can be sold (every good except camels).
func (g Good) Tradable() bool {
	return g >= Leather && g < Camel
}

// HighTier reports whether g is silver, gold or diamond.
func (g Good) HighTier() bool {
	return g == Silver || g == Gold || g == Diamond
}

// MinSale is the smallest number of cards of g that may be sold at once.
// Camels cannot be sold and return 0.
func (g Good) MinSale() int {
	switch {
	case g.HighTier():
		return 2
	case g.Tradable():
		return 1
	default:
		return 0
	}
}

// DeckCount is the total number of cards of g in a game.
func (g Good) DeckCount() int {
	if !g.Valid() {
		return 0
	}
	return deckCounts[g]
}

// Ladder returns a copy of the token values for g, highest first.
// Camels have no ladder.
func (g Good) Ladder() []int {
	if !g.Tradable() {
		return nil
	}
	out := make([]int, len(ladders[g]))
	copy(out, ladders[g])
	return out
}

// MarshalText implements encoding.TextMarshaler.
func (g Good) MarshalText() ([]byte, error) {
	if !g.Valid() {
		return nil, fmt.Errorf("invalid good %d", int(g))
	}
	return []byte(names[g]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (g *Good) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// Parse converts a name ("gold", "Camels", "diamonds") to a Good.
func Parse(s string) (Good, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if alias, ok := aliases[key]; ok {
		return alias, nil
	}
	for i, name := range names {
		if key == name || key == name+"s" {
			return Good(i), nil
		}
	}
	return 0, fmt.Errorf("unknown good %q", s)
}

var aliases = map[string]Good{
	"l":  Leather,
	"sp": Spice,
	"c":  Cloth,
	"si": Silver,
	"go": Gold,
	"d":  Diamond,
	"ca": Camel,
}

// Tradables returns the six sellable goods in table order.
func Tradables() []Good {
	return []Good{Leather, Spice, Cloth, Silver, Gold, Diamond}
}

// All returns every card type in table order.
func All() []Good {
	return []Good{Leather, Spice, Cloth, Silver, Gold, Diamond, Camel}
}

// TotalCards is the size of the full card set.
func TotalCards() int {
	n := 0
	for _, c := range deckCounts {
		n += c
	}
	return n
}
