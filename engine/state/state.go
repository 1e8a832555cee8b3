// Package state manages one player's holdings: the hand of goods, the
// camel herd and the tokens collected so far.
package state

import (
	"fmt"
	"sort"

	"github.com/nathoo/jaipur/engine/goods"
)

// Player holds one seat's runtime state. Only the engine mutates it;
// accessors return copies.
type Player struct {
	hand       []goods.Good // non-camel cards, kept sorted
	camels     int
	tokens     []int // good tokens, in the order they were won
	bonus      []int // bulk-sale bonus tokens
	camelBonus int
}

// NewPlayer creates a player from an opening deal. Camels in the deal go to
// the herd.
func NewPlayer(deal []goods.Good) *Player {
	p := &Player{hand: make([]goods.Good, 0, goods.HandLimit)}
	for _, g := range deal {
		if g == goods.Camel {
			p.camels++
			continue
		}
		p.hand = append(p.hand, g)
	}
	p.sortHand()
	return p
}

func (p *Player) sortHand() {
	sort.Slice(p.hand, func(i, j int) bool { return p.hand[i] < p.hand[j] })
}

// Hand returns a sorted copy of the non-camel cards.
func (p *Player) Hand() []goods.Good {
	out := make([]goods.Good, len(p.hand))
	copy(out, p.hand)
	return out
}

// HandSize is the number of non-camel cards held.
func (p *Player) HandSize() int {
	return len(p.hand)
}

// Holdings returns the hand plus the herd as one multiset.
func (p *Player) Holdings() goods.Counts {
	c := goods.CountOf(p.hand)
	c[goods.Camel] = p.camels
	return c
}

// CountOf returns how many cards of g the player holds, herd included.
func (p *Player) CountOf(g goods.Good) int {
	return p.Holdings()[g]
}

// Camels is the herd size.
func (p *Player) Camels() int {
	return p.camels
}

// AddGoods puts cards into the hand. Camels go to the herd.
func (p *Player) AddGoods(cards ...goods.Good) {
	for _, g := range cards {
		if g == goods.Camel {
			p.camels++
			continue
		}
		p.hand = append(p.hand, g)
	}
	p.sortHand()
}

// AddCamels grows the herd.
func (p *Player) AddCamels(n int) {
	p.camels += n
}

// Remove takes the cards in c out of the hand and herd. It fails without
// changing anything if the player does not hold all of them.
func (p *Player) Remove(c goods.Counts) error {
	if !p.Holdings().Contains(c) {
		return fmt.Errorf("player does not hold %v", c.Cards())
	}
	p.camels -= c[goods.Camel]
	kept := p.hand[:0]
	for _, g := range p.hand {
		if c[g] > 0 {
			c[g]--
			continue
		}
		kept = append(kept, g)
	}
	p.hand = kept
	return nil
}

// AwardTokens records good tokens won in a sale.
func (p *Player) AwardTokens(vals ...int) {
	p.tokens = append(p.tokens, vals...)
}

// AwardBonus records a bulk-sale bonus token.
func (p *Player) AwardBonus(v int) {
	p.bonus = append(p.bonus, v)
}

// AwardCamelBonus records the camel-majority token.
func (p *Player) AwardCamelBonus(v int) {
	p.camelBonus = v
}

// Tokens returns a copy of the good tokens collected.
func (p *Player) Tokens() []int {
	out := make([]int, len(p.tokens))
	copy(out, p.tokens)
	return out
}

// Bonuses returns a copy of the bulk-sale bonus tokens collected.
func (p *Player) Bonuses() []int {
	out := make([]int, len(p.bonus))
	copy(out, p.bonus)
	return out
}

// BonusCount is the number of bulk-sale bonus tokens held.
func (p *Player) BonusCount() int {
	return len(p.bonus)
}

// CamelBonus is the camel-majority token value, 0 if not held.
func (p *Player) CamelBonus() int {
	return p.camelBonus
}

// TokenPoints sums the good tokens.
func (p *Player) TokenPoints() int {
	return sum(p.tokens)
}

// BonusPoints sums the bulk-sale bonus tokens.
func (p *Player) BonusPoints() int {
	return sum(p.bonus)
}

// Score is the running total of every token held.
func (p *Player) Score() int {
	return p.TokenPoints() + p.BonusPoints() + p.camelBonus
}

func sum(vals []int) int {
	n := 0
	for _, v := range vals {
		n += v
	}
	return n
}
