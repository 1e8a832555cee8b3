// Package bank holds the scoring tokens: one stack per sellable good, the
// bulk-sale bonus tokens and the camel-majority token.
package bank

import "github.com/nathoo/jaipur/engine/goods"

// CamelBonus is the value of the camel-majority token.
const CamelBonus = 5

// Bulk-sale bonus tiers, keyed by the number of cards sold.
const (
	TierThree = 3
	TierFour  = 4
	TierFive  = 5
)

// bonusPools are the printed values of each tier's tokens. One token per
// tier is drawn at game start.
var bonusPools = map[int][]int{
	TierThree: {1, 1, 2, 2, 2, 3, 3},
	TierFour:  {4, 4, 5, 5, 6, 6},
	TierFive:  {8, 8, 9, 10, 10},
}

// Picker draws a uniform index in [0, n).
type Picker interface {
	Intn(n int) int
}

// Bank owns every token not yet awarded to a player.
type Bank struct {
	stacks     [goods.Camel][]int
	bonus      map[int]int // tier -> value, removed once claimed
	camelBonus bool
}

// New fills every good stack from its ladder and draws one bonus token per
// tier with rng.
func New(rng Picker) *Bank {
	b := &Bank{
		bonus:      make(map[int]int, len(bonusPools)),
		camelBonus: true,
	}
	for _, g := range goods.Tradables() {
		b.stacks[g] = g.Ladder()
	}
	for _, tier := range Tiers() {
		pool := bonusPools[tier]
		b.bonus[tier] = pool[rng.Intn(len(pool))]
	}
	return b
}

// Tiers returns the bonus tiers in ascending order.
func Tiers() []int {
	return []int{TierThree, TierFour, TierFive}
}

// BonusPool returns a copy of the printed values a tier's token can take.
func BonusPool(tier int) []int {
	pool := bonusPools[tier]
	out := make([]int, len(pool))
	copy(out, pool)
	return out
}

// TierFor maps a sale size to its bonus tier. Sales of fewer than three
// cards earn no bonus and return 0.
func TierFor(count int) int {
	switch {
	case count >= TierFive:
		return TierFive
	case count == TierFour:
		return TierFour
	case count == TierThree:
		return TierThree
	default:
		return 0
	}
}

// Take pops up to n tokens from the top of g's stack, highest first. When
// fewer than n remain, every remaining token is returned.
func (b *Bank) Take(g goods.Good, n int) []int {
	if !g.Tradable() || n <= 0 {
		return nil
	}
	stack := b.stacks[g]
	if n > len(stack) {
		n = len(stack)
	}
	taken := make([]int, n)
	copy(taken, stack[:n])
	b.stacks[g] = stack[n:]
	return taken
}

// Peek returns the values the next n tokens of g would award, without
// removing them.
func (b *Bank) Peek(g goods.Good, n int) []int {
	if !g.Tradable() || n <= 0 {
		return nil
	}
	stack := b.stacks[g]
	if n > len(stack) {
		n = len(stack)
	}
	out := make([]int, n)
	copy(out, stack[:n])
	return out
}

// Remaining is the number of tokens left for g.
func (b *Bank) Remaining(g goods.Good) int {
	if !g.Tradable() {
		return 0
	}
	return len(b.stacks[g])
}

// Stack returns a copy of g's remaining tokens, highest first.
func (b *Bank) Stack(g goods.Good) []int {
	return b.Peek(g, b.Remaining(g))
}

// EmptyStacks counts good stacks with no tokens left.
func (b *Bank) EmptyStacks() int {
	n := 0
	for _, g := range goods.Tradables() {
		if len(b.stacks[g]) == 0 {
			n++
		}
	}
	return n
}

// BonusAvailable reports whether tier's token is still unclaimed.
func (b *Bank) BonusAvailable(tier int) bool {
	_, ok := b.bonus[tier]
	return ok
}

// ClaimBonus removes tier's token and returns its value. The first claim
// wins; later claims return false.
func (b *Bank) ClaimBonus(tier int) (int, bool) {
	v, ok := b.bonus[tier]
	if !ok {
		return 0, false
	}
	delete(b.bonus, tier)
	return v, true
}

// CamelBonusAvailable reports whether the camel token is still in the bank.
func (b *Bank) CamelBonusAvailable() bool {
	return b.camelBonus
}

// ClaimCamelBonus removes the camel token. It can be claimed once.
func (b *Bank) ClaimCamelBonus() (int, bool) {
	if !b.camelBonus {
		return 0, false
	}
	b.camelBonus = false
	return CamelBonus, true
}
