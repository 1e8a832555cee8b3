// Package market implements the draw pile and the five-slot display.
package market

import "github.com/nathoo/jaipur/engine/goods"

// Shuffler permutes n elements through swap.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// Deck is the face-down draw pile. Cards are drawn from the front.
type Deck struct {
	cards []goods.Good
}

// NewDeck creates a deck holding a copy of cards, in the given order.
func NewDeck(cards []goods.Good) *Deck {
	d := &Deck{cards: make([]goods.Good, len(cards))}
	copy(d.cards, cards)
	return d
}

// FullDeck builds every card of the game except the camels that seed the
// market, unshuffled.
func FullDeck() *Deck {
	var cards []goods.Good
	for _, g := range goods.All() {
		n := g.DeckCount()
		if g == goods.Camel {
			n -= goods.MarketCamels
		}
		for i := 0; i < n; i++ {
			cards = append(cards, g)
		}
	}
	return &Deck{cards: cards}
}

// Shuffle permutes the deck with rng.
func (d *Deck) Shuffle(rng Shuffler) {
	rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Draw removes and returns the top n cards. Returns fewer if the deck is short.
func (d *Deck) Draw(n int) []goods.Good {
	if n > len(d.cards) {
		n = len(d.cards)
	}
	if n <= 0 {
		return nil
	}
	drawn := make([]goods.Good, n)
	copy(drawn, d.cards[:n])
	d.cards = d.cards[n:]
	return drawn
}

// Len returns the number of cards remaining.
func (d *Deck) Len() int {
	return len(d.cards)
}

// Empty reports whether the deck is exhausted.
func (d *Deck) Empty() bool {
	return len(d.cards) == 0
}
