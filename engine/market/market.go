package market

import (
	"fmt"

	"github.com/nathoo/jaipur/engine/goods"
)

// Size is the number of slots in a full market.
const Size = 5

// Market is the face-up display. Slots are compacted when cards leave and
// refilled at the end in deck order.
type Market struct {
	slots []goods.Good
}

// New creates a market holding cards in slot order.
func New(cards ...goods.Good) *Market {
	m := &Market{slots: make([]goods.Good, 0, Size)}
	m.slots = append(m.slots, cards...)
	return m
}

// Seed creates the opening market: three camels plus draws from deck.
func Seed(deck *Deck) *Market {
	m := New()
	for i := 0; i < goods.MarketCamels; i++ {
		m.slots = append(m.slots, goods.Camel)
	}
	m.Refill(deck)
	return m
}

// Len is the number of cards on display.
func (m *Market) Len() int {
	return len(m.slots)
}

// Full reports whether every slot holds a card.
func (m *Market) Full() bool {
	return len(m.slots) >= Size
}

// At returns the card in slot i.
func (m *Market) At(i int) (goods.Good, error) {
	if i < 0 || i >= len(m.slots) {
		return 0, fmt.Errorf("slot %d out of range [0,%d)", i, len(m.slots))
	}
	return m.slots[i], nil
}

// Cards returns a copy of the display in slot order.
func (m *Market) Cards() []goods.Good {
	out := make([]goods.Good, len(m.slots))
	copy(out, m.slots)
	return out
}

// Counts tallies the display.
func (m *Market) Counts() goods.Counts {
	return goods.CountOf(m.slots)
}

// CamelCount is the number of camels on display.
func (m *Market) CamelCount() int {
	return m.Counts()[goods.Camel]
}

// Refill draws from deck until the market is full or the deck runs out.
// It returns the cards drawn.
func (m *Market) Refill(deck *Deck) []goods.Good {
	missing := Size - len(m.slots)
	if missing <= 0 {
		return nil
	}
	drawn := deck.Draw(missing)
	m.slots = append(m.slots, drawn...)
	return drawn
}

// TakeCamels removes every camel from the display and returns how many
// were taken.
func (m *Market) TakeCamels() int {
	kept := m.slots[:0]
	taken := 0
	for _, g := range m.slots {
		if g == goods.Camel {
			taken++
			continue
		}
		kept = append(kept, g)
	}
	m.slots = kept
	return taken
}

// Take removes and returns the card in slot i.
func (m *Market) Take(i int) (goods.Good, error) {
	g, err := m.At(i)
	if err != nil {
		return 0, err
	}
	m.slots = append(m.slots[:i], m.slots[i+1:]...)
	return g, nil
}

// Swap replaces the cards in slots with offered, pairwise, and returns the
// cards that were removed. slots must be distinct and in range, and
// len(offered) must equal len(slots).
func (m *Market) Swap(slots []int, offered []goods.Good) ([]goods.Good, error) {
	if len(slots) != len(offered) {
		return nil, fmt.Errorf("swap of %d slots with %d cards", len(slots), len(offered))
	}
	seen := make(map[int]bool, len(slots))
	for _, s := range slots {
		if s < 0 || s >= len(m.slots) {
			return nil, fmt.Errorf("slot %d out of range [0,%d)", s, len(m.slots))
		}
		if seen[s] {
			return nil, fmt.Errorf("slot %d listed twice", s)
		}
		seen[s] = true
	}
	taken := make([]goods.Good, len(slots))
	for i, s := range slots {
		taken[i] = m.slots[s]
		m.slots[s] = offered[i]
	}
	return taken, nil
}
