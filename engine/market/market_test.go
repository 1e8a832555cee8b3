package market

import (
	"testing"

	"github.com/nathoo/jaipur/engine/goods"
)

// reverse is a deterministic Shuffler that reverses the deck.
type reverse struct{}

func (reverse) Shuffle(n int, swap func(i, j int)) {
	for i := 0; i < n/2; i++ {
		swap(i, n-1-i)
	}
}

func TestFullDeck_Composition(t *testing.T) {
	d := FullDeck()
	if d.Len() != goods.TotalCards()-goods.MarketCamels {
		t.Fatalf("expected %d cards, got %d", goods.TotalCards()-goods.MarketCamels, d.Len())
	}
	counts := goods.CountOf(d.Draw(d.Len()))
	if counts[goods.Camel] != 8 {
		t.Errorf("expected 8 camels in the deck, got %d", counts[goods.Camel])
	}
	if counts[goods.Leather] != 10 || counts[goods.Diamond] != 6 {
		t.Errorf("unexpected counts %v", counts)
	}
}

func TestDeck_DrawAndShuffle(t *testing.T) {
	d := NewDeck([]goods.Good{goods.Leather, goods.Spice, goods.Gold})
	d.Shuffle(reverse{})

	got := d.Draw(2)
	if len(got) != 2 || got[0] != goods.Gold || got[1] != goods.Spice {
		t.Fatalf("expected [gold spice], got %v", got)
	}
	if d.Len() != 1 {
		t.Fatalf("expected 1 card left, got %d", d.Len())
	}

	got = d.Draw(5)
	if len(got) != 1 || got[0] != goods.Leather {
		t.Fatalf("expected short draw [leather], got %v", got)
	}
	if !d.Empty() {
		t.Error("deck should be empty")
	}
	if got := d.Draw(1); got != nil {
		t.Errorf("expected nil from empty deck, got %v", got)
	}
}

func TestSeed(t *testing.T) {
	d := NewDeck([]goods.Good{goods.Gold, goods.Silver, goods.Leather})
	m := Seed(d)

	want := []goods.Good{goods.Camel, goods.Camel, goods.Camel, goods.Gold, goods.Silver}
	got := m.Cards()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
	if d.Len() != 1 {
		t.Errorf("expected 1 card left in deck, got %d", d.Len())
	}
}

func TestTakeCamels_Refill(t *testing.T) {
	d := NewDeck([]goods.Good{goods.Diamond, goods.Cloth, goods.Spice})
	m := New(goods.Camel, goods.Leather, goods.Camel, goods.Gold, goods.Camel)

	if n := m.TakeCamels(); n != 3 {
		t.Fatalf("expected 3 camels, got %d", n)
	}
	if m.Len() != 2 {
		t.Fatalf("expected 2 cards left, got %d", m.Len())
	}
	drawn := m.Refill(d)
	if len(drawn) != 3 || !m.Full() {
		t.Fatalf("expected full market after drawing 3, got %v", m.Cards())
	}
	want := []goods.Good{goods.Leather, goods.Gold, goods.Diamond, goods.Cloth, goods.Spice}
	for i, g := range m.Cards() {
		if g != want[i] {
			t.Fatalf("expected %v, got %v", want, m.Cards())
		}
	}
}

func TestRefill_ShortDeck(t *testing.T) {
	d := NewDeck([]goods.Good{goods.Silver})
	m := New(goods.Leather, goods.Leather, goods.Spice)

	m.Refill(d)
	if m.Len() != 4 {
		t.Fatalf("expected 4 cards when the deck runs out, got %d", m.Len())
	}
	if m.Full() {
		t.Error("market should not be full")
	}
}

func TestTake(t *testing.T) {
	m := New(goods.Leather, goods.Spice, goods.Gold)

	g, err := m.Take(1)
	if err != nil || g != goods.Spice {
		t.Fatalf("expected spice, got %v (%v)", g, err)
	}
	if m.Len() != 2 {
		t.Fatalf("expected 2 cards, got %d", m.Len())
	}
	if _, err := m.Take(5); err == nil {
		t.Error("expected out of range error")
	}
	if _, err := m.Take(-1); err == nil {
		t.Error("expected negative slot error")
	}
}

func TestSwap(t *testing.T) {
	m := New(goods.Leather, goods.Spice, goods.Gold, goods.Gold, goods.Camel)

	taken, err := m.Swap([]int{2, 3}, []goods.Good{goods.Camel, goods.Cloth})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if taken[0] != goods.Gold || taken[1] != goods.Gold {
		t.Errorf("expected two gold taken, got %v", taken)
	}
	want := []goods.Good{goods.Leather, goods.Spice, goods.Camel, goods.Cloth, goods.Camel}
	for i, g := range m.Cards() {
		if g != want[i] {
			t.Fatalf("expected %v, got %v", want, m.Cards())
		}
	}

	if _, err := m.Swap([]int{0, 0}, []goods.Good{goods.Gold, goods.Gold}); err == nil {
		t.Error("expected duplicate slot error")
	}
	if _, err := m.Swap([]int{0}, []goods.Good{goods.Gold, goods.Gold}); err == nil {
		t.Error("expected length mismatch error")
	}
	before := m.Cards()
	if _, err := m.Swap([]int{1, 9}, []goods.Good{goods.Gold, goods.Gold}); err == nil {
		t.Error("expected out of range error")
	}
	for i, g := range m.Cards() {
		if g != before[i] {
			t.Fatal("failed swap must not change the market")
		}
	}
}

func TestCards_IsCopy(t *testing.T) {
	m := New(goods.Leather, goods.Spice)
	c := m.Cards()
	c[0] = goods.Diamond
	if g, _ := m.At(0); g != goods.Leather {
		t.Error("Cards must return a copy")
	}
}
