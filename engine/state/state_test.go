package state

import (
	"testing"

	"github.com/nathoo/jaipur/engine/goods"
)

func TestNewPlayer_CamelsToHerd(t *testing.T) {
	p := NewPlayer([]goods.Good{goods.Gold, goods.Camel, goods.Leather, goods.Camel, goods.Spice})

	if p.Camels() != 2 {
		t.Errorf("expected 2 camels, got %d", p.Camels())
	}
	if p.HandSize() != 3 {
		t.Fatalf("expected 3 goods in hand, got %d", p.HandSize())
	}
	want := []goods.Good{goods.Leather, goods.Spice, goods.Gold}
	for i, g := range p.Hand() {
		if g != want[i] {
			t.Fatalf("expected sorted hand %v, got %v", want, p.Hand())
		}
	}
}

func TestHand_IsCopy(t *testing.T) {
	p := NewPlayer([]goods.Good{goods.Leather})
	h := p.Hand()
	h[0] = goods.Diamond
	if p.Hand()[0] != goods.Leather {
		t.Error("Hand must return a copy")
	}
}

func TestAddGoods(t *testing.T) {
	p := NewPlayer(nil)
	p.AddGoods(goods.Diamond, goods.Camel, goods.Leather)

	if p.HandSize() != 2 || p.Camels() != 1 {
		t.Fatalf("expected 2 goods and 1 camel, got %d and %d", p.HandSize(), p.Camels())
	}
	if p.Hand()[0] != goods.Leather {
		t.Errorf("hand should stay sorted, got %v", p.Hand())
	}
	p.AddCamels(3)
	if p.Camels() != 4 {
		t.Errorf("expected 4 camels, got %d", p.Camels())
	}
}

func TestRemove(t *testing.T) {
	p := NewPlayer([]goods.Good{goods.Leather, goods.Leather, goods.Gold, goods.Camel, goods.Camel})

	err := p.Remove(goods.CountOf([]goods.Good{goods.Leather, goods.Camel}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.CountOf(goods.Leather) != 1 || p.Camels() != 1 || p.HandSize() != 2 {
		t.Fatalf("unexpected holdings %v", p.Holdings())
	}

	before := p.Holdings()
	if err := p.Remove(goods.CountOf([]goods.Good{goods.Gold, goods.Gold})); err == nil {
		t.Fatal("expected error removing cards not held")
	}
	if p.Holdings() != before {
		t.Error("failed Remove must not change holdings")
	}
}

func TestScore(t *testing.T) {
	p := NewPlayer(nil)
	p.AwardTokens(7, 7)
	p.AwardTokens(5)
	p.AwardBonus(2)
	p.AwardCamelBonus(5)

	if p.TokenPoints() != 19 {
		t.Errorf("expected 19 token points, got %d", p.TokenPoints())
	}
	if p.BonusCount() != 1 || p.BonusPoints() != 2 {
		t.Errorf("expected one bonus worth 2, got %d worth %d", p.BonusCount(), p.BonusPoints())
	}
	if p.Score() != 26 {
		t.Errorf("expected score 26, got %d", p.Score())
	}
}
