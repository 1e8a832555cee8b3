package engine

import (
	"errors"
	"reflect"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/nathoo/jaipur/engine/goods"
	"github.com/nathoo/jaipur/types"
)

func TestDecodeAction(t *testing.T) {
	tests := []struct {
		name   string
		code   string
		params map[string]any
		want   types.Action
	}{
		{
			name: "take camels",
			code: "c",
			want: types.Action{Kind: types.TakeCamels},
		},
		{
			name:   "grab with int",
			code:   "g",
			params: map[string]any{"slot": 3},
			want:   types.Action{Kind: types.Grab, Slot: 3},
		},
		{
			name:   "grab with string",
			code:   "G",
			params: map[string]any{"slot": "0"},
			want:   types.Action{Kind: types.Grab, Slot: 0},
		},
		{
			name:   "grab with json number",
			code:   "g",
			params: map[string]any{"slot": float64(4)},
			want:   types.Action{Kind: types.Grab, Slot: 4},
		},
		{
			name:   "sell by name",
			code:   "s",
			params: map[string]any{"good": "diamonds", "count": "2"},
			want:   types.Action{Kind: types.Sell, Good: goods.Diamond, Count: 2},
		},
		{
			name:   "sell by index",
			code:   "s",
			params: map[string]any{"good": "0", "count": 1},
			want:   types.Action{Kind: types.Sell, Good: goods.Leather, Count: 1},
		},
		{
			name:   "trade with lists",
			code:   "t",
			params: map[string]any{"offer": []any{"leather", "camel"}, "take": []any{0, "2"}},
			want:   types.Action{Kind: types.Trade, Offer: []goods.Good{goods.Leather, goods.Camel}, Take: []int{0, 2}},
		},
		{
			name:   "trade with comma strings",
			code:   "t",
			params: map[string]any{"offer": "spice, spice", "take": "1,3"},
			want:   types.Action{Kind: types.Trade, Offer: []goods.Good{goods.Spice, goods.Spice}, Take: []int{1, 3}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeAction(tt.code, tt.params)
			if err != nil {
				t.Fatalf("DecodeAction: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDecodeAction_Errors(t *testing.T) {
	tests := []struct {
		name   string
		code   string
		params map[string]any
	}{
		{"unknown code", "x", nil},
		{"grab without slot", "g", map[string]any{}},
		{"sell without count", "s", map[string]any{"good": "gold"}},
		{"camels with slot", "c", map[string]any{"slot": 1}},
		{"unknown key", "g", map[string]any{"slot": 1, "colour": "red"}},
		{"bad good", "s", map[string]any{"good": "rubies", "count": 2}},
		{"bad int", "g", map[string]any{"slot": "two"}},
		{"trade missing take", "t", map[string]any{"offer": "leather,leather"}},
		{"fractional count", "s", map[string]any{"good": "leather", "count": 2.5}},
		{"fractional slot", "g", map[string]any{"slot": 1.5}},
		{"fractional take", "t", map[string]any{"offer": "leather,leather", "take": []any{0.0, 2.2}}},
		{"huge slot", "g", map[string]any{"slot": 1e20}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeAction(tt.code, tt.params); !errors.Is(err, ErrBadParams) {
				t.Errorf("expected ErrBadParams, got %v", err)
			}
		})
	}
}

func TestSubmitCode(t *testing.T) {
	e := newTestEngine(t, 1)
	rig(e, []goods.Good{L, L}, []goods.Good{Sp}, []goods.Good{Ca, Di, Ca, L, Sp}, longDeck())

	// Turn order comes before parameter decoding.
	_, err := e.SubmitCode(1, "g", map[string]any{"slot": "nope"})
	if !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("expected not-your-turn, got %v", err)
	}

	_, err = e.SubmitCode(0, "g", map[string]any{"slot": "nope"})
	if !errors.Is(err, ErrInvalidAction) || !errors.Is(err, ErrBadParams) {
		t.Fatalf("expected bad params, got %v", err)
	}

	out, err := e.SubmitCode(0, "g", map[string]any{"slot": "1"})
	if err != nil {
		t.Fatalf("SubmitCode: %v", err)
	}
	if !reflect.DeepEqual(out.GoodsGained, []goods.Good{Di}) {
		t.Errorf("expected diamond, got %v", out.GoodsGained)
	}
	if e.Turn() != 1 {
		t.Errorf("expected seat 1 to act")
	}
}

func TestDecodeAction_WholeFloats(t *testing.T) {
	a, err := DecodeAction("s", map[string]any{"good": "gold", "count": 2.0})
	if err != nil {
		t.Fatalf("DecodeAction: %v", err)
	}
	if a.Count != 2 || a.Good != goods.Gold {
		t.Errorf("expected gold x2, got %+v", a)
	}

	a, err = DecodeAction("t", map[string]any{"offer": "leather,leather", "take": []any{float64(0), float64(3)}})
	if err != nil {
		t.Fatalf("DecodeAction: %v", err)
	}
	if !reflect.DeepEqual(a.Take, []int{0, 3}) {
		t.Errorf("expected take [0 3], got %v", a.Take)
	}
}

func TestSubmitCode_LogsOutOfTurn(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	e := New(Config{Seed: 1, FirstPlayer: 0, Logger: zap.New(core)})
	if err := e.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	if _, err := e.SubmitCode(1, "c", nil); !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("expected not-your-turn, got %v", err)
	}
	rejected := logs.FilterMessage("action rejected").All()
	if len(rejected) != 1 {
		t.Fatalf("expected one rejection log, got %d", len(rejected))
	}
	if seat := rejected[0].ContextMap()["seat"]; seat != int64(1) {
		t.Errorf("expected seat 1 in the log, got %v", seat)
	}
}
