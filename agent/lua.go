package agent

import (
	"context"
	"fmt"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/jaipur/engine"
	"github.com/nathoo/jaipur/engine/goods"
	"github.com/nathoo/jaipur/engine/parser"
	"github.com/nathoo/jaipur/engine/rules"
	"github.com/nathoo/jaipur/types"
)

// DecideFunc is the global a Lua agent script must define. It receives the
// seat's view as a table and returns either an action string ("g 2") or a
// table such as {kind = "s", good = "leather", count = 3}.
//
// Market slots are 0-based in both forms, as in action strings; the
// state.market array itself is 1-based like any Lua array.
const DecideFunc = "decide"

// Lua is an agent driven by a sandboxed Lua script. Not safe for
// concurrent use.
type Lua struct {
	name string
	L    *lua.LState
}

// LoadLuaString runs src in a fresh sandbox and checks that it defines
// decide.
func LoadLuaString(name, src string) (*Lua, error) {
	L := newSandbox()
	if err := L.DoString(src); err != nil {
		L.Close()
		return nil, fmt.Errorf("executing %s: %w", name, err)
	}
	return newLua(name, L)
}

// LoadLuaFile runs the script at path in a fresh sandbox.
func LoadLuaFile(path string) (*Lua, error) {
	L := newSandbox()
	if err := L.DoFile(path); err != nil {
		L.Close()
		return nil, fmt.Errorf("executing %s: %w", path, err)
	}
	return newLua(filepath.Base(path), L)
}

func newLua(name string, L *lua.LState) (*Lua, error) {
	if L.GetGlobal(DecideFunc).Type() != lua.LTFunction {
		L.Close()
		return nil, fmt.Errorf("%s: no %s(state) function defined", name, DecideFunc)
	}
	return &Lua{name: name, L: L}, nil
}

func (a *Lua) Name() string { return "lua:" + a.name }

// Close releases the VM.
func (a *Lua) Close() { a.L.Close() }

func (a *Lua) Decide(ctx context.Context, s types.Snapshot) (types.Action, error) {
	a.L.SetContext(ctx)
	defer a.L.RemoveContext()

	err := a.L.CallByParam(lua.P{
		Fn:      a.L.GetGlobal(DecideFunc),
		NRet:    1,
		Protect: true,
	}, snapshotTable(a.L, s))
	if err != nil {
		return types.Action{}, fmt.Errorf("%s: %w", a.Name(), err)
	}
	ret := a.L.Get(-1)
	a.L.Pop(1)

	switch v := ret.(type) {
	case lua.LString:
		return parser.Parse(string(v))
	case *lua.LTable:
		params, _ := toGoValue(v).(map[string]any)
		kind, _ := params["kind"].(string)
		delete(params, "kind")
		return engine.DecodeAction(kind, params)
	case *lua.LNilType:
		return types.Action{}, ErrNoMove
	default:
		return types.Action{}, fmt.Errorf("%s: decide returned %s", a.Name(), ret.Type())
	}
}

// snapshotTable exposes a snapshot to Lua. Goods are names; legal lists
// every legal action as a string.
func snapshotTable(L *lua.LState, s types.Snapshot) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("seat", lua.LNumber(s.Seat))
	t.RawSetString("turn", lua.LNumber(s.TurnNumber))
	t.RawSetString("hand", goodsList(L, s.Hand))
	t.RawSetString("camels", lua.LNumber(s.Camels))
	t.RawSetString("score", lua.LNumber(s.Score))
	t.RawSetString("market", goodsList(L, s.Market))
	t.RawSetString("deck", lua.LNumber(s.DeckSize))

	opp := L.NewTable()
	opp.RawSetString("hand_size", lua.LNumber(s.Opponent.HandSize))
	opp.RawSetString("camels", lua.LNumber(s.Opponent.Camels))
	opp.RawSetString("token_count", lua.LNumber(s.Opponent.TokenCount))
	opp.RawSetString("bonus_count", lua.LNumber(s.Opponent.BonusCount))
	t.RawSetString("opponent", opp)

	left, top := L.NewTable(), L.NewTable()
	for _, g := range goods.Tradables() {
		left.RawSetString(g.String(), lua.LNumber(s.TokensLeft[g]))
		top.RawSetString(g.String(), lua.LNumber(s.TopToken[g]))
	}
	t.RawSetString("tokens_left", left)
	t.RawSetString("top_token", top)

	bonus := L.NewTable()
	for tier, ok := range s.BonusLeft {
		bonus.RawSetInt(tier, lua.LBool(ok))
	}
	t.RawSetString("bonus_left", bonus)

	legal := L.NewTable()
	for _, act := range rules.Legal(rules.FromSnapshot(s)) {
		legal.Append(lua.LString(parser.Format(act)))
	}
	t.RawSetString("legal", legal)
	return t
}

func goodsList(L *lua.LState, cards []goods.Good) *lua.LTable {
	t := L.CreateTable(len(cards), 0)
	for _, g := range cards {
		t.Append(lua.LString(g.String()))
	}
	return t
}
