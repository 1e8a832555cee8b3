// Package parser converts action strings into Actions and back.
// Intentionally dumb: one verb, then positional arguments.
//
//	c                      take every camel
//	g 2                    grab the card in slot 2
//	s leather 3            sell three leather
//	t leather,camel 0,2    trade a leather and a camel for slots 0 and 2
package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/nathoo/jaipur/engine/goods"
	"github.com/nathoo/jaipur/types"
)

// ErrSyntax is wrapped by every Parse error.
var ErrSyntax = errors.New("action syntax")

var verbAliases = map[string]types.ActionKind{
	"c":      types.TakeCamels,
	"camel":  types.TakeCamels,
	"camels": types.TakeCamels,
	"herd":   types.TakeCamels,

	"g":    types.Grab,
	"grab": types.Grab,
	"take": types.Grab,
	"get":  types.Grab,

	"s":    types.Sell,
	"sell": types.Sell,

	"t":     types.Trade,
	"trade": types.Trade,
	"swap":  types.Trade,
}

// arity is the number of arguments each verb takes.
var arity = map[types.ActionKind]int{
	types.TakeCamels: 0,
	types.Grab:       1,
	types.Sell:       2,
	types.Trade:      2,
}

// Parse converts a raw action string into an Action. It checks syntax
// only; whether the action is legal is for the rules to decide.
func Parse(input string) (types.Action, error) {
	words := strings.Fields(strings.ToLower(strings.TrimSpace(input)))
	if len(words) == 0 {
		return types.Action{}, fmt.Errorf("%w: empty action", ErrSyntax)
	}

	kind, ok := verbAliases[words[0]]
	if !ok {
		return types.Action{}, fmt.Errorf("%w: unknown verb %q", ErrSyntax, words[0])
	}
	args := words[1:]
	if len(args) != arity[kind] {
		return types.Action{}, fmt.Errorf("%w: %q takes %d arguments, got %d", ErrSyntax, words[0], arity[kind], len(args))
	}

	a := types.Action{Kind: kind}
	var err error
	switch kind {
	case types.Grab:
		a.Slot, err = parseInt(args[0])
	case types.Sell:
		if a.Good, err = parseGood(args[0]); err == nil {
			a.Count, err = parseInt(args[1])
		}
	case types.Trade:
		if a.Offer, err = parseGoods(args[0]); err == nil {
			a.Take, err = parseInts(args[1])
		}
	}
	if err != nil {
		return types.Action{}, err
	}
	return a, nil
}

// Format renders a in the canonical form Parse accepts.
func Format(a types.Action) string {
	switch a.Kind {
	case types.TakeCamels:
		return "c"
	case types.Grab:
		return fmt.Sprintf("g %d", a.Slot)
	case types.Sell:
		return fmt.Sprintf("s %v %d", a.Good, a.Count)
	case types.Trade:
		offer := make([]string, len(a.Offer))
		for i, g := range a.Offer {
			offer[i] = g.String()
		}
		take := make([]string, len(a.Take))
		for i, s := range a.Take {
			take[i] = strconv.Itoa(s)
		}
		return fmt.Sprintf("t %s %s", strings.Join(offer, ","), strings.Join(take, ","))
	default:
		return fmt.Sprintf("?%s", string(a.Kind))
	}
}

func parseInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrSyntax, s)
	}
	return n, nil
}

func parseGood(s string) (goods.Good, error) {
	g, err := goods.Parse(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	return g, nil
}

func parseInts(list string) ([]int, error) {
	parts := splitList(list)
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := parseInt(p)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func parseGoods(list string) ([]goods.Good, error) {
	parts := splitList(list)
	out := make([]goods.Good, 0, len(parts))
	for _, p := range parts {
		g, err := parseGood(p)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, nil
}

// splitList splits a comma-separated list, dropping empty items.
func splitList(list string) []string {
	var out []string
	for _, p := range strings.Split(list, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
