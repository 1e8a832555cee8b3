package engine

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/nathoo/jaipur/engine/goods"
	"github.com/nathoo/jaipur/types"
)

// actionParams is the loosely typed form of an action's arguments.
type actionParams struct {
	Slot  int          `mapstructure:"slot"`
	Good  goods.Good   `mapstructure:"good"`
	Count int          `mapstructure:"count"`
	Offer []goods.Good `mapstructure:"offer"`
	Take  []int        `mapstructure:"take"`
}

// paramKeys lists the parameters each action code requires. No others are
// accepted.
var paramKeys = map[types.ActionKind][]string{
	types.TakeCamels: nil,
	types.Grab:       {"slot"},
	types.Sell:       {"good", "count"},
	types.Trade:      {"offer", "take"},
}

// DecodeAction builds an Action from a one-letter code and a parameter map,
// as it would arrive from JSON or a form. Goods may be names or numbers,
// integers may be strings, and lists may be comma-separated strings.
func DecodeAction(code string, params map[string]any) (types.Action, error) {
	kind := types.ActionKind(strings.ToLower(strings.TrimSpace(code)))
	required, ok := paramKeys[kind]
	if !ok {
		return types.Action{}, fmt.Errorf("%w: unknown action code %q", ErrBadParams, code)
	}

	var p actionParams
	var md mapstructure.Metadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			splitListHookFunc(),
			stringToGoodHookFunc(),
			stringToIntHookFunc(),
			floatToIntHookFunc(),
		),
		ErrorUnused: true,
		Metadata:    &md,
		Result:      &p,
	})
	if err != nil {
		return types.Action{}, err
	}
	if err := decoder.Decode(params); err != nil {
		return types.Action{}, fmt.Errorf("%w: %v", ErrBadParams, err)
	}

	got := make(map[string]bool, len(md.Keys))
	for _, k := range md.Keys {
		// Slice elements are recorded as "offer[0]".
		if !strings.Contains(k, "[") {
			got[k] = true
		}
	}
	for _, k := range required {
		if !got[k] {
			return types.Action{}, fmt.Errorf("%w: %q needs %q", ErrBadParams, kind, k)
		}
		delete(got, k)
	}
	if len(got) > 0 {
		extra := make([]string, 0, len(got))
		for k := range got {
			extra = append(extra, k)
		}
		sort.Strings(extra)
		return types.Action{}, fmt.Errorf("%w: %q does not take %v", ErrBadParams, kind, extra)
	}

	return types.Action{
		Kind:  kind,
		Slot:  p.Slot,
		Good:  p.Good,
		Count: p.Count,
		Offer: p.Offer,
		Take:  p.Take,
	}, nil
}

// SubmitCode is the string-coded form of Submit. Turn order is checked
// before the parameters are decoded.
func (e *Engine) SubmitCode(seat int, code string, params map[string]any) (types.Outcome, error) {
	if err := e.checkTurn(seat); err != nil {
		e.reject(seat, types.Action{Kind: types.ActionKind(code)}, err)
		return types.Outcome{}, err
	}
	a, err := DecodeAction(code, params)
	if err != nil {
		err = invalidAction(err)
		e.reject(seat, types.Action{Kind: types.ActionKind(code)}, err)
		return types.Outcome{}, err
	}
	return e.Submit(seat, a)
}

var (
	goodType      = reflect.TypeOf(goods.Good(0))
	goodSliceType = reflect.TypeOf([]goods.Good(nil))
	intSliceType  = reflect.TypeOf([]int(nil))
)

// splitListHookFunc turns "leather,camel" into a list for slice fields.
func splitListHookFunc() mapstructure.DecodeHookFuncType {
	return func(from, to reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String || (to != goodSliceType && to != intSliceType) {
			return data, nil
		}
		var out []string
		for _, s := range strings.Split(data.(string), ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		return out, nil
	}
}

// stringToGoodHookFunc converts good names. Numeric strings are left for
// stringToIntHookFunc.
func stringToGoodHookFunc() mapstructure.DecodeHookFuncType {
	return func(from, to reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String || to != goodType {
			return data, nil
		}
		s := data.(string)
		if _, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return data, nil
		}
		return goods.Parse(s)
	}
}

func stringToIntHookFunc() mapstructure.DecodeHookFuncKind {
	return func(from, to reflect.Kind, data any) (any, error) {
		if from == reflect.String && to == reflect.Int {
			return strconv.Atoi(strings.TrimSpace(data.(string)))
		}
		return data, nil
	}
}

// floatToIntHookFunc accepts JSON numbers for integer fields only when they
// are whole.
func floatToIntHookFunc() mapstructure.DecodeHookFuncKind {
	return func(from, to reflect.Kind, data any) (any, error) {
		if (from != reflect.Float32 && from != reflect.Float64) || to != reflect.Int {
			return data, nil
		}
		f := reflect.ValueOf(data).Float()
		if f != math.Trunc(f) || math.Abs(f) >= 1<<53 {
			return nil, fmt.Errorf("%w: %v is not a whole number", ErrBadParams, data)
		}
		return int(f), nil
	}
}
