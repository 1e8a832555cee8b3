// Package agent provides action sources. An agent sees one seat's
// snapshot and proposes one action; the engine decides whether it stands.
package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nathoo/jaipur/types"
)

// Agent proposes the next action for the seat whose snapshot it is given.
type Agent interface {
	Name() string
	Decide(ctx context.Context, s types.Snapshot) (types.Action, error)
}

// ErrNoMove is returned when an agent has nothing to propose.
var ErrNoMove = errors.New("no move")

// New builds an agent from a spec: "random", "greedy", "script:<file>" or
// "lua:<file>". seed drives the random agent.
func New(spec string, seed int64) (Agent, error) {
	kind, arg, _ := strings.Cut(strings.TrimSpace(spec), ":")
	switch strings.ToLower(kind) {
	case "random":
		return NewRandom(seed), nil
	case "greedy":
		return NewGreedy(), nil
	case "script":
		return LoadScriptFile(arg)
	case "lua":
		if arg == "" {
			return nil, fmt.Errorf("lua agent needs a file: lua:<file>")
		}
		return LoadLuaFile(arg)
	default:
		return nil, fmt.Errorf("unknown agent %q", spec)
	}
}
