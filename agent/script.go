package agent

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nathoo/jaipur/engine/parser"
	"github.com/nathoo/jaipur/types"
)

// ErrScriptExhausted is returned once every scripted action has been used.
var ErrScriptExhausted = errors.New("script exhausted")

// Script replays a fixed list of actions, one per line. Blank lines and
// lines starting with # are ignored.
type Script struct {
	name    string
	actions []types.Action
	next    int
}

// NewScript reads and parses every line of r. A syntax error fails the
// whole script with its line number.
func NewScript(name string, r io.Reader) (*Script, error) {
	s := &Script{name: name}
	sc := bufio.NewScanner(r)
	for line := 1; sc.Scan(); line++ {
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		a, err := parser.Parse(text)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", name, line, err)
		}
		s.actions = append(s.actions, a)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return s, nil
}

// LoadScriptFile opens path and parses it with NewScript.
func LoadScriptFile(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening script %s: %w", path, err)
	}
	defer f.Close()
	return NewScript(filepath.Base(path), f)
}

func (s *Script) Name() string { return "script:" + s.name }

// Len is the number of actions left.
func (s *Script) Len() int { return len(s.actions) - s.next }

func (s *Script) Decide(ctx context.Context, _ types.Snapshot) (types.Action, error) {
	if err := ctx.Err(); err != nil {
		return types.Action{}, err
	}
	if s.next >= len(s.actions) {
		return types.Action{}, ErrScriptExhausted
	}
	a := s.actions[s.next]
	s.next++
	return a, nil
}
