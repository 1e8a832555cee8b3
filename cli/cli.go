// Package cli provides terminal I/O for a match: turn-by-turn output, a
// human seat that reads actions from the terminal, meta-commands, and
// batch summaries.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nathoo/jaipur/agent"
	"github.com/nathoo/jaipur/engine/parser"
	"github.com/nathoo/jaipur/engine/rules"
	"github.com/nathoo/jaipur/match"
	"github.com/nathoo/jaipur/types"
)

// ErrQuit is returned by a human seat when the player quits.
var ErrQuit = errors.New("quit")

// CLI handles terminal interaction for one or more matches.
type CLI struct {
	In        io.Reader
	Out       io.Writer
	Trace     bool // print engine events after each turn
	Plain     bool // no colour in scores
	EchoInput bool // echo each input line after the prompt (for script playback)
	scanner   *bufio.Scanner
	lastCmd   string // for "again"
}

// New creates a CLI on stdin and stdout.
func New() *CLI {
	return &CLI{In: os.Stdin, Out: os.Stdout}
}

// Play runs m to the end, printing every turn and the final score.
func (c *CLI) Play(ctx context.Context, m *match.Match) (types.FinalScore, error) {
	names := agentNames(m)
	c.printSystem(fmt.Sprintf("Game %s: %s vs %s, seat %d opens.",
		shortID(m.Engine.ID().String()), names[0], names[1], m.Engine.Turn()))

	final, err := m.Run(ctx, c.printTurn)
	if err != nil {
		return types.FinalScore{}, err
	}
	c.printFinal(final, names)
	return final, nil
}

// Tally is the result of a batch of games.
type Tally struct {
	Games  int
	Wins   [types.NumPlayers]int
	Draws  int
	Points [types.NumPlayers]int
}

// Batch plays games matches built by next, printing one line per game and
// the tally at the end.
func (c *CLI) Batch(ctx context.Context, games int, next func(game int) (*match.Match, error)) (Tally, error) {
	var tally Tally
	var names [types.NumPlayers]string
	for g := 1; g <= games; g++ {
		m, err := next(g)
		if err != nil {
			return tally, err
		}
		names = agentNames(m)
		final, err := m.Run(ctx, nil)
		if err != nil {
			return tally, fmt.Errorf("game %d: %w", g, err)
		}

		tally.Games++
		for seat, ps := range final.Players {
			tally.Points[seat] += ps.Total
		}
		if final.Winner == types.NoWinner {
			tally.Draws++
		} else {
			tally.Wins[final.Winner]++
		}
		c.printLine(fmt.Sprintf("game %d: %d-%d %s (%s, %d turns)", g,
			final.Players[0].Total, final.Players[1].Total,
			winnerLabel(final.Winner, names), final.Decider, m.Engine.Turns()))
	}
	c.printTally(tally, names)
	return tally, nil
}

// Human returns an agent that reads the seat's actions from c.In.
func (c *CLI) Human() agent.Agent {
	return &human{c: c}
}

type human struct {
	c *CLI
}

func (h *human) Name() string { return "human" }

// Decide shows the board, then loops: prompt, input, dispatch. Actions are
// checked against the rules before they are returned, so a typo costs the
// player nothing.
func (h *human) Decide(ctx context.Context, s types.Snapshot) (types.Action, error) {
	c := h.c
	c.printBoard(s)
	sc := c.input()
	for {
		if err := ctx.Err(); err != nil {
			return types.Action{}, err
		}
		c.print(fmt.Sprintf("seat %d> ", s.Seat))
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return types.Action{}, err
			}
			return types.Action{}, ErrQuit
		}
		input := strings.TrimSpace(sc.Text())
		if input == "" || strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		// Meta-commands start with '/'.
		if strings.HasPrefix(input, "/") {
			if c.handleMeta(input, s) {
				return types.Action{}, ErrQuit
			}
			continue
		}

		if strings.EqualFold(input, "again") {
			if c.lastCmd == "" {
				c.printSystem("Nothing to repeat.")
				continue
			}
			input = c.lastCmd
		}

		a, err := parser.Parse(input)
		if err != nil {
			c.printSystem(err.Error())
			continue
		}
		if err := rules.Check(rules.FromSnapshot(s), a); err != nil {
			c.printSystem(fmt.Sprintf("Not allowed: %v", err))
			continue
		}
		c.lastCmd = input
		return a, nil
	}
}

func (c *CLI) input() *bufio.Scanner {
	if c.scanner == nil {
		c.scanner = bufio.NewScanner(c.In)
	}
	return c.scanner
}

// handleMeta dispatches meta-commands. Returns true if the player quits.
func (c *CLI) handleMeta(input string, s types.Snapshot) bool {
	cmd := strings.Fields(input)[0]

	switch cmd {
	case "/quit", "/exit":
		c.printSystem("Goodbye.")
		return true

	case "/help":
		c.cmdHelp()

	case "/state":
		c.cmdState(s)

	case "/legal":
		for _, a := range rules.Legal(rules.FromSnapshot(s)) {
			c.printLine("  " + parser.Format(a))
		}

	case "/board":
		c.printBoard(s)

	case "/trace":
		c.Trace = !c.Trace
		if c.Trace {
			c.printSystem("Trace output enabled.")
		} else {
			c.printSystem("Trace output disabled.")
		}

	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd))
	}

	return false
}

func (c *CLI) cmdHelp() {
	help := []string{
		"System:",
		"  /quit         Leave the game",
		"  /help         Show this help",
		"  /board        Show the market and your hand again",
		"  /legal        List every legal action",
		"  /state        Dump your full view of the game",
		"  /trace        Toggle event trace output",
		"",
		"Actions (market slots count from 0):",
		"  c                      Take every camel from the market",
		"  g <slot>               Grab one good",
		"  s <good> <count>       Sell goods (silver, gold, diamond: 2 or more)",
		"  t <goods> <slots>      Trade, e.g. t leather,camel 0,2",
		"  again                  Repeat your last action",
	}
	for _, line := range help {
		c.printLine(line)
	}
}

func (c *CLI) cmdState(s types.Snapshot) {
	c.printSystem(fmt.Sprintf("Game: %s  Turn: %d  Phase: %s", s.GameID, s.TurnNumber, s.Phase))
	c.printSystem(fmt.Sprintf("Hand: %s  Camels: %d", joinGoods(s.Hand), s.Camels))
	c.printSystem(fmt.Sprintf("Tokens: %v  Bonus tokens: %d  Score: %d", s.Tokens, s.BonusCount, s.Score))
	c.printSystem(fmt.Sprintf("Opponent: %d cards, %d camels, %d tokens, %d bonus tokens",
		s.Opponent.HandSize, s.Opponent.Camels, s.Opponent.TokenCount, s.Opponent.BonusCount))
	c.printSystem(fmt.Sprintf("Deck: %d  Discarded: %d  Camel bonus left: %v", s.DeckSize, s.Discarded, s.CamelBonusLeft))
	c.printSystem(fmt.Sprintf("Bonus tiers left: %s", bonusTiers(s.BonusLeft)))
}

func agentNames(m *match.Match) [types.NumPlayers]string {
	var names [types.NumPlayers]string
	for seat, a := range m.Agents {
		if a != nil {
			names[seat] = a.Name()
		}
	}
	return names
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
