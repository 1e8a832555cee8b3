package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/jaipur/engine/goods"
	"github.com/nathoo/jaipur/match"
	"github.com/nathoo/jaipur/types"
)

var (
	styleHeader = lipgloss.NewStyle().Bold(true).Underline(true)
	styleWinner = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("34"))
	styleDraw   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("228"))
)

func (c *CLI) printBoard(s types.Snapshot) {
	slots := make([]string, len(s.Market))
	for i, g := range s.Market {
		slots[i] = fmt.Sprintf("%d:%s", i, g)
	}
	c.printLine("")
	c.printLine(fmt.Sprintf("Market: %s   (deck %d)", strings.Join(slots, " "), s.DeckSize))
	c.printLine(fmt.Sprintf("Hand:   %s   camels %d   score %d", joinGoods(s.Hand), s.Camels, s.Score))
	c.printLine(fmt.Sprintf("Rival:  %d cards   camels %d   tokens %d",
		s.Opponent.HandSize, s.Opponent.Camels, s.Opponent.TokenCount))

	var tops []string
	for _, g := range goods.Tradables() {
		if top, ok := s.TopToken[g]; ok {
			tops = append(tops, fmt.Sprintf("%s %d", g, top))
		} else {
			tops = append(tops, fmt.Sprintf("%s -", g))
		}
	}
	c.printLine("Tokens: " + strings.Join(tops, ", "))
}

// printTurn is the onTurn callback for Play.
func (c *CLI) printTurn(t match.Turn) {
	for _, err := range t.Rejected {
		c.printSystem(fmt.Sprintf("seat %d rejected: %v", t.Seat, err))
	}
	c.printLine(t.String() + " -> " + t.Summary())
	if c.Trace {
		c.printTrace(t.Outcome.Events)
	}
}

func (c *CLI) printTrace(evts []types.Event) {
	c.printSystem(fmt.Sprintf("trace: %d events", len(evts)))
	for _, e := range evts {
		keys := make([]string, 0, len(e.Data))
		for k := range e.Data {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fields := make([]string, len(keys))
		for i, k := range keys {
			fields[i] = fmt.Sprintf("%s=%v", k, e.Data[k])
		}
		c.printSystem(fmt.Sprintf("trace:   %s seat %d %s", e.Type, e.Seat, strings.Join(fields, " ")))
	}
}

func (c *CLI) printFinal(f types.FinalScore, names [types.NumPlayers]string) {
	c.printLine("")
	c.printLine(c.render(styleHeader, fmt.Sprintf("%-16s %6s %6s %6s %6s %6s", "seat", "goods", "bonus", "camels", "herd", "total")))
	for seat, ps := range f.Players {
		label := fmt.Sprintf("%d %s", seat, names[seat])
		row := fmt.Sprintf("%-16s %6d %6d %6d %6d %6d", label,
			ps.GoodsTokens, ps.BonusTokens, ps.CamelBonus, ps.Camels, ps.Total)
		if seat == f.Winner {
			row = c.render(styleWinner, row)
		}
		c.printLine(row)
	}
	result := winnerLabel(f.Winner, names)
	if f.Winner == types.NoWinner {
		result = c.render(styleDraw, result)
	} else {
		result = c.render(styleWinner, result)
	}
	c.printLine(fmt.Sprintf("%s (decided by %s)", result, f.Decider))
}

func (c *CLI) printTally(t Tally, names [types.NumPlayers]string) {
	c.printLine("")
	c.printLine(c.render(styleHeader, fmt.Sprintf("%d games", t.Games)))
	for seat := range names {
		avg := 0.0
		if t.Games > 0 {
			avg = float64(t.Points[seat]) / float64(t.Games)
		}
		c.printLine(fmt.Sprintf("seat %d %-12s wins %d  avg %.1f", seat, names[seat], t.Wins[seat], avg))
	}
	c.printLine(fmt.Sprintf("draws %d", t.Draws))
}

func (c *CLI) render(s lipgloss.Style, text string) string {
	if c.Plain {
		return text
	}
	return s.Render(text)
}

func winnerLabel(winner int, names [types.NumPlayers]string) string {
	if winner == types.NoWinner {
		return "draw"
	}
	return fmt.Sprintf("seat %d (%s) wins", winner, names[winner])
}

func joinGoods(cards []goods.Good) string {
	if len(cards) == 0 {
		return "-"
	}
	out := make([]string, len(cards))
	for i, g := range cards {
		out[i] = g.String()
	}
	return strings.Join(out, ",")
}

func bonusTiers(left map[int]bool) string {
	var tiers []string
	for tier := 3; tier <= 5; tier++ {
		if left[tier] {
			tiers = append(tiers, fmt.Sprint(tier))
		}
	}
	if len(tiers) == 0 {
		return "none"
	}
	return strings.Join(tiers, ",")
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}
