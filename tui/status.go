package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/jaipur/engine/goods"
	"github.com/nathoo/jaipur/types"
)

// renderStatusBar produces a full-width inverted status line showing both
// seats' scores, the seat to move, and the deck size.
func (m Model) renderStatusBar() string {
	var seats []string
	for seat, s := range m.snaps {
		marker := " "
		if !m.ended() && seat == m.turn {
			marker = "*"
		}
		seats = append(seats, fmt.Sprintf("%s%d %s %d", marker, seat, m.seatName(seat), s.Score))
	}

	left := " " + strings.Join(seats, " | ")
	right := fmt.Sprintf("Deck: %d | T:%d ", m.snaps[0].DeckSize, m.turns)
	if m.auto {
		right = "AUTO | " + right
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}

// renderBoard shows the market with slot numbers and, when a human seat is
// to move, that seat's hand.
func (m Model) renderBoard() string {
	s := m.snaps[m.turn]
	slots := make([]string, len(s.Market))
	for i, g := range s.Market {
		slots[i] = fmt.Sprintf("%d:%s", i, renderGood(g))
	}
	line := " Market " + strings.Join(slots, " ")
	if m.humanToMove() {
		line += "   Hand " + renderGoods(s.Hand) + fmt.Sprintf("   Camels %d", s.Camels)
	}
	return line
}

func renderGoods(cards []goods.Good) string {
	if len(cards) == 0 {
		return "-"
	}
	out := make([]string, len(cards))
	for i, g := range cards {
		out[i] = renderGood(g)
	}
	return strings.Join(out, ",")
}

// finalLines renders the score table for the end of the game.
func (m Model) finalLines(f types.FinalScore) []string {
	lines := []string{"Final:"}
	for seat, ps := range f.Players {
		lines = append(lines, fmt.Sprintf("  seat %d %-10s goods %3d  bonus %3d  camels %2d  total %3d",
			seat, m.seatName(seat), ps.GoodsTokens, ps.BonusTokens, ps.CamelBonus, ps.Total))
	}
	if f.Winner == types.NoWinner {
		return append(lines, "Draw")
	}
	return append(lines, fmt.Sprintf("Decided by %s: seat %d %s wins", f.Decider, f.Winner, m.seatName(f.Winner)))
}
