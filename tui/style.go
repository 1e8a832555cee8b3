package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/jaipur/engine/goods"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleTurn = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleSale = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Bold(true)

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleTrace = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	styleFinal = lipgloss.NewStyle().
			Foreground(lipgloss.Color("34")).
			Bold(true)
)

// goodColors gives each card type its own colour on the board.
var goodColors = map[goods.Good]lipgloss.Color{
	goods.Leather: lipgloss.Color("130"),
	goods.Spice:   lipgloss.Color("160"),
	goods.Cloth:   lipgloss.Color("129"),
	goods.Silver:  lipgloss.Color("250"),
	goods.Gold:    lipgloss.Color("220"),
	goods.Diamond: lipgloss.Color("51"),
	goods.Camel:   lipgloss.Color("180"),
}

func renderGood(g goods.Good) string {
	c, ok := goodColors[g]
	if !ok {
		return g.String()
	}
	return lipgloss.NewStyle().Foreground(c).Render(g.String())
}

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindTurn lineKind = iota
	kindSale
	kindSystem
	kindError
	kindTrace
	kindFinal
)

// classifyLine determines what kind of output line this is.
func classifyLine(line string) lineKind {
	switch {
	case strings.HasPrefix(line, "[trace"):
		return kindTrace
	case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
		return kindSystem
	case strings.HasPrefix(line, "Not allowed"),
		strings.HasPrefix(line, "Error:"),
		strings.Contains(line, "rejected"):
		return kindError
	case strings.HasPrefix(line, "Final:"), strings.HasSuffix(line, " wins"), line == "Draw":
		return kindFinal
	case isSale(line):
		return kindSale
	default:
		return kindTurn
	}
}

// isSale reports whether a turn line ("3 seat 0 (greedy): s gold 2 -> ...")
// records a sale.
func isSale(line string) bool {
	_, rest, ok := strings.Cut(line, "): ")
	return ok && strings.HasPrefix(rest, "s ")
}

// renderLineKind applies the style for a given lineKind.
func renderLineKind(line string, kind lineKind) string {
	switch kind {
	case kindSale:
		return styleSale.Render(line)
	case kindSystem:
		return styleSystem.Render(line)
	case kindError:
		return styleError.Render(line)
	case kindTrace:
		return styleTrace.Render(line)
	case kindFinal:
		return styleFinal.Render(line)
	default:
		return styleTurn.Render(line)
	}
}

// styledSystemMsg renders a system message in gray with brackets.
func styledSystemMsg(text string) string {
	return styleSystem.Render("[" + text + "]")
}
