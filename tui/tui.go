// Package tui provides a Bubble Tea terminal UI for watching and playing
// Jaipur matches. Seats without an agent are played from the input line.
package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nathoo/jaipur/engine/parser"
	"github.com/nathoo/jaipur/engine/rules"
	"github.com/nathoo/jaipur/match"
	"github.com/nathoo/jaipur/types"
)

// DefaultDelay is the pause between agent turns in autoplay.
const DefaultDelay = 400 * time.Millisecond

// Options configures a TUI session.
type Options struct {
	Trace bool
	Auto  bool          // agents play on their own instead of waiting for a key
	Delay time.Duration // pause between agent turns; DefaultDelay when zero
}

// rawLine stores an unstyled output line with its classification,
// so we can re-wrap and re-style when the terminal is resized.
type rawLine struct {
	text     string
	kind     lineKind
	isInput  bool // true for echoed player input
	isSystem bool // true for system messages
}

type keyMap struct {
	Step key.Binding
	Auto key.Binding
	Quit key.Binding
}

var keys = keyMap{
	Step: key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "next turn")),
	Auto: key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "toggle autoplay")),
	Quit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
}

// Model is the Bubble Tea model for a match.
type Model struct {
	match *match.Match

	viewport viewport.Model
	input    textinput.Model
	history  *History

	rawLines []rawLine // accumulated log lines (unstyled, for re-wrapping)

	// Cached from the engine after every turn. View never touches the
	// engine, since an agent may be deciding on another goroutine.
	snaps [types.NumPlayers]types.Snapshot
	turn  int
	turns int
	final *types.FinalScore

	width    int
	height   int
	ready    bool
	trace    bool
	auto     bool
	busy     bool // an agent step is in flight
	quitting bool
	delay    time.Duration
	lastCmd  string
	err      error
}

// outputMsg carries lines into the Update loop.
type outputMsg struct {
	input    string   // echoed player input (empty for intro)
	lines    []string // output lines
	isSystem bool     // true for meta-command output
}

// turnMsg is the result of an agent step.
type turnMsg struct {
	turn match.Turn
	err  error
}

type tickMsg struct{}

// New creates a TUI model for m. The match engine must be started.
func New(m *match.Match, opts Options) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 64
	ti.PromptStyle = styleInputPrompt

	delay := opts.Delay
	if delay <= 0 {
		delay = DefaultDelay
	}
	model := Model{
		match:   m,
		input:   ti,
		history: NewHistory(100),
		trace:   opts.Trace,
		auto:    opts.Auto,
		delay:   delay,
	}
	model.refresh()
	return model
}

// Run starts the Bubble Tea program and returns the match error, if any.
func Run(m *match.Match, opts Options) error {
	p := tea.NewProgram(New(m, opts), tea.WithAltScreen(), tea.WithMouseCellMotion())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok {
		return fm.err
	}
	return nil
}

// Init prints the intro and, in autoplay, schedules the first agent turn.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.intro(), m.schedule())
}

func (m Model) intro() tea.Cmd {
	lines := []string{
		fmt.Sprintf("Jaipur %s: %s vs %s", m.snaps[0].GameID, m.seatName(0), m.seatName(1)),
		fmt.Sprintf("Seat %d opens.", m.turn),
	}
	return func() tea.Msg {
		return outputMsg{lines: lines}
	}
}

// Update handles messages (key presses, window resize, turns, ticks).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		vpHeight := m.height - 3 // board + status bar + input line
		if vpHeight < 1 {
			vpHeight = 1
		}

		if !m.ready {
			m.viewport = viewport.New(m.width, vpHeight)
			m.viewport.KeyMap = viewportKeyMap()
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = vpHeight
		}

		m.refreshViewport()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, keys.Step):
			return m.step()
		case key.Matches(msg, keys.Auto):
			m.auto = !m.auto
			if m.auto && !m.busy {
				return m, m.schedule()
			}
			return m, nil
		}

		switch msg.String() {
		case "enter":
			return m.handleEnter()

		case "up":
			if prev, ok := m.history.Prev(); ok {
				m.input.SetValue(prev)
				m.input.CursorEnd()
			}
			return m, nil

		case "down":
			next, _ := m.history.Next()
			m.input.SetValue(next)
			m.input.CursorEnd()
			return m, nil

		case "pgup", "pgdown":
			var vpCmd tea.Cmd
			m.viewport, vpCmd = m.viewport.Update(msg)
			return m, vpCmd
		}

	case outputMsg:
		m = m.appendOutput(msg)

	case tickMsg:
		return m.step()

	case turnMsg:
		m.busy = false
		if msg.err != nil {
			m.err = msg.err
			m.auto = false
			m = m.appendOutput(outputMsg{lines: []string{"Error: " + msg.err.Error()}})
			return m, nil
		}
		m = m.recordTurn("", msg.turn)
		return m, m.schedule()
	}

	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	return m, inputCmd
}

// step starts an agent turn unless one is running, the game is over, or a
// human seat is to move.
func (m Model) step() (tea.Model, tea.Cmd) {
	if m.busy || m.ended() || m.humanToMove() {
		return m, nil
	}
	m.busy = true
	mt := m.match
	return m, func() tea.Msg {
		t, err := mt.Step(context.Background())
		return turnMsg{turn: t, err: err}
	}
}

// schedule returns a delayed step when agents should move on their own:
// in autoplay, or to answer a human seat.
func (m Model) schedule() tea.Cmd {
	if m.ended() || m.humanToMove() || !(m.auto || m.hasHuman()) {
		return nil
	}
	return tea.Tick(m.delay, func(time.Time) tea.Msg { return tickMsg{} })
}

// handleEnter processes the submitted input line.
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")

	if input == "" {
		return m.step()
	}

	m.history.Push(input)

	if strings.EqualFold(input, "again") {
		if m.lastCmd == "" {
			m = m.appendOutput(outputMsg{input: input, lines: []string{"Nothing to repeat."}, isSystem: true})
			return m, nil
		}
		input = m.lastCmd
	}

	// Meta-commands.
	if strings.HasPrefix(input, "/") {
		output, quit := m.handleMeta(input)
		m = m.appendOutput(outputMsg{input: input, lines: output, isSystem: true})
		if quit {
			m.quitting = true
			return m, tea.Quit
		}
		return m, m.schedule()
	}

	if !m.humanToMove() {
		m = m.appendOutput(outputMsg{input: input, isSystem: true, lines: []string{
			fmt.Sprintf("Seat %d (%s) is to move. Press enter to let it play.", m.turn, m.seatName(m.turn)),
		}})
		return m, nil
	}

	a, err := parser.Parse(input)
	if err != nil {
		m = m.appendOutput(outputMsg{input: input, lines: []string{"Not allowed: " + err.Error()}})
		return m, nil
	}
	t := match.Turn{Number: m.turns + 1, Seat: m.turn, Agent: m.seatName(m.turn), Action: a}
	out, err := m.match.Engine.Submit(m.turn, a)
	if err != nil {
		m = m.appendOutput(outputMsg{input: input, lines: []string{"Not allowed: " + err.Error()}})
		return m, nil
	}
	t.Outcome = out
	m.lastCmd = input
	m = m.recordTurn(input, t)
	return m, m.schedule()
}

// recordTurn logs an applied turn and refreshes the cached state.
func (m Model) recordTurn(input string, t match.Turn) Model {
	var lines []string
	for _, err := range t.Rejected {
		lines = append(lines, fmt.Sprintf("seat %d rejected: %v", t.Seat, err))
	}
	lines = append(lines, t.String()+" -> "+t.Summary())
	if m.trace {
		lines = append(lines, formatTrace(t.Outcome.Events)...)
	}

	m.refresh()
	if m.final != nil {
		lines = append(lines, m.finalLines(*m.final)...)
	}
	return m.appendOutput(outputMsg{input: input, lines: lines})
}

// refresh reloads the cached snapshots from the engine.
func (m *Model) refresh() {
	e := m.match.Engine
	for seat := range m.snaps {
		if s, err := e.State(seat); err == nil {
			m.snaps[seat] = s
		}
	}
	m.turn = e.Turn()
	m.turns = e.Turns()
	if f, err := e.Final(); err == nil {
		m.final = &f
	}
}

func (m Model) ended() bool { return m.final != nil }

func (m Model) humanToMove() bool {
	return !m.ended() && m.match.Agents[m.turn] == nil
}

func (m Model) hasHuman() bool {
	for _, a := range m.match.Agents {
		if a == nil {
			return true
		}
	}
	return false
}

func (m Model) seatName(seat int) string {
	if a := m.match.Agents[seat]; a != nil {
		return a.Name()
	}
	return "you"
}

// appendOutput adds lines to the log and refreshes the viewport.
func (m Model) appendOutput(msg outputMsg) Model {
	if msg.input != "" {
		m.rawLines = append(m.rawLines, rawLine{
			text: "> " + msg.input, isInput: true,
		})
	}

	for _, line := range msg.lines {
		rl := rawLine{text: line, isSystem: msg.isSystem}
		if !msg.isSystem {
			rl.kind = classifyLine(line)
		}
		m.rawLines = append(m.rawLines, rl)
	}

	m.refreshViewport()

	return m
}

// refreshViewport re-wraps and re-styles all raw lines at the current width
// and updates the viewport content.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}

	width := m.width
	if width < 10 {
		width = 10
	}

	var styled []string
	for _, rl := range m.rawLines {
		if rl.text == "" {
			styled = append(styled, "")
			continue
		}

		wrapped := wordWrap(rl.text, width)

		switch {
		case rl.isInput:
			styled = append(styled, stylePlayerInput.Render(wrapped))
		case rl.isSystem:
			styled = append(styled, styledSystemMsg(wrapped))
		default:
			styled = append(styled, renderLineKind(wrapped, rl.kind))
		}
	}

	m.viewport.SetContent(strings.Join(styled, "\n"))
	m.viewport.GotoBottom()
}

// wordWrap wraps text to fit within the given width, breaking at spaces.
// Leading indentation is kept on the first line.
func wordWrap(text string, width int) string {
	if width <= 0 || len(text) <= width {
		return text
	}

	indent := text[:len(text)-len(strings.TrimLeft(text, " "))]
	var b strings.Builder
	b.WriteString(indent)
	lineLen := len(indent)

	for i, word := range strings.Fields(text) {
		switch {
		case i == 0:
		case lineLen+1+len(word) > width:
			b.WriteString("\n")
			lineLen = 0
		default:
			b.WriteString(" ")
			lineLen++
		}
		b.WriteString(word)
		lineLen += len(word)
	}

	return b.String()
}

// View renders the layout: log, board, status bar, input.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	return m.viewport.View() + "\n" + m.renderBoard() + "\n" + m.renderStatusBar() + "\n" + m.input.View()
}

// handleMeta dispatches meta-commands. Returns output lines and quit flag.
func (m *Model) handleMeta(input string) ([]string, bool) {
	cmd := strings.Fields(input)[0]

	switch cmd {
	case "/quit", "/exit":
		return []string{"Goodbye."}, true

	case "/help":
		return cmdHelp(), false

	case "/legal":
		var out []string
		for _, a := range rules.Legal(rules.FromSnapshot(m.snaps[m.turn])) {
			out = append(out, "  "+parser.Format(a))
		}
		return out, false

	case "/state":
		return m.cmdState(), false

	case "/auto":
		m.auto = !m.auto
		if m.auto {
			return []string{"Autoplay on."}, false
		}
		return []string{"Autoplay off."}, false

	case "/trace":
		m.trace = !m.trace
		if m.trace {
			return []string{"Trace output enabled."}, false
		}
		return []string{"Trace output disabled."}, false

	default:
		return []string{fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd)}, false
	}
}

func cmdHelp() []string {
	return []string{
		"System:",
		"  /quit         Exit",
		"  /help         Show this help",
		"  /legal        List legal actions for the seat to move",
		"  /state        Dump the seat to move's view",
		"  /auto         Toggle autoplay (also " + keys.Auto.Help().Key + ")",
		"  /trace        Toggle event trace output",
		"",
		"Actions (market slots count from 0):",
		"  c                  Take every camel",
		"  g <slot>           Grab one good",
		"  s <good> <count>   Sell",
		"  t <goods> <slots>  Trade, e.g. t leather,camel 0,2",
		"  again              Repeat your last action",
		"",
		"Enter on an empty line or " + keys.Step.Help().Key + " plays the next agent turn.",
		"PgUp/PgDn scroll, Up/Down recall input.",
	}
}

func (m *Model) cmdState() []string {
	s := m.snaps[m.turn]
	return []string{
		fmt.Sprintf("Game: %s  Turn: %d  Phase: %s", s.GameID, s.TurnNumber, s.Phase),
		fmt.Sprintf("Seat %d hand: %s  Camels: %d  Score: %d", s.Seat, renderGoods(s.Hand), s.Camels, s.Score),
		fmt.Sprintf("Opponent: %d cards, %d camels, %d tokens", s.Opponent.HandSize, s.Opponent.Camels, s.Opponent.TokenCount),
		fmt.Sprintf("Top tokens: %v  Deck: %d  Discarded: %d", s.TopToken, s.DeckSize, s.Discarded),
	}
}

func formatTrace(evts []types.Event) []string {
	lines := []string{fmt.Sprintf("[trace] Events: %d", len(evts))}
	for _, e := range evts {
		fields := make([]string, 0, len(e.Data))
		for k := range e.Data {
			fields = append(fields, k)
		}
		sort.Strings(fields)
		var b strings.Builder
		for _, k := range fields {
			fmt.Fprintf(&b, " %s=%v", k, e.Data[k])
		}
		lines = append(lines, fmt.Sprintf("[trace]   %s seat %d%s", e.Type, e.Seat, b.String()))
	}
	return lines
}

// viewportKeyMap returns a viewport keymap with Up/Down disabled
// (we use those for input history).
func viewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		Up:           key.NewBinding(key.WithDisabled()),
		Down:         key.NewBinding(key.WithDisabled()),
	}
}
