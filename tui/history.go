package tui

// History keeps the most recent submitted lines for Up/Down recall.
type History struct {
	entries []string
	max     int
	cursor  int // len(entries) when not navigating
}

// NewHistory creates a history holding at most max lines.
func NewHistory(max int) *History {
	return &History{max: max}
}

// Push records a line and resets navigation. Repeats of the newest line are
// dropped.
func (h *History) Push(line string) {
	if n := len(h.entries); n == 0 || h.entries[n-1] != line {
		h.entries = append(h.entries, line)
		if len(h.entries) > h.max {
			h.entries = append(h.entries[:0], h.entries[1:]...)
		}
	}
	h.cursor = len(h.entries)
}

// Prev steps back to an older line. It stops at the oldest.
func (h *History) Prev() (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	if h.cursor > 0 {
		h.cursor--
	}
	return h.entries[h.cursor], true
}

// Next steps forward. Past the newest line it returns false, meaning an
// empty input.
func (h *History) Next() (string, bool) {
	if h.cursor >= len(h.entries)-1 {
		h.cursor = len(h.entries)
		return "", false
	}
	h.cursor++
	return h.entries[h.cursor], true
}
