package engine

// Phase is the engine lifecycle state.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseInProgress
	PhaseEnded
)

func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not_started"
	case PhaseInProgress:
		return "in_progress"
	case PhaseEnded:
		return "ended"
	default:
		return "unknown"
	}
}
