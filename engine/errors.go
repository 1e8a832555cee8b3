package engine

import (
	"errors"
	"fmt"
)

// Error kinds. Match them with errors.Is.
var (
	// ErrInvalidAction: the request is malformed, out of turn, against the
	// rules, or made after the game ended.
	ErrInvalidAction = errors.New("invalid action")
	// ErrInvalidState: the engine cannot serve the request in its phase.
	ErrInvalidState = errors.New("invalid state")
)

// Lifecycle and turn-order causes, wrapped inside an *Error.
var (
	ErrNotStarted  = errors.New("game not started")
	ErrInProgress  = errors.New("game already in progress")
	ErrNotEnded    = errors.New("game has not ended")
	ErrGameOver    = errors.New("game already ended")
	ErrUnknownSeat = errors.New("unknown seat")
	ErrNotYourTurn = errors.New("not your turn")
	ErrBadParams   = errors.New("malformed action parameters")
)

// Error is the error type returned by the engine's public API.
type Error struct {
	Kind error // ErrInvalidAction or ErrInvalidState
	Err  error // cause
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the error's kind, so errors.Is works for both the kind and
// anything in the cause chain.
func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func invalidAction(err error) error {
	return &Error{Kind: ErrInvalidAction, Err: err}
}

func invalidState(err error) error {
	return &Error{Kind: ErrInvalidState, Err: err}
}
