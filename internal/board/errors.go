package board

import "errors"

var (
	// ErrInvalidMove is returned when a submitted move is not in the legal set.
	ErrInvalidMove = errors.New("invalid move")
	// ErrEmptyUndoLog is returned when undo is requested with no moves played.
	ErrEmptyUndoLog = errors.New("no move to undo")
	// ErrOutOfBounds is returned for coordinates outside the 8x8 board.
	ErrOutOfBounds = errors.New("square out of bounds")
	// ErrInvalidSetup is returned when a position diagram is malformed or illegal.
	ErrInvalidSetup = errors.New("invalid setup")
)
