package board

import "github.com/pkg/errors"

var (
	// ErrOutOfRange is returned for coordinates outside the grid.
	ErrOutOfRange = errors.New("position out of range")
	// ErrGameOver is returned when moving on a terminal board.
	ErrGameOver = errors.New("game is over")
	// ErrWrongBoard is returned for positions built for different extents.
	ErrWrongBoard = errors.New("position belongs to a different board")
	// ErrOccupied is returned when the target cell is already marked.
	ErrOccupied = errors.New("cell is occupied")
	// ErrEmptyHistory is returned by Undo on a board with no moves.
	ErrEmptyHistory = errors.New("no move to undo")
	// ErrInvalidSize is returned by New for negative extents or K < 1.
	ErrInvalidSize = errors.New("invalid board size")
)
