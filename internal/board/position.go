// Package board implements the m,n,k-game: an M×N grid on which two players
// alternately place marks, the first to align K of them winning.
package board

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Position is a cell of a rows×cols grid. The zero value is not a valid
// position; use NewPosition.
type Position struct {
	rows, cols int
	row, col   int
}

// NewPosition creates a bounds-checked position.
func NewPosition(rows, cols, row, col int) (Position, error) {
	if row < 0 || row >= rows || col < 0 || col >= cols {
		return Position{}, errors.Wrapf(ErrOutOfRange, "(%d,%d) on %dx%d", row, col, rows, cols)
	}
	return Position{rows: rows, cols: cols, row: row, col: col}, nil
}

// MustPosition is NewPosition for coordinates known to be valid.
func MustPosition(rows, cols, row, col int) Position {
	p, err := NewPosition(rows, cols, row, col)
	if err != nil {
		panic(err)
	}
	return p
}

// ParsePosition parses "row,col" on a rows×cols grid.
func ParsePosition(rows, cols int, s string) (Position, error) {
	r, c, ok := strings.Cut(strings.TrimSpace(s), ",")
	if !ok {
		return Position{}, errors.Errorf("invalid position %q: want row,col", s)
	}
	row, err := strconv.Atoi(strings.TrimSpace(r))
	if err != nil {
		return Position{}, errors.Wrapf(err, "invalid row in %q", s)
	}
	col, err := strconv.Atoi(strings.TrimSpace(c))
	if err != nil {
		return Position{}, errors.Wrapf(err, "invalid column in %q", s)
	}
	return NewPosition(rows, cols, row, col)
}

// Row returns the 0-based row.
func (p Position) Row() int { return p.row }

// Col returns the 0-based column.
func (p Position) Col() int { return p.col }

// Rows returns the grid height the position belongs to.
func (p Position) Rows() int { return p.rows }

// Cols returns the grid width the position belongs to.
func (p Position) Cols() int { return p.cols }

// Index returns the row-major index of the cell.
func (p Position) Index() int {
	return p.row*p.cols + p.col
}

// Translate returns the position moved by (dr, dc) on the same grid.
func (p Position) Translate(dr, dc int) (Position, error) {
	return NewPosition(p.rows, p.cols, p.row+dr, p.col+dc)
}

// String returns "row,col".
func (p Position) String() string {
	return fmt.Sprintf("%d,%d", p.row, p.col)
}

// Direction is the orientation of an alignment.
type Direction uint8

const (
	Horizontal        Direction = iota // left to right
	Vertical                           // top to bottom
	PrimaryDiagonal                    // top-left to bottom-right
	SecondaryDiagonal                  // bottom-left to top-right
)

// Directions lists every direction in table order.
var Directions = [...]Direction{Horizontal, Vertical, PrimaryDiagonal, SecondaryDiagonal}

// Step returns the (row, col) increment from one cell of a line to the next.
func (d Direction) Step() (int, int) {
	switch d {
	case Horizontal:
		return 0, 1
	case Vertical:
		return 1, 0
	case PrimaryDiagonal:
		return 1, 1
	case SecondaryDiagonal:
		return -1, 1
	}
	panic(fmt.Sprintf("board: invalid direction %d", d))
}

func (d Direction) String() string {
	switch d {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	case PrimaryDiagonal:
		return "primary-diagonal"
	case SecondaryDiagonal:
		return "secondary-diagonal"
	}
	return fmt.Sprintf("Direction(%d)", uint8(d))
}
