package board

import (
	"fmt"

	"github.com/hailam/mnkplay/internal/game"
)

// Cell is the content of a grid cell.
type Cell uint8

const (
	Free Cell = iota
	MarkP1
	MarkP2
	OffGrid // pseudo-cell returned for coordinates outside the grid
)

// markOf returns the mark placed by p.
func markOf(p game.Player) Cell {
	if p == game.P1 {
		return MarkP1
	}
	return MarkP2
}

// Owner returns the player who placed the mark and false for non-marks.
func (c Cell) Owner() (game.Player, bool) {
	switch c {
	case MarkP1:
		return game.P1, true
	case MarkP2:
		return game.P2, true
	}
	return game.P1, false
}

// Rune returns the character used by Board.String.
func (c Cell) Rune() rune {
	switch c {
	case MarkP1:
		return 'X'
	case MarkP2:
		return 'O'
	case Free:
		return '.'
	}
	return '#'
}

func (c Cell) String() string {
	return string(c.Rune())
}

// GameState is the outcome of a board.
type GameState uint8

const (
	Open GameState = iota
	WinP1
	WinP2
	Draw
)

func winFor(p game.Player) GameState {
	if p == game.P1 {
		return WinP1
	}
	return WinP2
}

func (s GameState) String() string {
	switch s {
	case Open:
		return "open"
	case WinP1:
		return "P1 wins"
	case WinP2:
		return "P2 wins"
	case Draw:
		return "draw"
	}
	return fmt.Sprintf("GameState(%d)", uint8(s))
}

// grid is the row-major cell array shared by the board and its managers.
type grid struct {
	m, n  int
	cells []Cell
}

func newGrid(m, n int) *grid {
	return &grid{m: m, n: n, cells: make([]Cell, m*n)}
}

func (g *grid) inside(r, c int) bool {
	return r >= 0 && r < g.m && c >= 0 && c < g.n
}

// at returns OffGrid outside the grid.
func (g *grid) at(r, c int) Cell {
	if !g.inside(r, c) {
		return OffGrid
	}
	return g.cells[r*g.n+c]
}

func (g *grid) set(r, c int, v Cell) {
	g.cells[r*g.n+c] = v
}
