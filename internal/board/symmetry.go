package board

import "fmt"

// Symmetry is an isometry of the grid.
type Symmetry uint8

const (
	Identity Symmetry = iota
	Rotate180
	FlipRows // mirror top to bottom
	FlipCols // mirror left to right
	// Square grids only.
	Rotate90
	Rotate270
	Transpose
	AntiTranspose
)

// symmetriesFor returns the isometries valid on an m×n grid.
func symmetriesFor(m, n int) []Symmetry {
	if m == n {
		return []Symmetry{Identity, Rotate180, FlipRows, FlipCols, Rotate90, Rotate270, Transpose, AntiTranspose}
	}
	return []Symmetry{Identity, Rotate180, FlipRows, FlipCols}
}

// apply maps (r, c) on an m×n grid. Rotate90 turns the grid clockwise.
func (s Symmetry) apply(m, n, r, c int) (int, int) {
	switch s {
	case Identity:
		return r, c
	case Rotate180:
		return m - 1 - r, n - 1 - c
	case FlipRows:
		return m - 1 - r, c
	case FlipCols:
		return r, n - 1 - c
	case Rotate90:
		return c, n - 1 - r
	case Rotate270:
		return n - 1 - c, r
	case Transpose:
		return c, r
	case AntiTranspose:
		return n - 1 - c, n - 1 - r
	}
	panic(fmt.Sprintf("board: invalid symmetry %d", s))
}

// Inverse returns the isometry undoing s.
func (s Symmetry) Inverse() Symmetry {
	switch s {
	case Rotate90:
		return Rotate270
	case Rotate270:
		return Rotate90
	}
	return s
}

// Map applies s to p.
func (s Symmetry) Map(p Position) Position {
	r, c := s.apply(p.rows, p.cols, p.row, p.col)
	return Position{rows: p.rows, cols: p.cols, row: r, col: c}
}

func (s Symmetry) String() string {
	names := [...]string{"identity", "rotate180", "flip-rows", "flip-cols", "rotate90", "rotate270", "transpose", "anti-transpose"}
	if int(s) < len(names) {
		return names[s]
	}
	return fmt.Sprintf("Symmetry(%d)", uint8(s))
}
