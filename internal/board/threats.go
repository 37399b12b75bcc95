package board

import (
	"fmt"

	"github.com/hailam/mnkplay/internal/dat"
	"github.com/hailam/mnkplay/internal/game"
)

// ThreatsManager tracks every alignment of one length on a grid and keeps
// per-player counters of each threat variant.
//
// Lines are addressed by a dense key. With B = max(0, N-L+1) horizontal
// starts per row and H = max(0, M-L+1) vertical starts per column:
//
//	horizontal   row*B + col
//	vertical     B*M + row*N + col
//	primary      B*(M+row) + N*H + col
//	secondary    B*(2H+row) + N*H + col
//
// Secondary diagonals are keyed by their bottom-left (first) cell.
type ThreatsManager struct {
	g      *grid
	length int
	b, h   int
	lines  *dat.Table[Alignment]
	counts [numThreats][2]int
}

// newThreatsManager creates a manager for lines of the given length on g.
func newThreatsManager(g *grid, length int) *ThreatsManager {
	tm := &ThreatsManager{
		g:      g,
		length: length,
		b:      max(0, g.n-length+1),
		h:      max(0, g.m-length+1),
	}
	tm.lines = dat.New(tm.capacity(), tm.key)
	return tm
}

// Len returns the line length covered by the manager.
func (tm *ThreatsManager) Len() int { return tm.length }

func (tm *ThreatsManager) capacity() int {
	return tm.b*(tm.g.m+tm.h) + tm.h*(tm.g.n+tm.b)
}

func (tm *ThreatsManager) key(a *Alignment) int {
	return tm.keyOf(a.row, a.col, a.dir)
}

func (tm *ThreatsManager) keyOf(row, col int, dir Direction) int {
	b, h, m, n := tm.b, tm.h, tm.g.m, tm.g.n
	switch dir {
	case Horizontal:
		return row*b + col
	case Vertical:
		return b*m + row*n + col
	case PrimaryDiagonal:
		return b*(m+row) + n*h + col
	case SecondaryDiagonal:
		return b*(2*h+row) + n*h + col
	}
	panic(fmt.Sprintf("board: invalid direction %d", dir))
}

// fits reports whether a line of the managed length starting at (row, col)
// lies entirely on the grid.
func (tm *ThreatsManager) fits(row, col int, dir Direction) bool {
	dr, dc := dir.Step()
	l := tm.length - 1
	return tm.g.inside(row, col) && tm.g.inside(row+dr*l, col+dc*l)
}

// Count returns the number of alignments classified as t for p.
func (tm *ThreatsManager) Count(t Threat, p game.Player) int {
	return tm.counts[t][p.Index()]
}

// Alignment returns the tracked line starting at (row, col), or nil if no
// mark has touched it yet.
func (tm *ThreatsManager) Alignment(row, col int, dir Direction) *Alignment {
	if !tm.fits(row, col, dir) {
		return nil
	}
	return tm.lines.Get(tm.keyOf(row, col, dir))
}

// Mark records a mark by p at (row, col). The grid must already hold it.
func (tm *ThreatsManager) Mark(row, col int, p game.Player) {
	tm.update(row, col, func(a *Alignment) { a.mark(p) })
}

// Unmark removes p's mark at (row, col). The grid must already be cleared.
func (tm *ThreatsManager) Unmark(row, col int, p game.Player) {
	tm.update(row, col, func(a *Alignment) { a.unmark(p) })
}

func (tm *ThreatsManager) update(row, col int, change func(*Alignment)) {
	l := tm.length
	for _, dir := range Directions {
		dr, dc := dir.Step()
		// Lines containing the cell.
		for t := 0; t < l; t++ {
			fr, fc := row-dr*t, col-dc*t
			if tm.fits(fr, fc, dir) {
				tm.touch(fr, fc, dir, change)
			}
		}
		// Lines for which the cell is a border.
		if fr, fc := row+dr, col+dc; tm.fits(fr, fc, dir) {
			tm.touch(fr, fc, dir, nil)
		}
		if fr, fc := row-dr*l, col-dc*l; tm.fits(fr, fc, dir) {
			tm.touch(fr, fc, dir, nil)
		}
	}
}

func (tm *ThreatsManager) touch(row, col int, dir Direction, change func(*Alignment)) {
	a := tm.lines.Get(tm.keyOf(row, col, dir))
	if a == nil {
		a = newAlignment(row, col, dir, tm.length)
		tm.lines.Insert(a)
	}
	oldThreat, oldOwner := a.threat, a.threatener
	if change != nil {
		change(a)
	}
	a.refresh(tm.g)
	if a.threat == oldThreat && a.threatener == oldOwner {
		return
	}
	if oldThreat != ThreatNone {
		tm.add(oldThreat, oldOwner, -1)
	}
	if a.threat != ThreatNone {
		tm.add(a.threat, a.threatener, 1)
	}
}

func (tm *ThreatsManager) add(t Threat, p game.Player, delta int) {
	c := &tm.counts[t][p.Index()]
	*c += delta
	if *c < 0 {
		panic(fmt.Sprintf("board: %s counter for %s below zero (length %d)", t, p, tm.length))
	}
}

func (tm *ThreatsManager) clone(g *grid) *ThreatsManager {
	c := &ThreatsManager{g: g, length: tm.length, b: tm.b, h: tm.h, counts: tm.counts}
	c.lines = dat.New(c.capacity(), c.key)
	for _, a := range tm.lines.All() {
		cp := *a
		c.lines.Insert(&cp)
	}
	return c
}
