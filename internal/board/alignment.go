package board

import (
	"fmt"

	"github.com/hailam/mnkplay/internal/game"
)

// Threat classifies an alignment owned by a single player.
//
// ThreatOne..ThreatThree are runs filling the whole line (no hole), with
// both, one or no border free. ThreatFour..ThreatSix are the same border
// categories for a line holding every mark but one, whose empty cell lies
// strictly inside the line.
type Threat uint8

const (
	ThreatNone Threat = iota
	ThreatOne
	ThreatTwo
	ThreatThree
	ThreatFour
	ThreatFive
	ThreatSix
)

const numThreats = 7

// Threats lists the six real variants.
var Threats = [...]Threat{ThreatOne, ThreatTwo, ThreatThree, ThreatFour, ThreatFive, ThreatSix}

// HasHole reports whether t is one of the one-hole variants.
func (t Threat) HasHole() bool {
	return t >= ThreatFour
}

// FreeBorders returns how many borders are free for t.
func (t Threat) FreeBorders() int {
	switch t {
	case ThreatOne, ThreatFour:
		return 2
	case ThreatTwo, ThreatFive:
		return 1
	}
	return 0
}

func (t Threat) String() string {
	switch t {
	case ThreatNone:
		return "none"
	case ThreatOne:
		return "open"
	case ThreatTwo:
		return "half-open"
	case ThreatThree:
		return "closed"
	case ThreatFour:
		return "open-hole"
	case ThreatFive:
		return "half-open-hole"
	case ThreatSix:
		return "closed-hole"
	}
	return fmt.Sprintf("Threat(%d)", uint8(t))
}

func threatFor(freeBorders int, hole bool) Threat {
	t := ThreatThree - Threat(freeBorders)
	if hole {
		t += ThreatFour - ThreatOne
	}
	return t
}

// LineState summarizes who holds marks in an alignment.
type LineState uint8

const (
	LineEmpty LineState = iota
	LineP1Partial
	LineP2Partial
	LineMixed
	LineP1Full
	LineP2Full
)

// Alignment is one line of consecutive cells. Its identity (first cell,
// direction and length) never changes; counts, borders and the derived
// threat follow the grid.
type Alignment struct {
	row, col int // first cell
	dir      Direction
	length   int

	counts     [2]int
	borders    [2]Cell // before the first cell, after the last
	state      LineState
	threat     Threat
	threatener game.Player
}

func newAlignment(row, col int, dir Direction, length int) *Alignment {
	return &Alignment{row: row, col: col, dir: dir, length: length}
}

// First returns the coordinates of the first cell.
func (a *Alignment) First() (int, int) { return a.row, a.col }

// Last returns the coordinates of the last cell.
func (a *Alignment) Last() (int, int) {
	dr, dc := a.dir.Step()
	return a.row + dr*(a.length-1), a.col + dc*(a.length-1)
}

// Direction returns the orientation of the line.
func (a *Alignment) Direction() Direction { return a.dir }

// Len returns the number of cells in the line.
func (a *Alignment) Len() int { return a.length }

// Count returns the number of p's marks in the line.
func (a *Alignment) Count(p game.Player) int { return a.counts[p.Index()] }

// State returns the ownership summary.
func (a *Alignment) State() LineState { return a.state }

// Borders returns the cells just outside both ends.
func (a *Alignment) Borders() (Cell, Cell) { return a.borders[0], a.borders[1] }

// Threat returns the current classification and its owner.
func (a *Alignment) Threat() (Threat, game.Player) { return a.threat, a.threatener }

func (a *Alignment) mark(p game.Player) {
	a.counts[p.Index()]++
	if a.counts[0]+a.counts[1] > a.length {
		panic(fmt.Sprintf("board: alignment %v overfilled", a))
	}
}

func (a *Alignment) unmark(p game.Player) {
	a.counts[p.Index()]--
	if a.counts[p.Index()] < 0 {
		panic(fmt.Sprintf("board: alignment %v count below zero", a))
	}
}

// refresh re-reads borders and ends from g and reclassifies the line.
func (a *Alignment) refresh(g *grid) {
	dr, dc := a.dir.Step()
	lr, lc := a.Last()
	a.borders[0] = g.at(a.row-dr, a.col-dc)
	a.borders[1] = g.at(lr+dr, lc+dc)

	p1, p2 := a.counts[0], a.counts[1]
	switch {
	case p1 == 0 && p2 == 0:
		a.state = LineEmpty
	case p1 > 0 && p2 > 0:
		a.state = LineMixed
	case p1 == a.length:
		a.state = LineP1Full
	case p2 == a.length:
		a.state = LineP2Full
	case p1 > 0:
		a.state = LineP1Partial
	default:
		a.state = LineP2Partial
	}

	a.threat, a.threatener = ThreatNone, game.P1
	var owner game.Player
	switch a.state {
	case LineP1Partial, LineP1Full:
		owner = game.P1
	case LineP2Partial, LineP2Full:
		owner = game.P2
	default:
		return
	}

	free := 0
	for _, b := range a.borders {
		if b == Free {
			free++
		}
	}

	n := a.counts[owner.Index()]
	mark := markOf(owner)
	switch {
	case n == a.length:
		a.threat = threatFor(free, false)
	case n == a.length-1 && g.at(a.row, a.col) == mark && g.at(lr, lc) == mark:
		a.threat = threatFor(free, true)
	}
	if a.threat != ThreatNone {
		a.threatener = owner
	}
}

func (a *Alignment) String() string {
	return fmt.Sprintf("%s(%d,%d)x%d", a.dir, a.row, a.col, a.length)
}
