package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"

	"github.com/hailam/mnkplay/internal/board"
)

// Colours, as ANSI palette indices.
const (
	colorP1   = "9"  // bright red
	colorP2   = "12" // bright blue
	colorGrid = "8"  // grey
)

// Renderer draws boards for a terminal. Colours degrade with the terminal's
// profile and vanish when output is not a TTY.
type Renderer struct {
	out *termenv.Output
}

// NewRenderer creates a renderer writing escape sequences suitable for w.
func NewRenderer(w io.Writer, opts ...termenv.OutputOption) *Renderer {
	return &Renderer{out: termenv.NewOutput(w, opts...)}
}

// Board renders b with row and column indices. If hasLast is set, the cell
// of last is underlined.
func (r *Renderer) Board(b *board.Board, last board.Position, hasLast bool) string {
	var sb strings.Builder
	width := len(fmt.Sprint(max(b.Rows(), b.Cols()) - 1))

	sb.WriteString(strings.Repeat(" ", width))
	for c := 0; c < b.Cols(); c++ {
		fmt.Fprintf(&sb, " %*d", width, c)
	}
	sb.WriteByte('\n')

	for row := 0; row < b.Rows(); row++ {
		fmt.Fprintf(&sb, "%*d", width, row)
		for col := 0; col < b.Cols(); col++ {
			p := board.MustPosition(b.Rows(), b.Cols(), row, col)
			highlight := hasLast && p == last
			fmt.Fprintf(&sb, " %*s", width+r.escapeLen(b.Cell(p), highlight), r.cell(b.Cell(p), highlight))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (r *Renderer) cell(c board.Cell, highlight bool) string {
	s := r.out.String(string(c.Rune()))
	switch c {
	case board.MarkP1:
		s = s.Foreground(r.out.Color(colorP1)).Bold()
	case board.MarkP2:
		s = s.Foreground(r.out.Color(colorP2)).Bold()
	default:
		s = s.Foreground(r.out.Color(colorGrid))
	}
	if highlight {
		s = s.Underline()
	}
	return s.String()
}

// escapeLen is the number of invisible bytes cell adds, so that padding
// counts visible characters only.
func (r *Renderer) escapeLen(c board.Cell, highlight bool) int {
	return len(r.cell(c, highlight)) - 1
}

// Status renders a one-line summary of the game.
func (r *Renderer) Status(g *Game) string {
	b := g.Board()
	if b.IsTerminal() {
		return r.out.String(g.GameResult()).Bold().String()
	}
	return fmt.Sprintf("%s to move, ply %d, %s", b.Player(), b.Plies()+1, g.Mode())
}
