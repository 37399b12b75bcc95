package board

import "iter"

// spiral returns every cell of an m×n grid walking the border clockwise and
// then each inner ring, reversed so the centre comes first.
func spiral(m, n int) []Position {
	order := make([]Position, m*n)
	i := len(order) - 1
	put := func(r, c int) {
		order[i] = Position{rows: m, cols: n, row: r, col: c}
		i--
	}
	top, bottom, left, right := 0, m-1, 0, n-1
	for top <= bottom && left <= right {
		for c := left; c <= right; c++ {
			put(top, c)
		}
		for r := top + 1; r <= bottom; r++ {
			put(r, right)
		}
		if top < bottom {
			for c := right - 1; c >= left; c-- {
				put(bottom, c)
			}
		}
		if left < right {
			for r := bottom - 1; r > top; r-- {
				put(r, left)
			}
		}
		top, bottom, left, right = top+1, bottom-1, left+1, right-1
	}
	return order
}

// LegalMoves yields free cells in search order. Once a mark is on the
// board, cells with no marked neighbour are skipped. The grid is connected,
// so an open board always keeps at least one free cell next to a mark. A
// terminal board yields nothing.
func (b *Board) LegalMoves() iter.Seq[Position] {
	return func(yield func(Position) bool) {
		if b.state != Open {
			return
		}
		if !b.pruning || len(b.history) == 0 {
			b.yieldFree(yield)
			return
		}
		for _, p := range b.candidates {
			i := p.row*b.n + p.col
			if b.g.cells[i] != Free || b.adjacency[i] == 0 {
				continue
			}
			if !yield(p) {
				return
			}
		}
	}
}

// AllFreeMoves yields every free cell in search order, ignoring adjacency.
func (b *Board) AllFreeMoves() iter.Seq[Position] {
	return func(yield func(Position) bool) {
		if b.state != Open {
			return
		}
		b.yieldFree(yield)
	}
}

func (b *Board) yieldFree(yield func(Position) bool) {
	for _, p := range b.candidates {
		if b.g.cells[p.row*b.n+p.col] != Free {
			continue
		}
		if !yield(p) {
			return
		}
	}
}
