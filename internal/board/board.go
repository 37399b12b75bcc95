package board

import (
	"math"
	"strings"

	"github.com/pkg/errors"

	"github.com/hailam/mnkplay/internal/game"
)

// MaxTTCapacity caps TTSuggestedCapacity.
const MaxTTCapacity = math.MaxInt32

// Board is an m,n,k-game position. It supports Apply/Undo backtracking and
// keeps threat counters, adjacency counters and the Zobrist hash in sync
// with the grid.
type Board struct {
	m, n, k int
	g       *grid
	history []Position
	state   GameState

	candidates []Position // search order, centre first
	adjacency  []uint8    // marked neighbours per cell
	managers   []*ThreatsManager
	hasher     *ZobristHasher
	weights    Weights
	pruning    bool

	alpha, beta [2]int // initial window on the empty board
}

// Option configures a Board.
type Option func(*Board)

// WithWeights overrides the evaluator weights.
func WithWeights(w Weights) Option {
	return func(b *Board) { b.weights = w }
}

// WithoutNeighbourPruning makes LegalMoves yield every free cell, not only
// those next to a mark.
func WithoutNeighbourPruning() Option {
	return func(b *Board) { b.pruning = false }
}

// New creates an empty m×n board where k aligned marks win.
func New(m, n, k int, opts ...Option) (*Board, error) {
	if m < 0 || n < 0 || k < 1 {
		return nil, errors.Wrapf(ErrInvalidSize, "m=%d n=%d k=%d", m, n, k)
	}
	b := &Board{
		m:          m,
		n:          n,
		k:          k,
		g:          newGrid(m, n),
		history:    make([]Position, 0, m*n),
		candidates: spiral(m, n),
		adjacency:  make([]uint8, m*n),
		hasher:     NewZobristHasher(m, n),
		weights:    DefaultWeights,
		pruning:    true,
	}
	// Managers for lengths k, k-1 and k-2, as long as the length is at least 2.
	for l := k; l >= 2 && l > k-3; l-- {
		b.managers = append(b.managers, newThreatsManager(b.g, l))
	}
	b.alpha, b.beta = searchWindow(m, n, k)
	if m*n == 0 {
		b.state = Draw
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Rows returns M.
func (b *Board) Rows() int { return b.m }

// Cols returns N.
func (b *Board) Cols() int { return b.n }

// K returns the winning length.
func (b *Board) K() int { return b.k }

// Size returns M·N.
func (b *Board) Size() int { return b.m * b.n }

// Player returns the player to move.
func (b *Board) Player() game.Player {
	return game.Player(len(b.history) & 1)
}

// State returns the game outcome so far.
func (b *Board) State() GameState { return b.state }

// IsTerminal reports whether the game is over.
func (b *Board) IsTerminal() bool { return b.state != Open }

// Winner returns the winning player, if any.
func (b *Board) Winner() (game.Player, bool) {
	switch b.state {
	case WinP1:
		return game.P1, true
	case WinP2:
		return game.P2, true
	}
	return game.P1, false
}

// Plies returns the number of moves played.
func (b *Board) Plies() int { return len(b.history) }

// History returns a copy of the moves played, oldest first.
func (b *Board) History() []Position {
	return append([]Position(nil), b.history...)
}

// Cell returns the content of p, or OffGrid for a position of another board.
func (b *Board) Cell(p Position) Cell {
	if !b.owns(p) {
		return OffGrid
	}
	return b.g.at(p.row, p.col)
}

func (b *Board) owns(p Position) bool {
	return p.rows == b.m && p.cols == b.n && b.g.inside(p.row, p.col)
}

// IsLegal reports whether p can be played now.
func (b *Board) IsLegal(p Position) bool {
	return b.state == Open && b.owns(p) && b.g.at(p.row, p.col) == Free
}

// Apply places the mark of the player to move on p.
func (b *Board) Apply(p Position) error {
	if b.state != Open {
		return errors.Wrapf(ErrGameOver, "apply %s", p)
	}
	if !b.owns(p) {
		return errors.Wrapf(ErrWrongBoard, "%s on %dx%d", p, b.m, b.n)
	}
	if b.g.at(p.row, p.col) != Free {
		return errors.Wrapf(ErrOccupied, "apply %s", p)
	}

	mover := b.Player()
	b.g.set(p.row, p.col, markOf(mover))
	for _, tm := range b.managers {
		tm.Mark(p.row, p.col, mover)
	}
	b.touchNeighbours(p, 1)
	b.history = append(b.history, p)
	b.hasher.Toggle(p.row, p.col, mover)

	switch {
	case b.k == 1 || b.kRuns(mover) > 0:
		b.state = winFor(mover)
	case len(b.history) == b.m*b.n:
		b.state = Draw
	}
	return nil
}

// Undo takes back the last move.
func (b *Board) Undo() error {
	if len(b.history) == 0 {
		return ErrEmptyHistory
	}
	p := b.history[len(b.history)-1]
	b.history = b.history[:len(b.history)-1]
	mover := b.Player()

	b.g.set(p.row, p.col, Free)
	for _, tm := range b.managers {
		tm.Unmark(p.row, p.col, mover)
	}
	b.touchNeighbours(p, -1)
	b.hasher.Toggle(p.row, p.col, mover)
	b.state = Open
	return nil
}

// kRuns counts p's full lines of length K.
func (b *Board) kRuns(p game.Player) int {
	return b.CountThreats(b.k, ThreatOne, p) +
		b.CountThreats(b.k, ThreatTwo, p) +
		b.CountThreats(b.k, ThreatThree, p)
}

func (b *Board) touchNeighbours(p Position, delta int) {
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			r, c := p.row+dr, p.col+dc
			if (dr == 0 && dc == 0) || !b.g.inside(r, c) {
				continue
			}
			b.adjacency[r*b.n+c] = uint8(int(b.adjacency[r*b.n+c]) + delta)
		}
	}
}

// Neighbours returns how many of the 8 cells around p are marked.
func (b *Board) Neighbours(p Position) int {
	return int(b.adjacency[p.Index()])
}

// CountThreats returns the number of threats of the given length and
// variant held by p. Hole variants of length L are the lines of length L+1
// missing one interior mark. Unsupported lengths count zero.
func (b *Board) CountThreats(length int, t Threat, p game.Player) int {
	if t == ThreatNone {
		return 0
	}
	lineLen := length
	if t.HasHole() {
		lineLen++
	}
	for _, tm := range b.managers {
		if tm.length == lineLen {
			return tm.Count(t, p)
		}
	}
	return 0
}

// Utility returns the payoff of a terminal board from p's view. It panics
// on an open board.
func (b *Board) Utility(p game.Player) int {
	switch b.state {
	case Draw:
		return game.Draw
	case WinP1, WinP2:
		if winFor(p) == b.state {
			return game.Win
		}
		return game.Loss
	}
	panic("board: utility of an open board")
}

// InitialAlpha returns the lower bound of the root search window for p.
func (b *Board) InitialAlpha(p game.Player) int {
	if len(b.history) > 0 {
		return game.Loss
	}
	return b.alpha[p.Index()]
}

// InitialBeta returns the upper bound of the root search window for p.
func (b *Board) InitialBeta(p game.Player) int {
	if len(b.history) > 0 {
		return game.Win
	}
	return b.beta[p.Index()]
}

// OverestimatedHeight returns the number of free cells.
func (b *Board) OverestimatedHeight() int {
	return b.m*b.n - len(b.history)
}

// TTSuggestedCapacity bounds the number of reachable positions:
// sum over i of C(size, i)·C(i, i/2).
func (b *Board) TTSuggestedCapacity() int {
	size := b.m * b.n
	total := 0.0
	for i := 0; i <= size; i++ {
		total += binomial(size, i) * binomial(i, i/2)
		if total >= MaxTTCapacity {
			return MaxTTCapacity
		}
	}
	return int(total)
}

func binomial(n, k int) float64 {
	if k < 0 || k > n {
		return 0
	}
	k = min(k, n-k)
	r := 1.0
	for i := 1; i <= k; i++ {
		r = r * float64(n-k+i) / float64(i)
	}
	return math.Round(r)
}

// Hash returns the canonical Zobrist hash.
func (b *Board) Hash() uint64 { return b.hasher.Hash() }

// Symmetry returns the isometry mapping the board to its canonical form.
func (b *Board) Symmetry() Symmetry { return b.hasher.Symmetry() }

// MapMoveToCanonical maps p into the canonical orientation.
func (b *Board) MapMoveToCanonical(p Position) Position {
	return b.hasher.Symmetry().Map(p)
}

// MapMoveFromCanonical maps a canonical move back onto this board.
func (b *Board) MapMoveFromCanonical(p Position) Position {
	return b.hasher.Symmetry().Inverse().Map(p)
}

// Clone returns an independent deep copy.
func (b *Board) Clone() *Board {
	c := *b
	c.g = &grid{m: b.m, n: b.n, cells: append([]Cell(nil), b.g.cells...)}
	c.history = append(make([]Position, 0, cap(b.history)), b.history...)
	c.adjacency = append([]uint8(nil), b.adjacency...)
	c.hasher = b.hasher.clone()
	c.managers = make([]*ThreatsManager, len(b.managers))
	for i, tm := range b.managers {
		c.managers[i] = tm.clone(c.g)
	}
	return &c
}

// String renders the grid, one row per line.
func (b *Board) String() string {
	var sb strings.Builder
	for r := 0; r < b.m; r++ {
		for c := 0; c < b.n; c++ {
			if c > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteRune(b.g.at(r, c).Rune())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
