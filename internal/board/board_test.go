package board

import (
	"slices"
	"testing"

	"github.com/matryer/is"
	"github.com/pkg/errors"
	"lukechampine.com/frand"

	"github.com/hailam/mnkplay/internal/game"
)

// play applies moves given as "row,col" strings.
func play(t *testing.T, b *Board, moves ...string) {
	t.Helper()
	for _, s := range moves {
		p, err := ParsePosition(b.Rows(), b.Cols(), s)
		if err != nil {
			t.Fatalf("parse %q: %v", s, err)
		}
		if err := b.Apply(p); err != nil {
			t.Fatalf("apply %q: %v", s, err)
		}
	}
}

func mustNew(t *testing.T, m, n, k int, opts ...Option) *Board {
	t.Helper()
	b, err := New(m, n, k, opts...)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func testRNG() *frand.RNG {
	return frand.NewCustom(make([]byte, 32), 1024, 12)
}

func TestNewRejectsInvalidSizes(t *testing.T) {
	is := is.New(t)
	for _, s := range [][3]int{{-1, 3, 3}, {3, -1, 3}, {3, 3, 0}} {
		_, err := New(s[0], s[1], s[2])
		is.True(errors.Is(err, ErrInvalidSize))
	}
}

func TestZeroSizeBoardIsDraw(t *testing.T) {
	is := is.New(t)
	b := mustNew(t, 0, 5, 3)
	is.Equal(b.State(), Draw)
	is.True(b.IsTerminal())
	is.Equal(b.Utility(game.P1), game.Draw)
	is.Equal(len(slices.Collect(b.LegalMoves())), 0)
}

func TestRowWin(t *testing.T) {
	is := is.New(t)
	b := mustNew(t, 3, 3, 3)
	play(t, b, "0,0", "1,0", "0,1", "1,1")
	is.Equal(b.State(), Open)
	play(t, b, "0,2")

	is.Equal(b.State(), WinP1)
	w, ok := b.Winner()
	is.True(ok)
	is.Equal(w, game.P1)
	is.Equal(b.Utility(game.P1), game.Win)
	is.Equal(b.Utility(game.P2), game.Loss)
	is.Equal(b.Eval(game.P2), game.Loss)
	is.Equal(len(slices.Collect(b.LegalMoves())), 0)
	is.True(!b.IsLegal(MustPosition(3, 3, 2, 2)))

	err := b.Apply(MustPosition(3, 3, 2, 2))
	is.True(errors.Is(err, ErrGameOver))

	is.NoErr(b.Undo())
	is.Equal(b.State(), Open)
	is.Equal(b.Player(), game.P1)
}

func TestDiagonalWins(t *testing.T) {
	is := is.New(t)

	b := mustNew(t, 4, 4, 3)
	play(t, b, "3,0", "0,0", "2,1", "0,1", "1,2")
	is.Equal(b.State(), WinP1)

	b = mustNew(t, 4, 4, 3)
	play(t, b, "0,1", "3,0", "1,2", "3,1", "2,3")
	is.Equal(b.State(), WinP1)
}

func TestSecondaryDiagonalWinForP2(t *testing.T) {
	is := is.New(t)
	b := mustNew(t, 4, 5, 3)
	play(t, b, "0,0", "3,1", "0,4", "2,2", "3,4", "1,3")
	is.Equal(b.State(), WinP2)
	w, _ := b.Winner()
	is.Equal(w, game.P2)
}

func TestDrawOnFullBoard(t *testing.T) {
	is := is.New(t)
	b := mustNew(t, 3, 3, 3)
	play(t, b, "0,0", "0,1", "0,2", "1,1", "1,0", "2,0", "2,1", "1,2", "2,2")
	is.Equal(b.State(), Draw)
	is.Equal(b.Utility(game.P2), game.Draw)
	is.Equal(b.OverestimatedHeight(), 0)
}

func TestApplyErrors(t *testing.T) {
	is := is.New(t)
	b := mustNew(t, 3, 3, 3)

	is.True(errors.Is(b.Undo(), ErrEmptyHistory))

	play(t, b, "1,1")
	is.True(errors.Is(b.Apply(MustPosition(3, 3, 1, 1)), ErrOccupied))
	is.True(errors.Is(b.Apply(MustPosition(3, 4, 0, 0)), ErrWrongBoard))
	is.True(!b.IsLegal(MustPosition(4, 3, 0, 0)))
	is.Equal(b.Cell(MustPosition(4, 3, 0, 0)), OffGrid)
	is.Equal(b.Plies(), 1)
}

func TestUtilityPanicsWhenOpen(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Utility on an open board did not panic")
		}
	}()
	mustNew(t, 3, 3, 3).Utility(game.P1)
}

func TestWinLengthOne(t *testing.T) {
	is := is.New(t)
	b := mustNew(t, 2, 2, 1)
	play(t, b, "1,0")
	is.Equal(b.State(), WinP1)
}

func TestWinLengthLongerThanBoardEndsDrawn(t *testing.T) {
	is := is.New(t)
	b := mustNew(t, 2, 2, 3)
	play(t, b, "0,0", "0,1", "1,0", "1,1")
	is.Equal(b.State(), Draw)
}

func TestSpiralOrder(t *testing.T) {
	is := is.New(t)

	order := spiral(3, 3)
	is.Equal(order[0], MustPosition(3, 3, 1, 1))
	is.Equal(order[len(order)-1], MustPosition(3, 3, 0, 0))

	for _, dims := range [][2]int{{1, 1}, {1, 5}, {4, 5}, {6, 3}, {7, 7}} {
		m, n := dims[0], dims[1]
		seen := make(map[Position]bool)
		for _, p := range spiral(m, n) {
			is.True(p.Row() >= 0 && p.Row() < m && p.Col() >= 0 && p.Col() < n)
			is.True(!seen[p])
			seen[p] = true
		}
		is.Equal(len(seen), m*n)
	}
}

func TestLegalMovesFirstMoveIsCentre(t *testing.T) {
	is := is.New(t)
	b := mustNew(t, 5, 5, 4)
	for p := range b.LegalMoves() {
		is.Equal(p, MustPosition(5, 5, 2, 2))
		break
	}
	is.Equal(len(slices.Collect(b.LegalMoves())), 25)
}

func TestLegalMovesSkipIsolatedCells(t *testing.T) {
	is := is.New(t)
	b := mustNew(t, 5, 5, 4)
	play(t, b, "2,2")

	moves := slices.Collect(b.LegalMoves())
	is.Equal(len(moves), 8)
	for _, p := range moves {
		is.True(b.Neighbours(p) > 0)
	}
	is.Equal(len(slices.Collect(b.AllFreeMoves())), 24)

	nb := mustNew(t, 5, 5, 4, WithoutNeighbourPruning())
	play(t, nb, "2,2")
	is.Equal(len(slices.Collect(nb.LegalMoves())), 24)
}

// TestPruningKeepsWinningMoves plays random games and checks that every move
// winning on the spot, and at least one move, survives the adjacency filter.
func TestPruningKeepsWinningMoves(t *testing.T) {
	rng := testRNG()
	for _, cfg := range [][3]int{{5, 5, 4}, {6, 7, 3}, {4, 9, 5}, {3, 3, 2}} {
		b := mustNew(t, cfg[0], cfg[1], cfg[2])
		for !b.IsTerminal() {
			legal := make(map[Position]bool)
			for p := range b.LegalMoves() {
				legal[p] = true
			}
			if len(legal) == 0 {
				t.Fatalf("%v: no legal move on an open board\n%s", cfg, b)
			}

			mover := b.Player()
			free := slices.Collect(b.AllFreeMoves())
			for _, p := range free {
				c := b.Clone()
				if err := c.Apply(p); err != nil {
					t.Fatal(err)
				}
				if w, ok := c.Winner(); ok && w == mover && !legal[p] {
					t.Fatalf("%v: winning move %s pruned\n%s", cfg, p, b)
				}
			}
			if err := b.Apply(free[rng.Intn(len(free))]); err != nil {
				t.Fatal(err)
			}
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	is := is.New(t)
	b := mustNew(t, 4, 4, 3)
	play(t, b, "1,1", "2,2")

	c := b.Clone()
	play(t, c, "1,2", "0,0", "1,3")
	is.Equal(c.State(), WinP1)
	is.Equal(b.State(), Open)
	is.Equal(b.Plies(), 2)
	is.Equal(b.Cell(MustPosition(4, 4, 1, 2)), Free)
	is.Equal(b.CountThreats(2, ThreatOne, game.P1), 0)

	is.NoErr(c.Undo())
	is.Equal(c.CountThreats(2, ThreatTwo, game.P1)+c.CountThreats(2, ThreatOne, game.P1), 1)
}

func TestString(t *testing.T) {
	is := is.New(t)
	b := mustNew(t, 2, 3, 2)
	play(t, b, "0,1", "1,2")
	is.Equal(b.String(), ". X .\n. . O\n")
}

func TestHistory(t *testing.T) {
	is := is.New(t)
	b := mustNew(t, 3, 3, 3)
	play(t, b, "1,1", "0,0")
	h := b.History()
	is.Equal(h, []Position{MustPosition(3, 3, 1, 1), MustPosition(3, 3, 0, 0)})
	h[0] = MustPosition(3, 3, 2, 2)
	is.Equal(b.History()[0], MustPosition(3, 3, 1, 1))
}

func TestTTSuggestedCapacity(t *testing.T) {
	is := is.New(t)
	// 1 + 2·1 + 1·2 = 5 for a 1×2 board.
	is.Equal(mustNew(t, 1, 2, 2).TTSuggestedCapacity(), 5)
	is.Equal(mustNew(t, 0, 0, 1).TTSuggestedCapacity(), 1)
	is.Equal(mustNew(t, 19, 19, 5).TTSuggestedCapacity(), MaxTTCapacity)
	is.True(mustNew(t, 3, 3, 3).TTSuggestedCapacity() > 5478)
}
