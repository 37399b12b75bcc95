package board

import (
	"slices"
	"testing"

	"github.com/matryer/is"
)

func TestDistinctDisjuncts(t *testing.T) {
	if !DistinctDisjuncts(12, 12) {
		t.Errorf("disjuncts are not pairwise distinct")
	}
}

func TestHashIsReproducible(t *testing.T) {
	is := is.New(t)
	a := mustNew(t, 5, 6, 4)
	b := mustNew(t, 5, 6, 4)
	play(t, a, "2,2", "1,1", "3,4")
	play(t, b, "2,2", "1,1", "3,4")
	is.Equal(a.Hash(), b.Hash())
}

func TestHashDependsOnMover(t *testing.T) {
	is := is.New(t)
	a := mustNew(t, 4, 4, 3)
	b := mustNew(t, 4, 4, 3)
	play(t, a, "0,0", "1,1")
	play(t, b, "1,1", "0,0")
	is.True(a.Hash() != b.Hash())
}

func TestHashTranspositions(t *testing.T) {
	is := is.New(t)
	a := mustNew(t, 4, 5, 4)
	b := mustNew(t, 4, 5, 4)
	play(t, a, "0,0", "1,1", "2,2")
	play(t, b, "2,2", "1,1", "0,0")
	is.Equal(a.Hash(), b.Hash())
}

func TestSymmetryInverse(t *testing.T) {
	is := is.New(t)
	for _, dims := range [][2]int{{4, 4}, {3, 5}} {
		m, n := dims[0], dims[1]
		for _, s := range symmetriesFor(m, n) {
			for r := 0; r < m; r++ {
				for c := 0; c < n; c++ {
					p := MustPosition(m, n, r, c)
					q := s.Map(p)
					is.True(q.Row() >= 0 && q.Row() < m && q.Col() >= 0 && q.Col() < n)
					is.Equal(s.Inverse().Map(q), p)
				}
			}
		}
	}
}

// canonicalGrid redraws b in its canonical orientation.
func canonicalGrid(b *Board) []Cell {
	cells := make([]Cell, b.Size())
	for _, p := range b.History() {
		q := b.MapMoveToCanonical(p)
		cells[q.Index()] = b.Cell(p)
	}
	return cells
}

// TestSymmetryInvariance plays random move sequences and replays their
// images under every isometry: hashes and canonical forms must agree.
func TestSymmetryInvariance(t *testing.T) {
	rng := testRNG()
	for _, dims := range [][2]int{{4, 4}, {5, 5}, {3, 5}, {6, 4}} {
		m, n := dims[0], dims[1]
		for round := 0; round < 20; round++ {
			b := mustNew(t, m, n, 9)
			plies := rng.Intn(m*n) + 1
			for i := 0; i < plies; i++ {
				free := slices.Collect(b.AllFreeMoves())
				if err := b.Apply(free[rng.Intn(len(free))]); err != nil {
					t.Fatal(err)
				}
			}
			want := canonicalGrid(b)

			for _, s := range symmetriesFor(m, n) {
				img := mustNew(t, m, n, 9)
				for _, p := range b.History() {
					if err := img.Apply(s.Map(p)); err != nil {
						t.Fatal(err)
					}
				}
				if img.Hash() != b.Hash() {
					t.Fatalf("%dx%d %s: hash %x, want %x", m, n, s, img.Hash(), b.Hash())
				}
				if !slices.Equal(canonicalGrid(img), want) {
					t.Fatalf("%dx%d %s: canonical forms differ", m, n, s)
				}
				for _, p := range b.History() {
					q := b.MapMoveToCanonical(p)
					if got := img.MapMoveFromCanonical(q); img.Cell(got) != b.Cell(p) {
						t.Fatalf("%dx%d %s: canonical move %s maps to a cell of the wrong owner", m, n, s, q)
					}
				}
			}
		}
	}
}

func TestSymmetryCount(t *testing.T) {
	is := is.New(t)
	is.Equal(len(NewZobristHasher(4, 4).Symmetries()), 8)
	is.Equal(len(NewZobristHasher(4, 5).Symmetries()), 4)
}
