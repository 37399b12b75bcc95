package board

import (
	"math"

	"lukechampine.com/frand"

	"github.com/hailam/mnkplay/internal/game"
)

// Fixed seed so hashes are reproducible across runs.
var zobristSeed = [32]byte{
	0x98, 0xf1, 0x07, 0xa2, 0xbe, 0xef, 0x12, 0x34,
	0x6d, 0x6e, 0x6b, 0x70, 0x6c, 0x61, 0x79, 0x21,
	0x25, 0x45, 0xf4, 0x91, 0x4f, 0x6c, 0xdd, 0x1d,
	0x9e, 0x37, 0x79, 0xb9, 0x7f, 0x4a, 0x7c, 0x15,
}

// ZobristHasher keeps one running hash per grid symmetry. The canonical
// hash is the smallest of them, so boards equal up to symmetry share it.
type ZobristHasher struct {
	m, n       int
	disjuncts  [][2]uint64 // [cell][player]
	symmetries []Symmetry
	candidates []uint64 // running hash per symmetry
	canonical  int      // index into symmetries
}

// NewZobristHasher creates the hasher of an empty m×n grid.
func NewZobristHasher(m, n int) *ZobristHasher {
	z := &ZobristHasher{
		m:          m,
		n:          n,
		disjuncts:  make([][2]uint64, m*n),
		symmetries: symmetriesFor(m, n),
	}
	z.candidates = make([]uint64, len(z.symmetries))

	rng := frand.NewCustom(zobristSeed[:], 1024, 12)
	seen := make(map[uint64]struct{}, 2*m*n)
	for i := range z.disjuncts {
		for p := range z.disjuncts[i] {
			for {
				v := rng.Uint64n(math.MaxUint64) + 1
				if _, dup := seen[v]; dup {
					continue
				}
				seen[v] = struct{}{}
				z.disjuncts[i][p] = v
				break
			}
		}
	}
	return z
}

// Toggle adds or removes p's mark at (r, c) in every candidate hash.
func (z *ZobristHasher) Toggle(r, c int, p game.Player) {
	for i, s := range z.symmetries {
		sr, sc := s.apply(z.m, z.n, r, c)
		z.candidates[i] ^= z.disjuncts[sr*z.n+sc][p.Index()]
	}
	best := 0
	for i, h := range z.candidates {
		if h < z.candidates[best] {
			best = i
		}
	}
	z.canonical = best
}

// Hash returns the canonical hash.
func (z *ZobristHasher) Hash() uint64 {
	return z.candidates[z.canonical]
}

// Symmetry returns the isometry producing the canonical hash.
func (z *ZobristHasher) Symmetry() Symmetry {
	return z.symmetries[z.canonical]
}

// Symmetries returns the isometries tracked for this grid.
func (z *ZobristHasher) Symmetries() []Symmetry {
	return z.symmetries
}

// DistinctDisjuncts reports whether every disjunct of every hasher up to
// maxRows×maxCols is non-zero and unique within its grid.
func DistinctDisjuncts(maxRows, maxCols int) bool {
	for m := 1; m <= maxRows; m++ {
		for n := 1; n <= maxCols; n++ {
			if !NewZobristHasher(m, n).distinct() {
				return false
			}
		}
	}
	return true
}

func (z *ZobristHasher) distinct() bool {
	seen := make(map[uint64]struct{}, 2*len(z.disjuncts))
	for _, d := range z.disjuncts {
		for _, v := range d {
			if v == 0 {
				return false
			}
			if _, dup := seen[v]; dup {
				return false
			}
			seen[v] = struct{}{}
		}
	}
	return true
}

func (z *ZobristHasher) clone() *ZobristHasher {
	c := *z
	c.candidates = append([]uint64(nil), z.candidates...)
	return &c
}
