package engine

import (
	"testing"

	"github.com/matryer/is"
)

func allLegal(int) bool { return true }

func TestEntryKeepsCostliestFirst(t *testing.T) {
	is := is.New(t)
	var e Entry[int]

	e.Add(SearchResult[int]{Move: 1, Depth: 4, Nodes: 100})
	e.Add(SearchResult[int]{Move: 2, Depth: 2, Nodes: 10})
	is.Equal(e.first.Move, 1)
	is.Equal(e.second.Move, 2)

	// A cheaper result replaces the second slot only.
	e.Add(SearchResult[int]{Move: 3, Depth: 1, Nodes: 5})
	is.Equal(e.first.Move, 1)
	is.Equal(e.second.Move, 3)

	// A costlier one takes the first slot and demotes the old first.
	e.Add(SearchResult[int]{Move: 4, Depth: 6, Nodes: 500})
	is.Equal(e.first.Move, 4)
	is.Equal(e.second.Move, 1)
}

func TestLookupPrefersSufficientExact(t *testing.T) {
	is := is.New(t)
	var e Entry[int]
	e.Add(SearchResult[int]{Move: 1, Kind: LowerBound, Depth: 8, Nodes: 900})
	e.Add(SearchResult[int]{Move: 2, Kind: Exact, Depth: 5, Nodes: 50})

	r, ok := e.Lookup(allLegal, 4)
	is.True(ok)
	is.Equal(r.Move, 2)

	// Too shallow to be used as exact: the deepest wins.
	r, ok = e.Lookup(allLegal, 6)
	is.True(ok)
	is.Equal(r.Move, 1)
}

func TestLookupSkipsIllegalMoves(t *testing.T) {
	is := is.New(t)
	var e Entry[int]
	e.Add(SearchResult[int]{Move: 1, Depth: 8, Nodes: 900})
	e.Add(SearchResult[int]{Move: 2, Depth: 3, Nodes: 50})

	r, ok := e.Lookup(func(m int) bool { return m != 1 }, 1)
	is.True(ok)
	is.Equal(r.Move, 2)

	_, ok = e.Lookup(func(int) bool { return false }, 1)
	is.True(!ok)
}

// TestTableReturnsDeepestLegal inserts results whose cost grows with depth
// and checks that a probe never returns a shallower legal result than one
// previously stored.
func TestTableReturnsDeepestLegal(t *testing.T) {
	is := is.New(t)
	tbl := NewTable[int](16)

	deepest := 0
	for d := 1; d <= 10; d++ {
		tbl.Store(42, SearchResult[int]{Move: d, Kind: UpperBound, Depth: d, Nodes: uint64(d * d)})
		deepest = d
		r, ok := tbl.Probe(42, allLegal, 100)
		is.True(ok)
		is.Equal(r.Depth, deepest)
	}
	is.Equal(tbl.Len(), 1)

	_, ok := tbl.Probe(7, allLegal, 1)
	is.True(!ok)
	is.True(tbl.HitRate() > 0 && tbl.HitRate() < 100)

	tbl.Clear()
	is.Equal(tbl.Len(), 0)
	is.Equal(tbl.HitRate(), 0.0)
}

func TestNewTableCapsPresize(t *testing.T) {
	is := is.New(t)
	tbl := NewTable[int](1 << 40)
	tbl.Store(1, SearchResult[int]{Move: 1})
	is.Equal(tbl.Len(), 1)
}
