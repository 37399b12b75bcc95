package engine

import (
	"fmt"

	"github.com/pbnjay/memory"
)

// ResultKind indicates the type of bound a stored score is.
type ResultKind uint8

const (
	Exact      ResultKind = iota // score inside the window
	LowerBound                   // failed high (beta cutoff)
	UpperBound                   // failed low (alpha cutoff)
)

func (k ResultKind) String() string {
	switch k {
	case Exact:
		return "exact"
	case LowerBound:
		return "lower"
	case UpperBound:
		return "upper"
	}
	return fmt.Sprintf("ResultKind(%d)", uint8(k))
}

// SearchResult is the outcome of searching one position.
type SearchResult[M comparable] struct {
	Move  M // in canonical orientation
	Score int
	Kind  ResultKind
	Depth int
	Nodes uint64 // size of the searched subtree
}

// Entry holds up to two results for one position. The first slot keeps the
// result that cost the most nodes; the second keeps the latest other one.
type Entry[M comparable] struct {
	first, second *SearchResult[M]
}

// Add inserts r following the TWOBIG1 scheme.
func (e *Entry[M]) Add(r SearchResult[M]) {
	switch {
	case e.first == nil:
		e.first = &r
	case r.Nodes >= e.first.Nodes:
		e.second, e.first = e.first, &r
	default:
		e.second = &r
	}
}

// Lookup returns the most useful stored result whose move is legal: an
// exact result searched at least depth plies deep if there is one, the
// deepest otherwise.
func (e *Entry[M]) Lookup(legal func(M) bool, depth int) (SearchResult[M], bool) {
	var best *SearchResult[M]
	for _, r := range [2]*SearchResult[M]{e.first, e.second} {
		if r == nil || !legal(r.Move) {
			continue
		}
		switch {
		case best == nil:
			best = r
		case usable(r, depth) && !usable(best, depth):
			best = r
		case usable(r, depth) == usable(best, depth) && r.Depth > best.Depth:
			best = r
		}
	}
	if best == nil {
		return SearchResult[M]{}, false
	}
	return *best, true
}

func usable[M comparable](r *SearchResult[M], depth int) bool {
	return r.Kind == Exact && r.Depth >= depth
}

// Bytes charged per table entry when sizing against physical memory.
const entryFootprint = 160

// DefaultMemoryFraction is the share of physical memory a table may reserve.
const DefaultMemoryFraction = 1.0 / 16

// maxPresize bounds the entries allocated up front; the map grows past it
// on demand.
const maxPresize = 1 << 20

// Table maps canonical position hashes to entries. It is not safe for
// concurrent use; every AI owns its own table.
type Table[M comparable] struct {
	entries map[uint64]*Entry[M]

	// Statistics
	probes, hits, stores uint64
}

// NewTable creates a table pre-sized for capacity entries, capped by the
// default share of physical memory.
func NewTable[M comparable](capacity int) *Table[M] {
	limit := int(float64(memory.TotalMemory()) * DefaultMemoryFraction / entryFootprint)
	if limit > 0 && capacity > limit {
		capacity = limit
	}
	capacity = min(capacity, maxPresize)
	return &Table[M]{entries: make(map[uint64]*Entry[M], max(capacity, 0))}
}

// Probe looks up hash and returns the most useful result whose move passes
// legal.
func (t *Table[M]) Probe(hash uint64, legal func(M) bool, depth int) (SearchResult[M], bool) {
	t.probes++
	e, ok := t.entries[hash]
	if !ok {
		return SearchResult[M]{}, false
	}
	r, ok := e.Lookup(legal, depth)
	if ok {
		t.hits++
	}
	return r, ok
}

// Store records r for hash.
func (t *Table[M]) Store(hash uint64, r SearchResult[M]) {
	t.stores++
	e, ok := t.entries[hash]
	if !ok {
		e = &Entry[M]{}
		t.entries[hash] = e
	}
	e.Add(r)
}

// Len returns the number of positions stored.
func (t *Table[M]) Len() int {
	return len(t.entries)
}

// Clear empties the table and resets its statistics.
func (t *Table[M]) Clear() {
	clear(t.entries)
	t.probes, t.hits, t.stores = 0, 0, 0
}

// HitRate returns the percentage of probes that produced a result.
func (t *Table[M]) HitRate() float64 {
	if t.probes == 0 {
		return 0
	}
	return float64(t.hits) / float64(t.probes) * 100
}
