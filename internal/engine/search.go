package engine

import (
	"math"

	"github.com/pkg/errors"
)

// errTimeout aborts a pass when the deadline passes. It never leaves the
// engine.
var errTimeout = errors.New("search timeout")

// tick counts a node and checks the clock every 64 nodes.
func (ai *AI[M]) tick() error {
	ai.nodes++
	if ai.nodes&nodeCheckMask == 0 && ai.tm.Expired() {
		return errTimeout
	}
	return nil
}

func (ai *AI[M]) cutoffTest(depth int) bool {
	return depth <= 0 || ai.state.IsTerminal()
}

func (ai *AI[M]) probe(depth int) (SearchResult[M], bool) {
	s := ai.state
	return ai.table.Probe(s.Hash(), func(m M) bool {
		return s.IsLegal(s.MapMoveFromCanonical(m))
	}, depth)
}

func (ai *AI[M]) store(hash uint64, move M, score, alpha, beta, depth int, nodes uint64) {
	kind := Exact
	switch {
	case score >= beta:
		kind = LowerBound
	case score <= alpha:
		kind = UpperBound
	}
	ai.table.Store(hash, SearchResult[M]{
		Move:  ai.state.MapMoveToCanonical(move),
		Score: score,
		Kind:  kind,
		Depth: depth,
		Nodes: nodes,
	})
}

// child plays m, searches the reply and takes m back, also on error.
func (ai *AI[M]) child(m M, alpha, beta, depth int, next func(int, int, int) (M, int, error)) (int, error) {
	if err := ai.state.Apply(m); err != nil {
		return 0, errors.Wrapf(err, "apply %v", m)
	}
	_, score, err := next(alpha, beta, depth-1)
	if uerr := ai.state.Undo(); uerr != nil {
		panic(uerr)
	}
	return score, err
}

// maxValue searches a node where the engine moves. Scores are fail-soft and
// from the engine's point of view.
func (ai *AI[M]) maxValue(alpha, beta, depth int) (M, int, error) {
	var best M
	if err := ai.tick(); err != nil {
		return best, 0, err
	}
	if ai.cutoffTest(depth) {
		return best, ai.state.Eval(ai.player), nil
	}

	s := ai.state
	hash := s.Hash()
	start := ai.nodes

	var hint M
	hasHint := false
	if r, ok := ai.probe(depth); ok {
		hint, hasHint = s.MapMoveFromCanonical(r.Move), true
		if r.Depth >= depth {
			switch r.Kind {
			case Exact:
				return hint, r.Score, nil
			case LowerBound:
				alpha = max(alpha, r.Score)
			case UpperBound:
				beta = min(beta, r.Score)
			}
			if alpha >= beta {
				return hint, r.Score, nil
			}
		}
	}

	alpha0 := alpha
	score := math.MinInt
	try := func(m M) (bool, error) {
		v, err := ai.child(m, alpha, beta, depth, ai.minValue)
		if err != nil {
			return false, err
		}
		if v > score {
			score, best = v, m
		}
		if score >= beta {
			return true, nil
		}
		alpha = max(alpha, score)
		return false, nil
	}

	cut := false
	if hasHint {
		var err error
		if cut, err = try(hint); err != nil {
			return best, 0, err
		}
	}
	if !cut {
		for m := range s.LegalMoves() {
			if hasHint && m == hint {
				continue
			}
			stop, err := try(m)
			if err != nil {
				return best, 0, err
			}
			if stop {
				break
			}
		}
	}
	if score == math.MinInt {
		return best, s.Eval(ai.player), nil
	}

	ai.store(hash, best, score, alpha0, beta, depth, ai.nodes-start)
	return best, score, nil
}

// minValue searches a node where the opponent moves.
func (ai *AI[M]) minValue(alpha, beta, depth int) (M, int, error) {
	var best M
	if err := ai.tick(); err != nil {
		return best, 0, err
	}
	if ai.cutoffTest(depth) {
		return best, ai.state.Eval(ai.player), nil
	}

	s := ai.state
	hash := s.Hash()
	start := ai.nodes

	var hint M
	hasHint := false
	if r, ok := ai.probe(depth); ok {
		hint, hasHint = s.MapMoveFromCanonical(r.Move), true
		if r.Depth >= depth {
			switch r.Kind {
			case Exact:
				return hint, r.Score, nil
			case LowerBound:
				alpha = max(alpha, r.Score)
			case UpperBound:
				beta = min(beta, r.Score)
			}
			if alpha >= beta {
				return hint, r.Score, nil
			}
		}
	}

	beta0 := beta
	score := math.MaxInt
	try := func(m M) (bool, error) {
		v, err := ai.child(m, alpha, beta, depth, ai.maxValue)
		if err != nil {
			return false, err
		}
		if v < score {
			score, best = v, m
		}
		if score <= alpha {
			return true, nil
		}
		beta = min(beta, score)
		return false, nil
	}

	cut := false
	if hasHint {
		var err error
		if cut, err = try(hint); err != nil {
			return best, 0, err
		}
	}
	if !cut {
		for m := range s.LegalMoves() {
			if hasHint && m == hint {
				continue
			}
			stop, err := try(m)
			if err != nil {
				return best, 0, err
			}
			if stop {
				break
			}
		}
	}
	if score == math.MaxInt {
		return best, s.Eval(ai.player), nil
	}

	ai.store(hash, best, score, alpha, beta0, depth, ai.nodes-start)
	return best, score, nil
}
