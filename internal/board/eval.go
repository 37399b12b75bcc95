package board

import "github.com/hailam/mnkplay/internal/game"

// Weights scale the threat counts combined by Eval. "Short" terms count open
// runs of length K-2, "Near" terms runs of length K-1 and "Complete" full
// runs of length K. Opponent threats weigh more: the evaluated player is the
// one who must react to them.
type Weights struct {
	Short        int
	NearHalfOpen int
	NearOpen     int
	Complete     int

	OppShort        int
	OppNearHalfOpen int
	OppNearOpen     int
	OppComplete     int
}

// DefaultWeights are the tuned evaluator weights.
var DefaultWeights = Weights{
	Short:        100,
	NearHalfOpen: 80,
	NearOpen:     250,
	Complete:     1_000_000,

	OppShort:        1300,
	OppNearHalfOpen: 2000,
	OppNearOpen:     5020,
	OppComplete:     1_000_000,
}

// SetWeights replaces the evaluator weights.
func (b *Board) SetWeights(w Weights) { b.weights = w }

// Weights returns the evaluator weights in use.
func (b *Board) Weights() Weights { return b.weights }

// Eval scores the board from p's view. Terminal boards score their utility;
// open boards score strictly between Loss and Win.
func (b *Board) Eval(p game.Player) int {
	if b.state != Open {
		return b.Utility(p)
	}
	w := b.weights
	own := b.threatScore(p, w.Short, w.NearHalfOpen, w.NearOpen, w.Complete)
	opp := b.threatScore(p.Other(), w.OppShort, w.OppNearHalfOpen, w.OppNearOpen, w.OppComplete)
	return min(max(own-opp, game.Loss+1), game.Win-1)
}

func (b *Board) threatScore(p game.Player, short, halfOpen, open, complete int) int {
	k := b.k
	near := b.CountThreats(k-1, ThreatTwo, p) +
		b.CountThreats(k-1, ThreatFour, p) +
		b.CountThreats(k-1, ThreatFive, p) +
		b.CountThreats(k-1, ThreatSix, p)
	return short*b.CountThreats(k-2, ThreatOne, p) +
		halfOpen*near +
		open*b.CountThreats(k-1, ThreatOne, p) +
		complete*b.kRuns(p)
}
