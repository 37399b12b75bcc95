// Package engine implements a game-independent alpha-beta player with
// iterative deepening, a transposition table and a per-move time budget.
package engine

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hailam/mnkplay/internal/game"
)

var (
	// ErrGameOver is returned by Decide on a terminal position.
	ErrGameOver = errors.New("game is over")
	// ErrNotYourTurn is returned by Decide when the opponent is to move.
	ErrNotYourTurn = errors.New("not the engine's turn")
)

// SearchInfo describes one completed iteration.
type SearchInfo[M comparable] struct {
	Depth   int
	Score   int
	Nodes   uint64
	Time    time.Duration
	Move    M
	HitRate float64 // transposition table hit rate, percent
}

// Stats summarizes the last decision.
type Stats struct {
	Nodes     uint64
	Depth     int // last completed depth, 0 if none
	Score     int
	Elapsed   time.Duration
	HitRate   float64
	TableSize int
	TimedOut  bool
}

type options struct {
	safety   float64
	logger   zerolog.Logger
	capacity int
}

// Option configures an AI.
type Option func(*options)

// WithSafetyFactor sets the share of the budget the search may use. Values
// outside (0, 1] are ignored.
func WithSafetyFactor(f float64) Option {
	return func(o *options) {
		if f > 0 && f <= 1 {
			o.safety = f
		}
	}
}

// WithLogger sets the logger for search progress.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithTableCapacity overrides the capacity suggested by the game.
func WithTableCapacity(n int) Option {
	return func(o *options) { o.capacity = n }
}

// AI plays one side of a game within a fixed time budget per move.
type AI[M comparable] struct {
	player game.Player
	state  game.Searchable[M]
	budget time.Duration
	safety float64
	table  *Table[M]
	logger zerolog.Logger
	tm     TimeManager

	nodes uint64
	stats Stats

	// Callbacks
	OnInfo func(SearchInfo[M])
}

// New creates an engine playing player on state. The engine mutates state
// while searching and restores it before Decide returns.
func New[M comparable](player game.Player, state game.Searchable[M], budget time.Duration, opts ...Option) *AI[M] {
	o := options{
		safety:   DefaultSafetyFactor,
		logger:   log.Logger,
		capacity: -1,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.capacity < 0 {
		o.capacity = state.TTSuggestedCapacity()
	}
	return &AI[M]{
		player: player,
		state:  state,
		budget: budget,
		safety: o.safety,
		table:  NewTable[M](o.capacity),
		logger: o.logger,
	}
}

// Player returns the side the engine plays.
func (ai *AI[M]) Player() game.Player { return ai.player }

// Budget returns the time allowed per decision.
func (ai *AI[M]) Budget() time.Duration { return ai.budget }

// Update applies a move observed in the game, by either player.
func (ai *AI[M]) Update(m M) error {
	if err := ai.state.Apply(m); err != nil {
		return errors.Wrapf(err, "update %v", m)
	}
	return nil
}

// Decide searches the current position and returns the move to play. It
// does not apply the move.
func (ai *AI[M]) Decide() (M, error) {
	var best M
	s := ai.state
	if s.IsTerminal() {
		return best, ErrGameOver
	}
	if s.Player() != ai.player {
		return best, ErrNotYourTurn
	}

	ai.tm.Init(ai.budget, ai.safety)
	ai.nodes = 0
	ai.stats = Stats{}
	rootHash, rootPlies := s.Hash(), s.Plies()
	alpha, beta := s.InitialAlpha(ai.player), s.InitialBeta(ai.player)

	found := false
	for depth := 1; depth <= s.OverestimatedHeight(); depth++ {
		move, score, err := ai.maxValue(alpha, beta, depth)
		if err != nil {
			ai.verifyRollback(rootHash, rootPlies)
			if errors.Is(err, errTimeout) {
				ai.stats.TimedOut = true
				break
			}
			return best, err
		}

		best, found = move, true
		ai.stats.Depth, ai.stats.Score = depth, score
		ai.report(depth, score, move)

		if score >= game.Win || score <= game.Loss {
			break
		}
	}

	if !found {
		for m := range s.LegalMoves() {
			best, found = m, true
			break
		}
		if !found {
			return best, errors.New("engine: open position without legal moves")
		}
		ai.logger.Warn().Dur("budget", ai.budget).Msg("no search depth completed, playing first candidate")
	}

	ai.stats.Nodes = ai.nodes
	ai.stats.Elapsed = ai.tm.Elapsed()
	ai.stats.HitRate = ai.table.HitRate()
	ai.stats.TableSize = ai.table.Len()
	ai.logger.Info().
		Str("player", ai.player.String()).
		Str("move", fmt.Sprint(best)).
		Int("depth", ai.stats.Depth).
		Int("score", ai.stats.Score).
		Uint64("nodes", ai.nodes).
		Dur("elapsed", ai.stats.Elapsed).
		Msg("decision")
	return best, nil
}

func (ai *AI[M]) report(depth, score int, move M) {
	elapsed := ai.tm.Elapsed()
	ai.logger.Debug().
		Int("depth", depth).
		Int("score", score).
		Uint64("nodes", ai.nodes).
		Dur("elapsed", elapsed).
		Str("move", fmt.Sprint(move)).
		Msg("iteration complete")
	if ai.OnInfo != nil {
		ai.OnInfo(SearchInfo[M]{
			Depth:   depth,
			Score:   score,
			Nodes:   ai.nodes,
			Time:    elapsed,
			Move:    move,
			HitRate: ai.table.HitRate(),
		})
	}
}

// verifyRollback panics if an aborted pass left the position modified.
func (ai *AI[M]) verifyRollback(hash uint64, plies int) {
	if ai.state.Hash() != hash || ai.state.Plies() != plies {
		panic(fmt.Sprintf("engine: position not restored after aborted search (plies %d, want %d)", ai.state.Plies(), plies))
	}
}

// Stats returns figures about the last call to Decide.
func (ai *AI[M]) Stats() Stats { return ai.stats }

// Clear empties the transposition table.
func (ai *AI[M]) Clear() { ai.table.Clear() }
