// Package arena plays series of games between two agents on a worker pool
// and aggregates the results.
package arena

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/hailam/mnkplay/internal/board"
	"github.com/hailam/mnkplay/internal/game"
	"github.com/hailam/mnkplay/internal/storage"
)

// Recorder persists finished games.
type Recorder interface {
	RecordGame(key storage.MatchKey, result storage.GameResult) error
}

// Settings describes a series.
type Settings struct {
	Rows, Cols, K int
	Games         int
	Workers       int
	Weights       board.Weights
}

// Game is one finished game.
type Game struct {
	Index         int
	First, Second string
	State         board.GameState
	Moves         []board.Position
	Duration      time.Duration
}

// Winner returns the name of the winner, "" for a draw.
func (g Game) Winner() string {
	switch g.State {
	case board.WinP1:
		return g.First
	case board.WinP2:
		return g.Second
	}
	return ""
}

func (g Game) result() storage.GameResult {
	r := storage.GameResult{
		First:    g.First,
		Second:   g.Second,
		Outcome:  storage.Drawn,
		Plies:    len(g.Moves),
		Duration: g.Duration,
	}
	switch g.State {
	case board.WinP1:
		r.Outcome = storage.FirstWon
	case board.WinP2:
		r.Outcome = storage.SecondWon
	}
	return r
}

// Summary aggregates a series.
type Summary struct {
	Games        []Game
	Wins         map[string]int
	Draws        int
	FirstWins    int
	SecondWins   int
	AveragePlies float64
	Elapsed      time.Duration
}

func (s *Summary) String() string {
	return fmt.Sprintf("%d games: wins %v, draws %d, first/second seat wins %d/%d, avg %.1f plies, %v",
		len(s.Games), s.Wins, s.Draws, s.FirstWins, s.SecondWins, s.AveragePlies, s.Elapsed.Round(time.Millisecond))
}

// Arena runs games between A and B. A moves first in even-numbered games,
// B in odd-numbered ones.
type Arena struct {
	settings Settings
	a, b     Agent
	recorder Recorder
	logger   zerolog.Logger

	// OnGame is called after each game, from the worker that played it.
	OnGame func(Game)
}

// New creates an arena. recorder may be nil.
func New(settings Settings, a, b Agent, recorder Recorder) *Arena {
	if settings.Workers < 1 {
		settings.Workers = 1
	}
	return &Arena{
		settings: settings,
		a:        a,
		b:        b,
		recorder: recorder,
		logger:   log.With().Str("component", "arena").Logger(),
	}
}

// Key identifies the series in storage.
func (ar *Arena) Key() storage.MatchKey {
	s := ar.settings
	return storage.MatchKey{Rows: s.Rows, Cols: s.Cols, K: s.K, PlayerA: ar.a.Name(), PlayerB: ar.b.Name()}
}

// Run plays every game of the series. It stops at the first error or when
// ctx is cancelled.
func (ar *Arena) Run(ctx context.Context) (*Summary, error) {
	start := time.Now()
	games := make([]Game, ar.settings.Games)
	key := ar.Key()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(ar.settings.Workers)

	for i := range games {
		g.Go(func() error {
			res, err := ar.play(ctx, i)
			if err != nil {
				return errors.Wrapf(err, "game %d", i)
			}
			games[i] = res
			ar.logger.Debug().
				Int("game", i).
				Str("first", res.First).
				Str("result", res.State.String()).
				Int("plies", len(res.Moves)).
				Msg("game finished")

			if ar.recorder != nil {
				if err := ar.recorder.RecordGame(key, res.result()); err != nil {
					return errors.Wrap(err, "recording game")
				}
			}
			if ar.OnGame != nil {
				ar.OnGame(res)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := summarize(games)
	summary.Elapsed = time.Since(start)
	ar.logger.Info().Str("key", key.String()).Msg(summary.String())
	return summary, nil
}

// play runs game i. Every seat gets its own board; a referee board checks
// each move before the players see it.
func (ar *Arena) play(ctx context.Context, i int) (Game, error) {
	first, second := ar.a, ar.b
	if i%2 == 1 {
		first, second = second, first
	}
	res := Game{Index: i, First: first.Name(), Second: second.Name()}

	newBoard := func() (*board.Board, error) {
		s := ar.settings
		return board.New(s.Rows, s.Cols, s.K, board.WithWeights(s.Weights))
	}
	referee, err := newBoard()
	if err != nil {
		return res, err
	}
	var players [2]Player
	for seat, agent := range []Agent{first, second} {
		b, err := newBoard()
		if err != nil {
			return res, err
		}
		players[seat] = agent.Start(i, game.Player(seat), b)
	}

	start := time.Now()
	for !referee.IsTerminal() {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		mover := referee.Player()
		m, err := players[mover.Index()].Decide()
		if err != nil {
			return res, errors.Wrapf(err, "%s to move", mover)
		}
		if err := referee.Apply(m); err != nil {
			return res, errors.Wrapf(err, "%s played an illegal move", mover)
		}
		for _, p := range players {
			if err := p.Update(m); err != nil {
				return res, err
			}
		}
		res.Moves = append(res.Moves, m)
	}
	res.State = referee.State()
	res.Duration = time.Since(start)
	return res, nil
}

func summarize(games []Game) *Summary {
	s := &Summary{
		Games: games,
		Wins: lo.CountValues(lo.FilterMap(games, func(g Game, _ int) (string, bool) {
			w := g.Winner()
			return w, w != ""
		})),
		Draws:      lo.CountBy(games, func(g Game) bool { return g.State == board.Draw }),
		FirstWins:  lo.CountBy(games, func(g Game) bool { return g.State == board.WinP1 }),
		SecondWins: lo.CountBy(games, func(g Game) bool { return g.State == board.WinP2 }),
	}
	if len(games) > 0 {
		plies := lo.SumBy(games, func(g Game) int { return len(g.Moves) })
		s.AveragePlies = float64(plies) / float64(len(games))
	}
	return s
}
