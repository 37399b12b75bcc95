// Package ui is the interactive terminal front end: a readline shell that
// renders the board with colours and lets a human play the engine or
// another human.
package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hailam/mnkplay/internal/board"
	"github.com/hailam/mnkplay/internal/config"
	"github.com/hailam/mnkplay/internal/engine"
	"github.com/hailam/mnkplay/internal/game"
	"github.com/hailam/mnkplay/internal/storage"
)

// GameMode represents the current game mode.
type GameMode int

const (
	ModeHumanVsHuman GameMode = iota
	ModeHumanVsComputer
)

func (m GameMode) String() string {
	if m == ModeHumanVsHuman {
		return "human vs human"
	}
	return "human vs computer"
}

// Recorder stores finished games.
type Recorder interface {
	RecordGame(key storage.MatchKey, result storage.GameResult) error
}

// Game is an interactive session.
type Game struct {
	cfg      *config.Config
	out      io.Writer
	renderer *Renderer
	recorder Recorder
	logger   zerolog.Logger

	board     *board.Board
	ai        *engine.AI[board.Position]
	mode      GameMode
	humanSide game.Player
	lastMove  board.Position
	hasLast   bool
	started   time.Time
	recorded  bool
}

// NewGame creates a session on the configured board, the human moving
// first against the computer. recorder may be nil.
func NewGame(cfg *config.Config, out io.Writer, renderer *Renderer, recorder Recorder) (*Game, error) {
	g := &Game{
		cfg:       cfg,
		out:       out,
		renderer:  renderer,
		recorder:  recorder,
		logger:    log.With().Str("component", "ui").Logger(),
		mode:      ModeHumanVsComputer,
		humanSide: game.P1,
	}
	if err := g.NewGameAction(cfg.Rows, cfg.Cols, cfg.K, game.P1); err != nil {
		return nil, err
	}
	return g, nil
}

// NewGameAction starts a fresh game. If the computer moves first it plays
// immediately.
func (g *Game) NewGameAction(m, n, k int, human game.Player) error {
	b, err := board.New(m, n, k, board.WithWeights(g.cfg.BoardWeights()))
	if err != nil {
		return err
	}
	g.board = b
	g.humanSide = human
	g.hasLast = false
	g.started = time.Now()
	g.recorded = false
	g.resetEngine()

	switch board.TheoreticalValue(m, n, k) {
	case board.FirstPlayerWin:
		fmt.Fprintf(g.out, "%d,%d,%d-game: the first player wins with perfect play\n", m, n, k)
	case board.Drawn:
		fmt.Fprintf(g.out, "%d,%d,%d-game: drawn with perfect play\n", m, n, k)
	}
	if g.computerToMove() {
		return g.aiMove()
	}
	return nil
}

func (g *Game) resetEngine() {
	g.ai = engine.New[board.Position](g.humanSide.Other(), g.board, g.cfg.Budget(),
		engine.WithSafetyFactor(g.cfg.SafetyFactor),
		engine.WithLogger(g.logger),
	)
}

// ToggleModeAction toggles between Human vs Human and Human vs Computer.
// Switching to the computer leaves the human the side to move.
func (g *Game) ToggleModeAction() {
	if g.mode == ModeHumanVsHuman {
		g.mode = ModeHumanVsComputer
		g.humanSide = g.board.Player()
		g.resetEngine()
		return
	}
	g.mode = ModeHumanVsHuman
}

// Play applies a human move and lets the computer answer.
func (g *Game) Play(p board.Position) error {
	if g.computerToMove() {
		return engine.ErrNotYourTurn
	}
	if err := g.makeMove(p); err != nil {
		return err
	}
	if g.computerToMove() {
		return g.aiMove()
	}
	return nil
}

// Undo takes back the last human move, and the computer's reply to it. If
// that leaves the computer to move, it plays again.
func (g *Game) Undo() error {
	n := 1
	if g.mode == ModeHumanVsComputer && g.board.Plies() > 1 && g.board.Player() == g.humanSide {
		n = 2
	}
	for range n {
		if err := g.board.Undo(); err != nil {
			return err
		}
	}
	history := g.board.History()
	g.hasLast = len(history) > 0
	if g.hasLast {
		g.lastMove = history[len(history)-1]
	}
	if g.computerToMove() {
		return g.aiMove()
	}
	return nil
}

// Hint searches the position for the side to move without playing.
func (g *Game) Hint() (board.Position, engine.Stats, error) {
	if g.board.IsTerminal() {
		return board.Position{}, engine.Stats{}, engine.ErrGameOver
	}
	helper := engine.New[board.Position](g.board.Player(), g.board, g.cfg.Budget(),
		engine.WithSafetyFactor(g.cfg.SafetyFactor),
		engine.WithLogger(g.logger),
	)
	move, err := helper.Decide()
	return move, helper.Stats(), err
}

func (g *Game) computerToMove() bool {
	return g.mode == ModeHumanVsComputer && !g.board.IsTerminal() && g.board.Player() != g.humanSide
}

// makeMove applies a move to the game.
func (g *Game) makeMove(p board.Position) error {
	if err := g.board.Apply(p); err != nil {
		return err
	}
	g.lastMove, g.hasLast = p, true
	g.checkGameEnd()
	return nil
}

// aiMove lets the computer play one move.
func (g *Game) aiMove() error {
	move, err := g.ai.Decide()
	if err != nil {
		return errors.Wrap(err, "engine")
	}
	st := g.ai.Stats()
	fmt.Fprintf(g.out, "computer plays %s (depth %d, score %d, %d nodes, %v)\n",
		move, st.Depth, st.Score, st.Nodes, st.Elapsed.Round(time.Millisecond))
	return g.makeMove(move)
}

// checkGameEnd records a finished game once.
func (g *Game) checkGameEnd() {
	if !g.board.IsTerminal() || g.recorded {
		return
	}
	g.recorded = true
	g.logger.Info().Str("result", g.board.State().String()).Int("plies", g.board.Plies()).Msg("game over")
	if g.recorder == nil {
		return
	}

	names := [2]string{"human", "human"}
	if g.mode == ModeHumanVsComputer {
		names[g.humanSide.Other().Index()] = "engine"
	}
	result := storage.GameResult{
		First:    names[0],
		Second:   names[1],
		Outcome:  storage.Drawn,
		Plies:    g.board.Plies(),
		Duration: time.Since(g.started),
	}
	switch g.board.State() {
	case board.WinP1:
		result.Outcome = storage.FirstWon
	case board.WinP2:
		result.Outcome = storage.SecondWon
	}
	key := storage.MatchKey{Rows: g.board.Rows(), Cols: g.board.Cols(), K: g.board.K(), PlayerA: "human", PlayerB: names[g.humanSide.Other().Index()]}
	if err := g.recorder.RecordGame(key, result); err != nil {
		g.logger.Warn().Err(err).Msg("could not record game")
	}
}

// Board returns the current board.
func (g *Game) Board() *board.Board { return g.board }

// Mode returns the current game mode.
func (g *Game) Mode() GameMode { return g.mode }

// HumanSide returns the side the human plays against the computer.
func (g *Game) HumanSide() game.Player { return g.humanSide }

// GameOver reports whether the game has ended.
func (g *Game) GameOver() bool { return g.board.IsTerminal() }

// GameResult describes the outcome, empty while the game is open.
func (g *Game) GameResult() string {
	switch g.board.State() {
	case board.WinP1, board.WinP2:
		winner, _ := g.board.Winner()
		if g.mode == ModeHumanVsComputer {
			if winner == g.humanSide {
				return fmt.Sprintf("%s wins, well played!", winner)
			}
			return fmt.Sprintf("%s wins, the computer takes it", winner)
		}
		return fmt.Sprintf("%s wins", winner)
	case board.Draw:
		return "Draw"
	}
	return ""
}

// Render draws the board with the last move highlighted.
func (g *Game) Render() string {
	return g.renderer.Board(g.board, g.lastMove, g.hasLast)
}
