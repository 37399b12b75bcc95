// Package protocol implements a line-based text protocol that lets a front
// end drive the engine over a pair of streams, usually stdin and stdout.
package protocol

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hailam/mnkplay/internal/board"
	"github.com/hailam/mnkplay/internal/config"
	"github.com/hailam/mnkplay/internal/engine"
	"github.com/hailam/mnkplay/internal/game"
)

// Protocol reads commands from in and answers on out.
//
// Commands:
//
//	mnk                               identify, answered by mnkok
//	isready                           answered by readyok
//	newgame [M N K [first|second [ms]]] start a game, the engine on the given seat
//	setoption name <id> value <x>     budget (ms) or safety
//	play R,C                          apply a move of either side
//	undo                              take back the last move
//	go                                let the engine move, answered by bestmove R,C
//	d                                 print the board
//	legal                             list the candidate moves
//	eval                              static evaluation for the side to move
//	quit
type Protocol struct {
	cfg    *config.Config
	in     io.Reader
	out    io.Writer
	logger zerolog.Logger

	board  *board.Board
	ai     *engine.AI[board.Position]
	budget time.Duration
	safety float64
}

// New creates a protocol handler. No game exists until newgame.
func New(cfg *config.Config, in io.Reader, out io.Writer) *Protocol {
	return &Protocol{
		cfg:    cfg,
		in:     in,
		out:    out,
		logger: log.With().Str("component", "protocol").Logger(),
		budget: cfg.Budget(),
		safety: cfg.SafetyFactor,
	}
}

// Run processes commands until quit or end of input.
func (p *Protocol) Run() error {
	scanner := bufio.NewScanner(p.in)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd := parts[0]
		args := parts[1:]
		p.logger.Debug().Str("cmd", line).Msg("received")

		var err error
		switch cmd {
		case "mnk":
			p.handleMNK()
		case "isready":
			p.println("readyok")
		case "newgame":
			err = p.handleNewGame(args)
		case "setoption":
			err = p.handleSetOption(args)
		case "play":
			err = p.handlePlay(args)
		case "undo":
			err = p.handleUndo()
		case "go":
			err = p.handleGo()
		case "d":
			err = p.handleDisplay()
		case "legal":
			err = p.handleLegal()
		case "eval":
			err = p.handleEval()
		case "quit":
			return nil
		default:
			err = errors.Errorf("unknown command %q", cmd)
		}
		if err != nil {
			p.logger.Debug().Err(err).Str("cmd", cmd).Msg("command failed")
			p.printf("error %v\n", err)
		}
	}
	return scanner.Err()
}

func (p *Protocol) println(a ...any) {
	fmt.Fprintln(p.out, a...)
}

func (p *Protocol) printf(format string, a ...any) {
	fmt.Fprintf(p.out, format, a...)
}

var errNoGame = errors.New("no game in progress, send newgame first")

// handleMNK responds to the "mnk" command.
func (p *Protocol) handleMNK() {
	p.println("id name mnkplay")
	p.println("id author mnkplay team")
	p.printf("option name Budget type spin default %d min 1\n", p.cfg.BudgetMs)
	p.printf("option name Safety type string default %g\n", p.cfg.SafetyFactor)
	p.println("mnkok")
}

// handleNewGame sets up a board. Missing arguments fall back to the
// configuration; the engine plays second unless told otherwise.
func (p *Protocol) handleNewGame(args []string) error {
	m, n, k := p.cfg.Rows, p.cfg.Cols, p.cfg.K
	side := game.P2
	budget := p.budget

	if len(args) > 0 {
		if len(args) < 3 {
			return errors.New("newgame needs M N K")
		}
		dims := make([]int, 3)
		for i := range dims {
			v, err := strconv.Atoi(args[i])
			if err != nil {
				return errors.Wrapf(err, "newgame: bad dimension %q", args[i])
			}
			dims[i] = v
		}
		m, n, k = dims[0], dims[1], dims[2]
	}
	if len(args) > 3 {
		s, err := game.ParsePlayer(args[3])
		if err != nil {
			return errors.Wrap(err, "newgame")
		}
		side = s
	}
	if len(args) > 4 {
		ms, err := strconv.Atoi(args[4])
		if err != nil || ms <= 0 {
			return errors.Errorf("newgame: bad budget %q", args[4])
		}
		budget = time.Duration(ms) * time.Millisecond
	}

	b, err := board.New(m, n, k, board.WithWeights(p.cfg.BoardWeights()))
	if err != nil {
		return err
	}
	p.board = b
	p.ai = engine.New[board.Position](side, b, budget,
		engine.WithSafetyFactor(p.safety),
		engine.WithLogger(p.logger),
	)
	p.ai.OnInfo = p.sendInfo
	p.logger.Info().Int("m", m).Int("n", n).Int("k", k).
		Str("engine", side.String()).Dur("budget", budget).Msg("new game")
	p.println("ok")
	return nil
}

// handleSetOption handles "setoption name <id> value <x>". Changes apply
// from the next newgame.
func (p *Protocol) handleSetOption(args []string) error {
	if len(args) < 4 || args[0] != "name" || args[2] != "value" {
		return errors.New("usage: setoption name <id> value <x>")
	}
	value := args[3]
	switch strings.ToLower(args[1]) {
	case "budget":
		ms, err := strconv.Atoi(value)
		if err != nil || ms <= 0 {
			return errors.Errorf("bad budget %q", value)
		}
		p.budget = time.Duration(ms) * time.Millisecond
	case "safety":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f <= 0 || f > 1 {
			return errors.Errorf("bad safety factor %q", value)
		}
		p.safety = f
	default:
		return errors.Errorf("unknown option %q", args[1])
	}
	p.println("ok")
	return nil
}

func (p *Protocol) handlePlay(args []string) error {
	if p.board == nil {
		return errNoGame
	}
	if len(args) != 1 {
		return errors.New("usage: play R,C")
	}
	pos, err := board.ParsePosition(p.board.Rows(), p.board.Cols(), args[0])
	if err != nil {
		return err
	}
	if err := p.ai.Update(pos); err != nil {
		return err
	}
	p.println("ok")
	p.reportResult()
	return nil
}

func (p *Protocol) handleUndo() error {
	if p.board == nil {
		return errNoGame
	}
	if err := p.board.Undo(); err != nil {
		return err
	}
	p.println("ok")
	return nil
}

// handleGo runs a search for the engine's side and plays the result.
func (p *Protocol) handleGo() error {
	if p.board == nil {
		return errNoGame
	}
	move, err := p.ai.Decide()
	if err != nil {
		return err
	}
	if err := p.ai.Update(move); err != nil {
		return err
	}
	p.printf("bestmove %s\n", move)
	p.reportResult()
	return nil
}

// sendInfo prints one line per completed iteration.
func (p *Protocol) sendInfo(info engine.SearchInfo[board.Position]) {
	parts := []string{
		fmt.Sprintf("depth %d", info.Depth),
		fmt.Sprintf("score %d", info.Score),
		fmt.Sprintf("nodes %d", info.Nodes),
		fmt.Sprintf("time %d", info.Time.Milliseconds()),
		fmt.Sprintf("hashhit %.1f", info.HitRate),
		fmt.Sprintf("move %s", info.Move),
	}
	p.printf("info %s\n", strings.Join(parts, " "))
}

func (p *Protocol) reportResult() {
	if p.board.IsTerminal() {
		p.printf("result %s\n", p.board.State())
	}
}

func (p *Protocol) handleDisplay() error {
	if p.board == nil {
		return errNoGame
	}
	p.printf("%s", p.board)
	p.printf("to move %s, plies %d, state %s\n", p.board.Player(), p.board.Plies(), p.board.State())
	return nil
}

func (p *Protocol) handleLegal() error {
	if p.board == nil {
		return errNoGame
	}
	var moves []string
	for m := range p.board.LegalMoves() {
		moves = append(moves, m.String())
	}
	p.printf("legal %s\n", strings.Join(moves, " "))
	return nil
}

func (p *Protocol) handleEval() error {
	if p.board == nil {
		return errNoGame
	}
	p.printf("eval %d\n", p.board.Eval(p.board.Player()))
	return nil
}
