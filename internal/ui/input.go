package ui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/pkg/errors"

	"github.com/hailam/mnkplay/internal/board"
	"github.com/hailam/mnkplay/internal/game"
)

func usage(w io.Writer) {
	io.WriteString(w, "commands:\n")
	io.WriteString(w, "<r>,<c> or play <r>,<c> - place your mark\n")
	io.WriteString(w, "new [m n k [first|second]] - start a new game, you move first by default\n")
	io.WriteString(w, "mode - toggle between playing the computer and another human\n")
	io.WriteString(w, "hint - ask the engine for a move without playing it\n")
	io.WriteString(w, "undo - take back your last move\n")
	io.WriteString(w, "show - print the board\n")
	io.WriteString(w, "eval - static evaluation for the side to move\n")
	io.WriteString(w, "exit - leave\n")
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

// errQuit ends the shell loop.
var errQuit = errors.New("quit")

// Exec runs one command line. It returns errQuit on exit.
func (g *Game) Exec(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	cmd, args := fields[0], fields[1:]

	// A bare move.
	if strings.Contains(cmd, ",") {
		cmd, args = "play", fields
	}

	switch cmd {
	case "help", "?":
		usage(g.out)
		return nil
	case "exit", "quit", "bye":
		return errQuit
	case "show":
	case "play":
		if len(args) != 1 {
			return errors.New("usage: play <r>,<c>")
		}
		p, err := board.ParsePosition(g.board.Rows(), g.board.Cols(), args[0])
		if err != nil {
			return err
		}
		if err := g.Play(p); err != nil {
			return err
		}
	case "new":
		if err := g.execNew(args); err != nil {
			return err
		}
	case "mode":
		g.ToggleModeAction()
		fmt.Fprintf(g.out, "mode: %s\n", g.mode)
		return nil
	case "undo":
		if err := g.Undo(); err != nil {
			return err
		}
	case "hint":
		move, st, err := g.Hint()
		if err != nil {
			return err
		}
		fmt.Fprintf(g.out, "hint: %s (depth %d, score %d)\n", move, st.Depth, st.Score)
		return nil
	case "eval":
		fmt.Fprintf(g.out, "eval: %d\n", g.board.Eval(g.board.Player()))
		return nil
	default:
		return errors.Errorf("unknown command %q, try help", cmd)
	}

	fmt.Fprint(g.out, g.Render())
	fmt.Fprintln(g.out, g.renderer.Status(g))
	return nil
}

func (g *Game) execNew(args []string) error {
	m, n, k := g.board.Rows(), g.board.Cols(), g.board.K()
	human := game.P1
	if len(args) > 0 {
		if len(args) < 3 {
			return errors.New("usage: new [m n k [first|second]]")
		}
		dims := make([]int, 3)
		for i := range dims {
			v, err := strconv.Atoi(args[i])
			if err != nil {
				return errors.Wrapf(err, "bad dimension %q", args[i])
			}
			dims[i] = v
		}
		m, n, k = dims[0], dims[1], dims[2]
	}
	if len(args) > 3 {
		p, err := game.ParsePlayer(args[3])
		if err != nil {
			return err
		}
		human = p
	}
	return g.NewGameAction(m, n, k, human)
}

// Run reads commands with line editing until exit or end of input.
func (g *Game) Run() error {
	l, err := readline.NewEx(&readline.Config{
		Prompt:      "\033[31mmnkplay>\033[0m ",
		HistoryFile: filepath.Join(os.TempDir(), "mnkplay.history"),
		EOFPrompt:   "exit",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		return err
	}
	defer l.Close()

	g.out = l.Stdout()
	fmt.Fprint(g.out, g.Render())
	fmt.Fprintln(g.out, g.renderer.Status(g))

	for {
		line, err := l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				return nil
			}
			continue
		} else if err == io.EOF {
			return nil
		}

		start := time.Now()
		err = g.Exec(line)
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(l.Stderr(), "error: %v\n", err)
		}
		g.logger.Debug().Str("cmd", line).Dur("took", time.Since(start)).Msg("command")
	}
}
