package protocol

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hailam/mnkplay/internal/board"
	"github.com/hailam/mnkplay/internal/config"
)

// run feeds the commands to a fresh handler and returns the output lines.
func run(t *testing.T, commands ...string) []string {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)

	var out bytes.Buffer
	p := New(cfg, strings.NewReader(strings.Join(commands, "\n")+"\n"), &out)
	require.NoError(t, p.Run())
	return strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
}

func find(lines []string, prefix string) (string, bool) {
	for _, l := range lines {
		if strings.HasPrefix(l, prefix) {
			return l, true
		}
	}
	return "", false
}

func TestHandshake(t *testing.T) {
	lines := run(t, "mnk", "isready", "quit", "isready")
	assert.Equal(t, "id name mnkplay", lines[0])
	assert.Contains(t, lines, "mnkok")
	// Nothing is processed after quit.
	assert.Equal(t, "readyok", lines[len(lines)-1])
	assert.Equal(t, 1, strings.Count(strings.Join(lines, "\n"), "readyok"))
}

func TestCommandsNeedAGame(t *testing.T) {
	for _, cmd := range []string{"play 0,0", "go", "d", "legal", "eval", "undo"} {
		lines := run(t, cmd)
		require.Len(t, lines, 1, cmd)
		assert.True(t, strings.HasPrefix(lines[0], "error no game"), lines[0])
	}
}

func TestUnknownCommand(t *testing.T) {
	lines := run(t, "castle")
	assert.Equal(t, []string{`error unknown command "castle"`}, lines)
}

func TestPlayUntilWin(t *testing.T) {
	lines := run(t,
		"newgame 3 3 3 second",
		"play 0,0", "play 1,0", "play 0,1", "play 1,1", "play 0,2",
		"play 2,2",
	)
	assert.Equal(t, "ok", lines[0])
	result, ok := find(lines, "result ")
	require.True(t, ok)
	assert.Equal(t, "result P1 wins", result)
	assert.True(t, strings.HasPrefix(lines[len(lines)-1], "error "), lines[len(lines)-1])
}

func TestPlayRejectsBadMoves(t *testing.T) {
	lines := run(t, "newgame 3 3 3", "play 1,1", "play 1,1", "play 3,0", "play x")
	require.Len(t, lines, 5)
	assert.Equal(t, "ok", lines[1])
	for _, l := range lines[2:] {
		assert.True(t, strings.HasPrefix(l, "error "), l)
	}
}

func TestGoPlaysALegalMove(t *testing.T) {
	lines := run(t, "newgame 3 3 3 first 300", "go", "d")
	best, ok := find(lines, "bestmove ")
	require.True(t, ok)
	pos, err := board.ParsePosition(3, 3, strings.TrimPrefix(best, "bestmove "))
	require.NoError(t, err)

	_, ok = find(lines, "info depth 1 ")
	assert.True(t, ok, "expected iteration info")

	// The board dump shows the engine's mark on the chosen cell.
	rows := lines[len(lines)-4 : len(lines)-1]
	cells := strings.Fields(rows[pos.Row()])
	assert.Equal(t, "X", cells[pos.Col()])
	assert.Equal(t, "to move P2, plies 1, state open", lines[len(lines)-1])
}

func TestGoOnOpponentsTurn(t *testing.T) {
	lines := run(t, "newgame 3 3 3 second", "go")
	assert.Equal(t, "error not the engine's turn", lines[1])
}

func TestEngineTakesTheWin(t *testing.T) {
	lines := run(t,
		"newgame 3 3 3 first 500",
		"play 0,0", "play 1,0", "play 0,1", "play 1,1",
		"go",
	)
	assert.Contains(t, lines, "bestmove 0,2")
	assert.Contains(t, lines, "result P1 wins")
}

func TestLegalAndUndo(t *testing.T) {
	lines := run(t, "newgame 5 5 4", "legal", "play 2,2", "legal", "undo", "legal")
	require.Len(t, lines, 6)

	all := strings.Fields(strings.TrimPrefix(lines[1], "legal "))
	assert.Len(t, all, 25)
	assert.Equal(t, "2,2", all[0])

	near := strings.Fields(strings.TrimPrefix(lines[3], "legal "))
	assert.Len(t, near, 8)
	assert.NotContains(t, near, "0,0")

	assert.Equal(t, "ok", lines[4])
	assert.Equal(t, lines[1], lines[5])
}

func TestEval(t *testing.T) {
	lines := run(t, "newgame 3 3 3", "eval")
	assert.Equal(t, "eval 0", lines[1])
}

func TestSetOption(t *testing.T) {
	lines := run(t,
		"setoption name budget value 200",
		"setoption name safety value 0.5",
		"setoption name safety value 2",
		"setoption name hash value 64",
		"setoption budget",
	)
	require.Len(t, lines, 5)
	assert.Equal(t, "ok", lines[0])
	assert.Equal(t, "ok", lines[1])
	for _, l := range lines[2:] {
		assert.True(t, strings.HasPrefix(l, "error "), l)
	}
}

func TestNewGameArguments(t *testing.T) {
	lines := run(t, "newgame 3 3", "newgame 3 x 3", "newgame 3 3 3 third", "newgame 3 3 3 first 0", "newgame 3 3 0", "newgame")
	require.Len(t, lines, 6)
	for _, l := range lines[:5] {
		assert.True(t, strings.HasPrefix(l, "error "), l)
	}
	assert.Equal(t, "ok", lines[5])
}
