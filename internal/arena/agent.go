package arena

import (
	"encoding/binary"
	"slices"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"lukechampine.com/frand"

	"github.com/hailam/mnkplay/internal/board"
	"github.com/hailam/mnkplay/internal/engine"
	"github.com/hailam/mnkplay/internal/game"
)

// Player plays one seat of one game on a board of its own.
type Player interface {
	// Decide returns the move to play without applying it.
	Decide() (board.Position, error)
	// Update applies a move of either seat.
	Update(board.Position) error
}

// Agent creates players. Start is called once per game, with the game's
// index in the series, and must be safe for concurrent use.
type Agent interface {
	Name() string
	Start(index int, seat game.Player, b *board.Board) Player
}

// EngineAgent plays with the alpha-beta engine.
type EngineAgent struct {
	Label  string // defaults to "engine"
	Budget time.Duration
	Safety float64
	Logger zerolog.Logger
}

func (e EngineAgent) Name() string {
	if e.Label == "" {
		return "engine"
	}
	return e.Label
}

func (e EngineAgent) Start(_ int, seat game.Player, b *board.Board) Player {
	opts := []engine.Option{engine.WithLogger(e.Logger)}
	if e.Safety > 0 {
		opts = append(opts, engine.WithSafetyFactor(e.Safety))
	}
	return engine.New[board.Position](seat, b, e.Budget, opts...)
}

// RandomAgent plays a uniformly random free cell.
type RandomAgent struct {
	// Seed makes games reproducible. Each game and seat derives its own
	// stream from it; nil draws from the system entropy.
	Seed []byte
}

func (RandomAgent) Name() string { return "random" }

func (r RandomAgent) Start(index int, seat game.Player, b *board.Board) Player {
	rng := frand.New()
	if r.Seed != nil {
		seed := make([]byte, 32)
		copy(seed, r.Seed)
		var mix [8]byte
		binary.LittleEndian.PutUint64(mix[:], uint64(index))
		for i, v := range mix {
			seed[23+i] ^= v
		}
		seed[31] ^= byte(seat)
		rng = frand.NewCustom(seed, 1024, 12)
	}
	return &randomPlayer{board: b, rng: rng}
}

type randomPlayer struct {
	board *board.Board
	rng   *frand.RNG
}

func (p *randomPlayer) Decide() (board.Position, error) {
	free := slices.Collect(p.board.AllFreeMoves())
	if len(free) == 0 {
		return board.Position{}, errors.New("random: no free cell")
	}
	return free[p.rng.Intn(len(free))], nil
}

func (p *randomPlayer) Update(m board.Position) error {
	return p.board.Apply(m)
}
