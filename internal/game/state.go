package game

import "iter"

// Payoffs shared by every game plugged into the engine. Heuristic
// evaluations must stay strictly inside (Loss, Win).
const (
	Win  = 1_000_000
	Draw = 0
	Loss = -1_000_000
)

// State is a mutable game position supporting backtracking. Apply and Undo
// must be strictly nested: every Apply is paired with a later Undo in
// reverse order.
type State[M comparable] interface {
	// Player returns the player to move.
	Player() Player
	// LegalMoves yields the candidate moves in search order. The sequence is
	// finite and may be iterated again after the position changes.
	LegalMoves() iter.Seq[M]
	IsLegal(m M) bool
	Apply(m M) error
	Undo() error
	IsTerminal() bool
	// Utility is defined on terminal states only.
	Utility(p Player) int
	// Eval is a heuristic for non-terminal states and the utility otherwise.
	Eval(p Player) int
	InitialAlpha(p Player) int
	InitialBeta(p Player) int
	// OverestimatedHeight bounds the number of plies left in the game.
	OverestimatedHeight() int
	// Plies is the number of moves applied since the initial position.
	Plies() int
}

// Transposable states can key a transposition table. Moves are stored in
// the orientation of the canonical hash and mapped back on retrieval.
type Transposable[M comparable] interface {
	Hash() uint64
	MapMoveToCanonical(m M) M
	MapMoveFromCanonical(m M) M
	TTSuggestedCapacity() int
}

// Searchable is what the engine needs from a game.
type Searchable[M comparable] interface {
	State[M]
	Transposable[M]
}
