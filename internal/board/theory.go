package board

import "github.com/hailam/mnkplay/internal/game"

// Outcome is the game-theoretic value of an empty m,n,k board for P1.
type Outcome uint8

const (
	Unknown Outcome = iota
	FirstPlayerWin
	Drawn
)

func (o Outcome) String() string {
	switch o {
	case FirstPlayerWin:
		return "win"
	case Drawn:
		return "draw"
	}
	return "unknown"
}

// TheoreticalValue returns the known value of the empty m×n board with win
// length k under perfect play (Uiterwijk and van den Herik).
func TheoreticalValue(m, n, k int) Outcome {
	switch {
	case k == 1:
		return FirstPlayerWin
	case k == 2:
		if m*n > 2 {
			return FirstPlayerWin
		}
		return Drawn
	case k == 3:
		if (m >= 4 && n >= 3) || (m >= 3 && n >= 4) {
			return FirstPlayerWin
		}
		return Drawn
	case k == 4:
		switch {
		case (m <= 8 && n == 4) || (m == 4 && n <= 8) || (m == 5 && n == 5):
			return Drawn
		case (m >= 6 && n >= 5) || (m >= 5 && n >= 6) || (m == 4 && n >= 30) || (m >= 30 && n == 4):
			return FirstPlayerWin
		}
	case k == 5:
		switch {
		case m <= 6 && n <= 6:
			return Drawn
		case m == 19 && n == 19:
			return FirstPlayerWin
		}
	case k >= 8:
		return Drawn
	}
	return Unknown
}

// searchWindow returns the initial [alpha, beta] per player for the empty
// board: P1 never needs to prove more than the theoretical value and P2
// never less than the complementary bound.
func searchWindow(m, n, k int) (alpha, beta [2]int) {
	betaP1 := game.Win
	if TheoreticalValue(m, n, k) == Drawn {
		betaP1 = game.Draw
	}
	alphaP2 := game.Draw
	if betaP1 == game.Win {
		alphaP2 = game.Loss
	}
	alpha = [2]int{game.Loss, alphaP2}
	beta = [2]int{betaP1, game.Win}
	return alpha, beta
}
