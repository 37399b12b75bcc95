// Package game defines the contract between a two-player, zero-sum game of
// perfect information and the search engine that plays it.
package game

import "fmt"

// Player identifies one of the two agents. P1 always moves first.
type Player uint8

const (
	P1 Player = iota
	P2
)

// Other returns the opponent of p.
func (p Player) Other() Player {
	return p ^ 1
}

// Index returns 0 for P1 and 1 for P2, for array lookups.
func (p Player) Index() int {
	return int(p)
}

// String returns "P1" or "P2".
func (p Player) String() string {
	switch p {
	case P1:
		return "P1"
	case P2:
		return "P2"
	}
	return fmt.Sprintf("Player(%d)", uint8(p))
}

// ParsePlayer accepts "1", "p1", "first" and the P2 equivalents.
func ParsePlayer(s string) (Player, error) {
	switch s {
	case "1", "p1", "P1", "first":
		return P1, nil
	case "2", "p2", "P2", "second":
		return P2, nil
	}
	return P1, fmt.Errorf("invalid player: %q", s)
}
