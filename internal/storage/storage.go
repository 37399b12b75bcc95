// Package storage keeps match statistics of arena runs in BadgerDB.
package storage

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/pkg/errors"
)

// Storage keys
const (
	keyStatsPrefix = "stats/"
)

// Outcome is how a game ended, seen from the seats.
type Outcome int

const (
	FirstWon Outcome = iota
	SecondWon
	Drawn
)

func (o Outcome) String() string {
	switch o {
	case FirstWon:
		return "first"
	case SecondWon:
		return "second"
	case Drawn:
		return "draw"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// MatchKey identifies a series of games: one board configuration and the
// names of the players, in no particular seat order.
type MatchKey struct {
	Rows, Cols, K int
	PlayerA       string
	PlayerB       string
}

func (k MatchKey) String() string {
	return fmt.Sprintf("%dx%dk%d/%s-vs-%s", k.Rows, k.Cols, k.K, k.PlayerA, k.PlayerB)
}

func (k MatchKey) dbKey() []byte {
	return []byte(keyStatsPrefix + k.String())
}

// MatchStats accumulates the results of one series.
type MatchStats struct {
	GamesPlayed   int            `json:"games_played"`
	FirstWins     int            `json:"first_wins"`
	SecondWins    int            `json:"second_wins"`
	Draws         int            `json:"draws"`
	WinsByPlayer  map[string]int `json:"wins_by_player"`
	TotalPlies    int            `json:"total_plies"`
	LongestGame   int            `json:"longest_game"`
	TotalPlayTime time.Duration  `json:"total_play_time"`
	LastPlayed    time.Time      `json:"last_played"`
}

// NewMatchStats returns empty statistics.
func NewMatchStats() *MatchStats {
	return &MatchStats{WinsByPlayer: make(map[string]int)}
}

// GameResult is one finished game.
type GameResult struct {
	First    string // name of the player who moved first
	Second   string
	Outcome  Outcome
	Plies    int
	Duration time.Duration
}

// Winner returns the name of the winner, or "" for a draw.
func (r GameResult) Winner() string {
	switch r.Outcome {
	case FirstWon:
		return r.First
	case SecondWon:
		return r.Second
	}
	return ""
}

// Storage wraps BadgerDB for persistent storage.
type Storage struct {
	db *badger.DB
	mu sync.Mutex // serializes read-modify-write of stats
}

// Open opens the database in dir, or in the default data directory when dir
// is empty.
func Open(dir string) (*Storage, error) {
	if dir == "" {
		var err error
		if dir, err = DatabaseDir(); err != nil {
			return nil, err
		}
	}

	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrapf(err, "opening database in %s", dir)
	}
	return &Storage{db: db}, nil
}

// Close closes the database.
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveStats overwrites the statistics of a series.
func (s *Storage) SaveStats(key MatchKey, stats *MatchStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key.dbKey(), data)
	})
}

// LoadStats loads the statistics of a series, empty if none were saved.
func (s *Storage) LoadStats(key MatchKey) (*MatchStats, error) {
	stats := NewMatchStats()
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key.dbKey())
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil // Use empty stats
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, stats)
		})
	})
	return stats, err
}

// RecordGame adds a finished game to its series. Safe for concurrent use.
func (s *Storage) RecordGame(key MatchKey, result GameResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats, err := s.LoadStats(key)
	if err != nil {
		return err
	}

	stats.GamesPlayed++
	stats.TotalPlies += result.Plies
	stats.LongestGame = max(stats.LongestGame, result.Plies)
	stats.TotalPlayTime += result.Duration
	stats.LastPlayed = time.Now()

	switch result.Outcome {
	case FirstWon:
		stats.FirstWins++
	case SecondWon:
		stats.SecondWins++
	default:
		stats.Draws++
	}
	if w := result.Winner(); w != "" {
		stats.WinsByPlayer[w]++
	}

	return s.SaveStats(key, stats)
}

// AllStats returns every recorded series keyed by MatchKey.String().
func (s *Storage) AllStats() (map[string]*MatchStats, error) {
	all := make(map[string]*MatchStats)
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(keyStatsPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			stats := NewMatchStats()
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, stats)
			}); err != nil {
				return err
			}
			all[strings.TrimPrefix(string(item.Key()), keyStatsPrefix)] = stats
		}
		return nil
	})
	return all, err
}

// FirstMoverScore returns the first mover's score in percent, counting a
// draw as half a win.
func (s *MatchStats) FirstMoverScore() float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	return (float64(s.FirstWins) + float64(s.Draws)/2) / float64(s.GamesPlayed) * 100
}

// AveragePlies returns the mean game length.
func (s *MatchStats) AveragePlies() float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	return float64(s.TotalPlies) / float64(s.GamesPlayed)
}
