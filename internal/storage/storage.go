package storage

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/hailam/chesscore/internal/board"
)

// Storage keys
const (
	keyPreferences = "preferences"
	keyStats       = "stats"
	keyFirstLaunch = "first_launch"
)

// UserPreferences stores user settings
type UserPreferences struct {
	FlipBoard      bool      `json:"flip_board"`
	ShowLegalMoves bool      `json:"show_legal_moves"`
	AutoResume     bool      `json:"auto_resume"`
	SoundEnabled   bool      `json:"sound_enabled"`
	Volume         float64   `json:"volume"`
	PieceDir       string    `json:"piece_dir,omitempty"`
	LastPlayed     time.Time `json:"last_played"`
}

// DefaultPreferences returns default user preferences
func DefaultPreferences() *UserPreferences {
	return &UserPreferences{
		ShowLegalMoves: true,
		AutoResume:     true,
		SoundEnabled:   true,
		Volume:         0.5,
		LastPlayed:     time.Now(),
	}
}

// GameStats stores game statistics
type GameStats struct {
	GamesPlayed   int            `json:"games_played"`
	WhiteWins     int            `json:"white_wins"`
	BlackWins     int            `json:"black_wins"`
	Draws         int            `json:"draws"`
	DrawsByReason map[string]int `json:"draws_by_reason"`
	TotalPlayTime time.Duration  `json:"total_play_time"`
	LongestGame   int            `json:"longest_game_plies"`
}

// NewGameStats returns empty game statistics
func NewGameStats() *GameStats {
	return &GameStats{
		DrawsByReason: make(map[string]int),
	}
}

// GameResult represents the result of a completed game
type GameResult struct {
	Outcome  board.Outcome
	Winner   board.Color
	Plies    int
	Duration time.Duration
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db *badger.DB
}

// NewStorage opens the database in the platform data directory.
func NewStorage() (*Storage, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dbDir)
}

// Open opens (or creates) a database in dir.
func Open(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging
	return open(opts)
}

// OpenInMemory opens a database that lives only as long as the process.
func OpenInMemory() (*Storage, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	return open(opts)
}

func open(opts badger.Options) (*Storage, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// IsFirstLaunch returns true if this is the first launch
func (s *Storage) IsFirstLaunch() (bool, error) {
	firstLaunch := true

	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(keyFirstLaunch))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		firstLaunch = false
		return nil
	})

	return firstLaunch, err
}

// MarkFirstLaunchComplete marks that first launch setup is complete
func (s *Storage) MarkFirstLaunchComplete() error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyFirstLaunch), []byte("done"))
	})
}

// SavePreferences saves user preferences
func (s *Storage) SavePreferences(prefs *UserPreferences) error {
	prefs.LastPlayed = time.Now()
	return s.putJSON(keyPreferences, prefs)
}

// LoadPreferences loads user preferences, returns defaults if not found
func (s *Storage) LoadPreferences() (*UserPreferences, error) {
	prefs := DefaultPreferences()
	if _, err := s.getJSON(keyPreferences, prefs); err != nil {
		return prefs, err
	}
	return prefs, nil
}

// SaveStats saves game statistics
func (s *Storage) SaveStats(stats *GameStats) error {
	return s.putJSON(keyStats, stats)
}

// LoadStats loads game statistics, returns empty stats if not found
func (s *Storage) LoadStats() (*GameStats, error) {
	stats := NewGameStats()
	if _, err := s.getJSON(keyStats, stats); err != nil {
		return stats, err
	}
	if stats.DrawsByReason == nil {
		stats.DrawsByReason = make(map[string]int)
	}
	return stats, nil
}

// RecordGame records a completed game and updates statistics
func (s *Storage) RecordGame(result GameResult) error {
	stats, err := s.LoadStats()
	if err != nil {
		return err
	}

	stats.GamesPlayed++
	stats.TotalPlayTime += result.Duration
	if result.Plies > stats.LongestGame {
		stats.LongestGame = result.Plies
	}

	switch {
	case result.Outcome.IsDraw():
		stats.Draws++
		stats.DrawsByReason[result.Outcome.String()]++
	case result.Winner == board.White:
		stats.WhiteWins++
	case result.Winner == board.Black:
		stats.BlackWins++
	}

	return s.SaveStats(stats)
}

// DrawRate returns the share of finished games that were drawn (0-100).
func (s *GameStats) DrawRate() float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	return float64(s.Draws) / float64(s.GamesPlayed) * 100
}

func (s *Storage) putJSON(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// getJSON decodes the value at key into v. found is false, with a nil
// error, when the key does not exist.
func (s *Storage) getJSON(key string, v any) (found bool, err error) {
	err = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, v)
		})
	})
	return found, err
}
