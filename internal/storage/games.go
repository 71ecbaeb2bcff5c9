package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/hailam/chesscore/internal/board"
)

const (
	gamePrefix     = "game/"
	keyCurrentGame = "current_game"
)

// ErrGameNotFound is returned when no game is stored under the requested id.
var ErrGameNotFound = errors.New("game not found")

// GameRecord is a saved game: the position it started from and the moves
// played, in coordinate notation. Loading replays the moves through the
// rules engine so a tampered record cannot produce an illegal position.
type GameRecord struct {
	ID        string      `json:"id"`
	Start     board.Setup `json:"start"`
	Moves     []string    `json:"moves"`
	Outcome   string      `json:"outcome"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// NewGameRecord captures the current state of g under id.
func NewGameRecord(id string, g *board.GameState) *GameRecord {
	log := g.MoveLog()
	moves := make([]string, len(log))
	for i, m := range log {
		moves[i] = board.AlgebraicNotation(m)
	}
	now := time.Now()
	return &GameRecord{
		ID:        id,
		Start:     g.Setup(),
		Moves:     moves,
		Outcome:   g.Status().String(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Replay rebuilds the game by applying every recorded move in order.
func (r *GameRecord) Replay() (*board.GameState, error) {
	g, err := board.NewGameFromSetup(r.Start)
	if err != nil {
		return nil, fmt.Errorf("game %s: %w", r.ID, err)
	}
	for i, s := range r.Moves {
		m, err := board.ParseMove(s)
		if err != nil {
			return nil, fmt.Errorf("game %s move %d: %w", r.ID, i+1, err)
		}
		if err := g.ApplyMove(m); err != nil {
			return nil, fmt.Errorf("game %s move %d: %w", r.ID, i+1, err)
		}
	}
	return g, nil
}

// SaveGame stores rec under its id, keeping the original creation time.
func (s *Storage) SaveGame(rec *GameRecord) error {
	if rec.ID == "" {
		return fmt.Errorf("save game: empty id")
	}
	var prev GameRecord
	found, err := s.getJSON(gamePrefix+rec.ID, &prev)
	if err != nil {
		return err
	}
	if found && !prev.CreatedAt.IsZero() {
		rec.CreatedAt = prev.CreatedAt
	}
	rec.UpdatedAt = time.Now()
	return s.putJSON(gamePrefix+rec.ID, rec)
}

// LoadGame returns the game stored under id.
func (s *Storage) LoadGame(id string) (*GameRecord, error) {
	var rec GameRecord
	found, err := s.getJSON(gamePrefix+id, &rec)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}
	return &rec, nil
}

// DeleteGame removes the game stored under id. Deleting a missing game is not an error.
func (s *Storage) DeleteGame(id string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(gamePrefix + id))
	})
}

// ListGames returns every saved game, most recently updated first.
func (s *Storage) ListGames() ([]*GameRecord, error) {
	var games []*GameRecord
	prefix := []byte(gamePrefix)

	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			rec := &GameRecord{}
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, rec)
			})
			if err != nil {
				return err
			}
			games = append(games, rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(games, func(i, j int) bool {
		return games[i].UpdatedAt.After(games[j].UpdatedAt)
	})
	return games, nil
}

// SetCurrentGame remembers which game to resume on the next launch.
func (s *Storage) SetCurrentGame(id string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		if id == "" {
			return txn.Delete([]byte(keyCurrentGame))
		}
		return txn.Set([]byte(keyCurrentGame), []byte(id))
	})
}

// CurrentGame returns the id set by SetCurrentGame, or "" if none.
func (s *Storage) CurrentGame() (string, error) {
	var id string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyCurrentGame))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		val, err := item.ValueCopy(nil)
		id = string(val)
		return err
	})
	return id, err
}
