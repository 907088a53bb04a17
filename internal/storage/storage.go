// Package storage persists settings and saved games in a Badger database.
package storage

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/lgbarn/chessrules-go/internal/errors"
)

// Storage keys
const (
	keySettings = "settings"
	gamePrefix  = "game/"
)

// RGBA is a square colour.
type RGBA struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// Settings stores user preferences.
type Settings struct {
	LightSquare RGBA `json:"light_square"`
	DarkSquare  RGBA `json:"dark_square"`
	EngineElo   int  `json:"engine_elo"` // -1 = full strength
	FlipBoard   bool `json:"flip_board"`
}

// DefaultSettings returns the settings used when none are stored.
func DefaultSettings() *Settings {
	return &Settings{
		LightSquare: RGBA{R: 239, G: 216, B: 183, A: 255},
		DarkSquare:  RGBA{R: 180, G: 135, B: 102, A: 255},
		EngineElo:   -1,
	}
}

// SavedGame is a snapshot of a session that can be resumed later.
type SavedGame struct {
	Name     string    `json:"name"`
	StartFEN string    `json:"start_fen"`
	Moves    []string  `json:"moves"`
	FEN      string    `json:"fen"`
	History  []string  `json:"history"`
	Mode     string    `json:"mode"`
	Outcome  string    `json:"outcome"` // OutcomeKind name
	Winner   string    `json:"winner,omitempty"`
	SavedAt  time.Time `json:"saved_at"`

	// Remaining clock time per side in timed modes.
	WhiteTime time.Duration `json:"white_time,omitempty"`
	BlackTime time.Duration `json:"black_time,omitempty"`
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db *badger.DB
}

// Open opens the database in dir, or in DatabaseDir() when dir is empty.
func Open(dir string) (*Storage, error) {
	if dir == "" {
		var err error
		if dir, err = DatabaseDir(); err != nil {
			return nil, err
		}
	}
	return open(badger.DefaultOptions(dir))
}

// OpenInMemory opens a database that is never written to disk.
func OpenInMemory() (*Storage, error) {
	return open(badger.DefaultOptions("").WithInMemory(true))
}

func open(opts badger.Options) (*Storage, error) {
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
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

// SaveSettings saves user settings.
func (s *Storage) SaveSettings(settings *Settings) error {
	return s.put(keySettings, settings)
}

// LoadSettings loads user settings, returns defaults if not found.
func (s *Storage) LoadSettings() (*Settings, error) {
	settings := DefaultSettings()
	err := s.get(keySettings, settings)
	if errors.Is(err, errors.ErrNotFound) {
		return settings, nil
	}
	return settings, err
}

// SaveGame stores a game under its name, replacing any game of that name.
func (s *Storage) SaveGame(game *SavedGame) error {
	if game.Name == "" {
		return fmt.Errorf("saved game needs a name: %w", errors.ErrInvalidConfig)
	}
	if game.SavedAt.IsZero() {
		game.SavedAt = time.Now()
	}
	return s.put(gamePrefix+game.Name, game)
}

// LoadGame loads the game saved under name.
func (s *Storage) LoadGame(name string) (*SavedGame, error) {
	game := &SavedGame{}
	if err := s.get(gamePrefix+name, game); err != nil {
		return nil, errors.Wrapf(err, "game %q", name)
	}
	return game, nil
}

// ListGames returns the names of all saved games in sorted order.
func (s *Storage) ListGames() ([]string, error) {
	var names []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(gamePrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			names = append(names, strings.TrimPrefix(string(it.Item().Key()), gamePrefix))
		}
		return nil
	})
	return names, err
}

// DeleteGame removes the game saved under name.
func (s *Storage) DeleteGame(name string) error {
	key := []byte(gamePrefix + name)
	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); err == badger.ErrKeyNotFound {
			return errors.Wrapf(errors.ErrNotFound, "game %q", name)
		} else if err != nil {
			return err
		}
		return txn.Delete(key)
	})
}

func (s *Storage) put(key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// get decodes the value under key into v, or returns errors.ErrNotFound.
func (s *Storage) get(key string, v interface{}) error {
	return s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err == badger.ErrKeyNotFound {
			return errors.ErrNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, v)
		})
	})
}
