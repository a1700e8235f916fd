// path: internal/store/store.go
// Package store persists game records in BadgerDB. A record is the full
// provenance of a game: rule set, seed and move list, plus the current
// state as a cache so reads need no replay.
package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"varchess/internal/game"
)

// ErrNotFound reports a game id with no stored record.
var ErrNotFound = errors.New("game not found")

const gameKeyPrefix = "game/"

// GameRecord is the stored form of one game.
type GameRecord struct {
	ID    string       `json:"id"`
	Rules game.RuleSet `json:"rules"`
	Seed  string       `json:"seed"`
	Moves []game.Move  `json:"moves"`
	State game.State   `json:"state"`
}

// Store wraps a BadgerDB handle.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) the database under dir.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func gameKey(id string) []byte { return []byte(gameKeyPrefix + id) }

// SaveGame writes the record under its id, replacing any previous version.
func (s *Store) SaveGame(rec *GameRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal game %s: %w", rec.ID, err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(gameKey(rec.ID), data)
	})
}

// LoadGame reads the record for id, or ErrNotFound.
func (s *Store) LoadGame(id string) (*GameRecord, error) {
	var rec GameRecord
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(gameKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// DeleteGame removes the record for id. Deleting a missing id is not an error.
func (s *Store) DeleteGame(id string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(gameKey(id))
	})
}

// ListGames returns the stored game ids.
func (s *Store) ListGames() ([]string, error) {
	var ids []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(gameKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			key := string(it.Item().Key())
			ids = append(ids, key[len(gameKeyPrefix):])
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}
