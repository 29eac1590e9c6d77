// Package colorstore persists label display colors in a BadgerDB database
// so graphs keep the same colors across viewer restarts.
//
// The store implements schema.ColorStore. Each label is one key under a
// single-byte prefix, value is the #rrggbb color string.
package colorstore

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// Key prefix for color entries. Single byte for efficiency, leaving room
// for other record kinds in the same database.
const prefixColor = byte(0x01)

// Store is a Badger-backed color store.
//
// Example:
//
//	store, err := colorstore.Open("~/.cypherview/colors")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer store.Close()
//
//	cache := schema.NewCache(enum, schema.WithColorStore(store))
type Store struct {
	db *badger.DB
}

// Open opens (creating if needed) the color database at dir.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // badger's own logging is noise for a viewer tool
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening color store: %w", err)
	}
	return &Store{db: db}, nil
}

// Load returns every stored label→color assignment.
func (s *Store) Load() (map[string]string, error) {
	colors := make(map[string]string)
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte{prefixColor}
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			label := string(item.Key()[1:])
			err := item.Value(func(val []byte) error {
				colors[label] = string(val)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loading colors: %w", err)
	}
	return colors, nil
}

// Save writes the given assignments. Existing entries for other labels are
// left in place, matching the cache's retain-forever policy.
func (s *Store) Save(colors map[string]string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		for label, color := range colors {
			if err := txn.Set(colorKey(label), []byte(color)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("saving colors: %w", err)
	}
	return nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	if s.db == nil {
		return errors.New("color store already closed")
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func colorKey(label string) []byte {
	key := make([]byte, 0, len(label)+1)
	key = append(key, prefixColor)
	return append(key, label...)
}
