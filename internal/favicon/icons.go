package favicon

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// IconStore keeps fetched favicon images on disk, keyed by host.
// Icons are small opaque blobs so a key-value store fits better
// than a table in the relational database.
type IconStore struct {
	db *badger.DB
}

// OpenIconStore opens (or creates) the icon store at path.
func OpenIconStore(path string) (*IconStore, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open icon store: %w", err)
	}
	return &IconStore{db: db}, nil
}

func iconKey(host string) []byte {
	return []byte("icon:" + host)
}

// Put stores the icon bytes for a host, replacing any previous icon.
func (s *IconStore) Put(host string, data []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(iconKey(host), data)
	})
}

// Get returns the stored icon for a host, or (nil, nil) when absent.
func (s *IconStore) Get(host string) ([]byte, error) {
	var result []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(iconKey(host))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			result = make([]byte, len(val))
			copy(result, val)
			return nil
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get icon for %s: %w", host, err)
	}
	return result, nil
}

// Delete removes the stored icon for a host.
func (s *IconStore) Delete(host string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(iconKey(host))
	})
}

// Close closes the underlying database.
func (s *IconStore) Close() error {
	return s.db.Close()
}
