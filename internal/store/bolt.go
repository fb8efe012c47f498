package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/boltdb/bolt"

	"github.com/darts-ladder/internal/domain"
)

var (
	boltBucket = []byte("ladder")
	boltKey    = []byte("state")
)

// BoltStore keeps the aggregate in a local bolt database file, one bucket,
// one key. This is the default backend.
type BoltStore struct {
	db     *bolt.DB
	logger *slog.Logger
}

// NewBoltStore opens (creating if needed) the database file at path.
func NewBoltStore(path string, logger *slog.Logger) (*BoltStore, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	return &BoltStore{db: db, logger: logger}, nil
}

// Close closes the database file.
func (s *BoltStore) Close() error {
	return s.db.Close()
}

// Load reads the state blob. A missing bucket or key yields an empty state.
func (s *BoltStore) Load(ctx context.Context) (*domain.State, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(boltBucket)
		if b == nil {
			return nil
		}
		if v := b.Get(boltKey); v != nil {
			data = append(data, v...)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reading state: %w", err)
	}

	return decodeState(data, s.logger), nil
}

// Save overwrites the state blob.
func (s *BoltStore) Save(ctx context.Context, state *domain.State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshaling state: %w", err)
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(boltBucket)
		if err != nil {
			return fmt.Errorf("creating bucket: %w", err)
		}
		return b.Put(boltKey, data)
	})
	if err != nil {
		return fmt.Errorf("writing state: %w", err)
	}
	return nil
}
