package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/google/uuid"

	"github.com/damon-houk/fxrate-lookup/internal/domain/entity"
	"github.com/damon-houk/fxrate-lookup/internal/domain/repository"
)

const exportKeyPrefix = "export:"

// BadgerExportRepository implements the export repository interface using BadgerDB.
// Entries expire through badger TTLs.
type BadgerExportRepository struct {
	db  *badger.DB
	ttl time.Duration
}

// NewBadgerExportRepository creates a new BadgerDB export repository
func NewBadgerExportRepository(db *badger.DB, ttl time.Duration) *BadgerExportRepository {
	return &BadgerExportRepository{db: db, ttl: ttl}
}

// Save stores an export and returns its token
func (r *BadgerExportRepository) Save(_ context.Context, export *entity.Export) (string, error) {
	if export.Token == "" {
		export.Token = uuid.New().String()
	}

	// Serialize export to JSON
	data, err := json.Marshal(export)
	if err != nil {
		return "", fmt.Errorf("failed to marshal export: %w", err)
	}

	err = r.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(exportKeyPrefix+export.Token), data)
		if r.ttl > 0 {
			entry = entry.WithTTL(r.ttl)
		}
		return txn.SetEntry(entry)
	})

	if err != nil {
		return "", fmt.Errorf("failed to store export: %w", err)
	}

	return export.Token, nil
}

// Take reads and deletes an export in a single transaction
func (r *BadgerExportRepository) Take(_ context.Context, token string) (*entity.Export, error) {
	var export entity.Export
	key := []byte(exportKeyPrefix + token)

	err := r.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}

		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &export)
		}); err != nil {
			return err
		}

		return txn.Delete(key)
	})

	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, repository.ErrExportNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to take export: %w", err)
	}

	return &export, nil
}
