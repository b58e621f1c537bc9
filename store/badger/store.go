// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package badger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/docingest/core"
	"github.com/poiesic/docingest/store"
)

// Store writes chunk records into an embedded BadgerDB. A single-key upsert
// in badger is atomic, which gives the writer its all-or-nothing contract
// for free; last-write-wins comes from plain key replacement.
type Store struct {
	backend *Backend
	logger  *slog.Logger
}

// NewStore creates a chunk store on top of an open backend.
func NewStore(backend *Backend) (*Store, error) {
	if backend == nil {
		return nil, core.ErrNotInitialized
	}
	return &Store{
		backend: backend,
		logger:  slog.Default().With("component", "badger-store"),
	}, nil
}

// WriteChunk upserts one record keyed by its RecordID.
func (s *Store) WriteChunk(ctx context.Context, record *core.StoredRecord) error {
	if err := core.ValidateStoredRecord(record); err != nil {
		return fmt.Errorf("%w: %w", core.ErrStoreRejected, err)
	}
	if s == nil || s.backend == nil {
		return core.ErrNotInitialized
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeChunkKey(record.FileID, record.ChunkIndex), store.MarshalStoredRecord(record)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return fmt.Errorf("%w: upsert %s: %w", core.ErrStoreUnavailable, record.RecordID(), err)
	}

	s.logger.Debug("stored chunk", "record_id", record.RecordID())
	return nil
}

// ReadRecord retrieves a single record by its identity key components.
// Returns store.ErrNotFound if no record exists.
func (s *Store) ReadRecord(ctx context.Context, fileID string, chunkIndex int) (*core.StoredRecord, error) {
	if s == nil || s.backend == nil {
		return nil, core.ErrNotInitialized
	}

	var record *core.StoredRecord
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeChunkKey(fileID, chunkIndex))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return store.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			record, err = store.UnmarshalStoredRecord(val)
			return err
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return record, nil
}

// ListRecords returns all stored records for fileID ordered by chunk index.
func (s *Store) ListRecords(ctx context.Context, fileID string) ([]*core.StoredRecord, error) {
	if s == nil || s.backend == nil {
		return nil, core.ErrNotInitialized
	}

	var records []*core.StoredRecord
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeFilePrefix(fileID)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			err := iter.Item().Value(func(val []byte) error {
				record, err := store.UnmarshalStoredRecord(val)
				if err != nil {
					return err
				}
				records = append(records, record)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, fmt.Errorf("%w: list %s: %w", core.ErrStoreUnavailable, fileID, err)
	}

	// Keys sort lexicographically, so index 10 would precede index 2.
	sort.Slice(records, func(i, j int) bool {
		return records[i].ChunkIndex < records[j].ChunkIndex
	})
	return records, nil
}

// Close is a no-op: the backend owns the database handle and is closed by
// whoever opened it.
func (s *Store) Close() error {
	return nil
}
