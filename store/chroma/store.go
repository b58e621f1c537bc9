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


package chroma

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	chroma "github.com/amikos-tech/chroma-go/pkg/api/v2"
	"github.com/amikos-tech/chroma-go/pkg/embeddings"
	"github.com/poiesic/docingest/core"
)

// Metadata attribute names attached to every stored chunk.
const (
	MetaFileID     = "file_id"
	MetaChunkIndex = "chunk_index"
)

// Config holds the Chroma connection settings.
type Config struct {
	// BaseURL is the Chroma server address, e.g. "http://localhost:8000".
	BaseURL string

	// Collection is the collection name; created if missing.
	// Default: "documents"
	Collection string
}

// Store writes chunk records into a Chroma collection. Each record is
// upserted under its deterministic record id with the chunk text as the
// document body and file id / chunk index as scalar metadata, so the
// collection stays queryable by similarity later.
type Store struct {
	client chroma.Client
	col    chroma.Collection
	logger *slog.Logger
}

// Open connects to a Chroma server and binds the configured collection,
// creating it if it does not exist. The returned handle is safe for
// concurrent use.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Collection == "" {
		cfg.Collection = "documents"
	}

	client, err := chroma.NewHTTPClient(chroma.WithBaseURL(cfg.BaseURL))
	if err != nil {
		return nil, fmt.Errorf("chroma client: %w", err)
	}

	col, err := client.GetOrCreateCollection(ctx, cfg.Collection)
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("chroma collection %q: %w", cfg.Collection, err)
	}

	return &Store{
		client: client,
		col:    col,
		logger: slog.Default().With("component", "chroma-store"),
	}, nil
}

// WriteChunk upserts one record keyed by its RecordID.
// Idempotent: identical repeats are observational no-ops, differing repeats
// overwrite.
func (s *Store) WriteChunk(ctx context.Context, record *core.StoredRecord) error {
	if err := core.ValidateStoredRecord(record); err != nil {
		return fmt.Errorf("%w: %w", core.ErrStoreRejected, err)
	}
	if s == nil || s.col == nil {
		return core.ErrNotInitialized
	}

	err := s.col.Upsert(ctx,
		chroma.WithIDs(chroma.DocumentID(record.RecordID())),
		chroma.WithTexts(record.Text),
		chroma.WithEmbeddings(embeddings.NewEmbeddingFromFloat32(record.Embedding)),
		chroma.WithMetadatas(chroma.NewDocumentMetadata(
			chroma.NewStringAttribute(MetaFileID, record.FileID),
			chroma.NewIntAttribute(MetaChunkIndex, int64(record.ChunkIndex)),
		)),
	)
	if err != nil {
		return fmt.Errorf("%w: upsert %s: %w", core.ErrStoreUnavailable, record.RecordID(), err)
	}

	s.logger.Debug("stored chunk", "record_id", record.RecordID())
	return nil
}

// ListRecords returns all stored records for fileID ordered by chunk index.
// Embeddings are not fetched; callers that need vectors must recompute or
// query them separately.
func (s *Store) ListRecords(ctx context.Context, fileID string) ([]*core.StoredRecord, error) {
	if s == nil || s.col == nil {
		return nil, core.ErrNotInitialized
	}

	res, err := s.col.Get(ctx, chroma.WithWhereGet(chroma.EqString(MetaFileID, fileID)))
	if err != nil {
		return nil, fmt.Errorf("%w: get %s: %w", core.ErrStoreUnavailable, fileID, err)
	}

	docs := res.GetDocuments()
	metadatas := res.GetMetadatas()

	records := make([]*core.StoredRecord, 0, len(docs))
	for i := range docs {
		idx, ok := metadatas[i].GetInt(MetaChunkIndex)
		if !ok {
			continue
		}
		records = append(records, &core.StoredRecord{
			FileID:     fileID,
			ChunkIndex: int(idx),
			Text:       docs[i].ContentString(),
		})
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].ChunkIndex < records[j].ChunkIndex
	})
	return records, nil
}

// Close releases the Chroma client.
func (s *Store) Close() error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Close()
}
