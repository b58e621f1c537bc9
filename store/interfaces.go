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


package store

import (
	"context"

	"github.com/poiesic/docingest/core"
)

// ChunkWriter durably upserts (chunk, embedding) records.
// Implementations must be thread-safe: the durable store may be written
// concurrently by multiple documents' runs, scoped by record id.
type ChunkWriter interface {
	// WriteChunk upserts one record keyed by its deterministic RecordID.
	// The write is idempotent: repeating it with identical content leaves
	// the store observationally unchanged; repeating it with different
	// content overwrites (last-write-wins, no merge). A write either fully
	// succeeds or has no observable effect.
	//
	// Failures wrap core.ErrStoreUnavailable (transient, safe to retry),
	// core.ErrStoreRejected (malformed record, permanent), or
	// core.ErrNotInitialized (handle used before initialization).
	WriteChunk(ctx context.Context, record *core.StoredRecord) error

	// Close releases the underlying store handle.
	Close() error
}

// RecordLister reads back the stored chunks of one file, in chunk-index
// order. Used by batch reprocessing such as re-embedding.
type RecordLister interface {
	// ListRecords returns all stored records for fileID ordered by chunk
	// index. Embeddings may be omitted by backends that cannot return them.
	ListRecords(ctx context.Context, fileID string) ([]*core.StoredRecord, error)
}
