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


package core

import "errors"

// Pipeline error taxonomy. Every failure that crosses a stage boundary wraps
// exactly one of these sentinels so callers can classify it with errors.Is.
var (
	// ErrFetchFailed indicates the document bytes could not be retrieved.
	// Transient: the run may be retried by the execution engine.
	ErrFetchFailed = errors.New("fetch failed")

	// ErrUnsupportedFormat indicates the source locator carries an
	// unrecognized filename extension. Permanent.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrCorruptDocument indicates a format-level decode failure. Permanent.
	ErrCorruptDocument = errors.New("corrupt document")

	// ErrEmbeddingFailed indicates the embedding provider failed after
	// internal retry exhaustion. Permanent once surfaced.
	ErrEmbeddingFailed = errors.New("embedding failed")

	// ErrStoreUnavailable indicates a transient durable-store failure.
	// Safe to retry at the orchestration layer.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrStoreRejected indicates the durable store refused the record,
	// e.g. because it is malformed. Permanent.
	ErrStoreRejected = errors.New("store rejected record")

	// ErrNotInitialized indicates a store handle was used before its
	// initialization step completed.
	ErrNotInitialized = errors.New("store not initialized")
)

// Record validation errors, wrapped under ErrStoreRejected by writers.
var (
	// ErrInvalidRecord indicates a StoredRecord failed validation.
	ErrInvalidRecord = errors.New("invalid stored record")

	// ErrEmptyFileID indicates the FileID field is empty.
	ErrEmptyFileID = errors.New("file id cannot be empty")

	// ErrNegativeChunkIndex indicates a chunk index below zero.
	ErrNegativeChunkIndex = errors.New("chunk index cannot be negative")

	// ErrEmptyEmbedding indicates the Embedding field carries no values.
	ErrEmptyEmbedding = errors.New("embedding cannot be empty")
)

// IsPermanent reports whether err is a terminal condition that retrying
// cannot fix. Everything else in the taxonomy is considered transient.
func IsPermanent(err error) bool {
	return errors.Is(err, ErrUnsupportedFormat) ||
		errors.Is(err, ErrCorruptDocument) ||
		errors.Is(err, ErrEmbeddingFailed) ||
		errors.Is(err, ErrStoreRejected)
}
