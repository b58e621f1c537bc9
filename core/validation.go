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

import "fmt"

// ValidateStoredRecord validates a StoredRecord according to domain rules.
//
// Validation rules:
//   - FileID must not be empty
//   - ChunkIndex must not be negative
//   - Embedding must carry at least one value
//
// NOT validated:
//   - Text (an empty chunk text is unusual but storable)
//   - Embedding dimensionality (fixed by the model, opaque to the core)
func ValidateStoredRecord(record *StoredRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidRecord)
	}

	if record.FileID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrEmptyFileID)
	}

	if record.ChunkIndex < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrNegativeChunkIndex)
	}

	if len(record.Embedding) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrEmptyEmbedding)
	}

	return nil
}
