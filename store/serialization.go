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
	"fmt"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
	"github.com/poiesic/docingest/core"
)

// embeddingSer serializes embedding vectors as length-prefixed raw float32s.
var embeddingSer = ord.NewSliceSer[float32](raw.Float32)

// MarshalStoredRecord serializes a StoredRecord to bytes.
func MarshalStoredRecord(record *core.StoredRecord) []byte {
	size := ord.String.Size(record.FileID) +
		varint.Int.Size(record.ChunkIndex) +
		ord.String.Size(record.Text) +
		embeddingSer.Size(record.Embedding)

	buf := make([]byte, size)
	n := ord.String.Marshal(record.FileID, buf)
	n += varint.Int.Marshal(record.ChunkIndex, buf[n:])
	n += ord.String.Marshal(record.Text, buf[n:])
	embeddingSer.Marshal(record.Embedding, buf[n:])
	return buf
}

// UnmarshalStoredRecord deserializes a StoredRecord from bytes.
func UnmarshalStoredRecord(data []byte) (*core.StoredRecord, error) {
	var (
		record core.StoredRecord
		n      int
		err    error
	)

	record.FileID, n, err = ord.String.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: file id: %w", ErrSerializationFailed, err)
	}
	data = data[n:]

	record.ChunkIndex, n, err = varint.Int.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: chunk index: %w", ErrSerializationFailed, err)
	}
	data = data[n:]

	record.Text, n, err = ord.String.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: text: %w", ErrSerializationFailed, err)
	}
	data = data[n:]

	record.Embedding, _, err = embeddingSer.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: embedding: %w", ErrSerializationFailed, err)
	}

	return &record, nil
}
