package store

import (
	"errors"
	"testing"

	"github.com/poiesic/docingest/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoredRecordRoundtrip(t *testing.T) {
	record := &core.StoredRecord{
		FileID:     "file123",
		ChunkIndex: 7,
		Text:       "the quick brown fox",
		Embedding:  []float32{0.25, -1.5, 3.75},
	}

	got, err := UnmarshalStoredRecord(MarshalStoredRecord(record))
	require.NoError(t, err)
	assert.Equal(t, record, got)
}

func TestStoredRecordRoundtrip_EmptyEmbedding(t *testing.T) {
	record := &core.StoredRecord{
		FileID:     "f",
		ChunkIndex: 0,
		Text:       "",
	}

	got, err := UnmarshalStoredRecord(MarshalStoredRecord(record))
	require.NoError(t, err)
	assert.Equal(t, record.FileID, got.FileID)
	assert.Equal(t, record.ChunkIndex, got.ChunkIndex)
	assert.Empty(t, got.Embedding)
}

func TestUnmarshalStoredRecord_Truncated(t *testing.T) {
	record := &core.StoredRecord{
		FileID:     "file123",
		ChunkIndex: 1,
		Text:       "some text",
		Embedding:  []float32{1, 2, 3},
	}
	data := MarshalStoredRecord(record)

	_, err := UnmarshalStoredRecord(data[:len(data)/2])
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSerializationFailed))
}

func TestMarshalStoredRecord_Deterministic(t *testing.T) {
	record := &core.StoredRecord{
		FileID:     "file123",
		ChunkIndex: 2,
		Text:       "text",
		Embedding:  []float32{0.5},
	}

	assert.Equal(t, MarshalStoredRecord(record), MarshalStoredRecord(record))
}
