package chroma

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/docingest/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteChunk_RejectsInvalidRecord(t *testing.T) {
	s := &Store{}

	// Validation runs before any network access.
	err := s.WriteChunk(context.Background(), &core.StoredRecord{
		FileID:     "",
		ChunkIndex: 0,
		Embedding:  []float32{0.1},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrStoreRejected))
}

func TestWriteChunk_NotInitialized(t *testing.T) {
	s := &Store{}

	record := &core.StoredRecord{
		FileID:     "f1",
		ChunkIndex: 0,
		Text:       "text",
		Embedding:  []float32{0.1, 0.2},
	}

	err := s.WriteChunk(context.Background(), record)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrNotInitialized))
}

func TestListRecords_NotInitialized(t *testing.T) {
	s := &Store{}

	_, err := s.ListRecords(context.Background(), "f1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrNotInitialized))
}

func TestClose_NilClient(t *testing.T) {
	s := &Store{}
	assert.NoError(t, s.Close())
}
