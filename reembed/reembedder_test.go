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


package reembed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/docingest/ai/mock"
	"github.com/poiesic/docingest/core"
	storebadger "github.com/poiesic/docingest/store/badger"
)

func setupStoreWithChunks(t *testing.T, fileID string, count int) *storebadger.Store {
	t.Helper()

	backend, err := storebadger.OpenBackend(t.TempDir(), false)
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })

	s, err := storebadger.NewStore(backend)
	require.NoError(t, err)

	for i := 0; i < count; i++ {
		err := s.WriteChunk(context.Background(), &core.StoredRecord{
			FileID:     fileID,
			ChunkIndex: i,
			Text:       fmt.Sprintf("chunk %d text", i),
			Embedding:  []float32{0.1, 0.2, 0.3},
		})
		require.NoError(t, err)
	}
	return s
}

func TestReembedderReplacesEmbeddings(t *testing.T) {
	s := setupStoreWithChunks(t, "file-1", 5)
	embedder := mock.NewEmbedder()
	embedder.Dimensions = 8

	var progress bytes.Buffer
	r := NewReembedder(s, s, embedder, &Config{
		BatchSize:      2,
		ReportInterval: 1,
		MaxRetries:     1,
		RetryDelay:     time.Millisecond,
	}, &progress)

	err := r.Run(context.Background(), "file-1")
	require.NoError(t, err)

	records, err := s.ListRecords(context.Background(), "file-1")
	require.NoError(t, err)
	require.Len(t, records, 5)
	for i, record := range records {
		assert.Equal(t, i, record.ChunkIndex, "record ids are preserved")
		assert.Len(t, record.Embedding, 8, "embedding replaced with the new model's vector")
		assert.Equal(t, fmt.Sprintf("chunk %d text", i), record.Text, "text is untouched")
	}
	assert.Contains(t, progress.String(), "Reembedding complete")
}

func TestReembedderNoChunks(t *testing.T) {
	s := setupStoreWithChunks(t, "file-1", 0)
	embedder := mock.NewEmbedder()

	var progress bytes.Buffer
	r := NewReembedder(s, s, embedder, nil, &progress)

	err := r.Run(context.Background(), "file-1")
	require.NoError(t, err)
	assert.Contains(t, progress.String(), "No stored chunks found")
	assert.Equal(t, 0, embedder.CallCount())
}

func TestReembedderEmbedFailurePropagates(t *testing.T) {
	s := setupStoreWithChunks(t, "file-1", 3)
	embedder := mock.NewEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, errors.New("provider down")
	}

	var progress bytes.Buffer
	r := NewReembedder(s, s, embedder, &Config{
		BatchSize:      10,
		ReportInterval: 10,
		MaxRetries:     2,
		RetryDelay:     time.Millisecond,
	}, &progress)

	err := r.Run(context.Background(), "file-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to process batch")

	// Original embeddings survive the failed run.
	records, err := s.ListRecords(context.Background(), "file-1")
	require.NoError(t, err)
	for _, record := range records {
		assert.Equal(t, []float32{0.1, 0.2, 0.3}, record.Embedding)
	}
}

func TestBatchProcessorEmptyBatch(t *testing.T) {
	embedder := mock.NewEmbedder()
	bp := NewBatchProcessor(nil, embedder, 1, time.Millisecond)
	require.NoError(t, bp.Process(context.Background(), nil))
	assert.Equal(t, 0, embedder.CallCount())
}
