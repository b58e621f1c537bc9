package reembed

import (
	"context"
	"fmt"
	"time"

	"github.com/poiesic/docingest/ai"
	"github.com/poiesic/docingest/core"
	"github.com/poiesic/docingest/store"
)

// BatchProcessor embeds batches of stored chunks and writes them back.
type BatchProcessor struct {
	writer         store.ChunkWriter
	embedder       ai.Embedder
	maxRetries     int
	retryBaseDelay time.Duration
}

// NewBatchProcessor creates a new batch processor.
// maxRetries: maximum number of retry attempts for embedding API calls
// retryBaseDelay: base delay for exponential backoff
func NewBatchProcessor(writer store.ChunkWriter, embedder ai.Embedder, maxRetries int, retryBaseDelay time.Duration) *BatchProcessor {
	return &BatchProcessor{
		writer:         writer,
		embedder:       embedder,
		maxRetries:     maxRetries,
		retryBaseDelay: retryBaseDelay,
	}
}

// Process generates fresh embeddings for a batch of records and upserts them
// under their existing record ids.
func (bp *BatchProcessor) Process(ctx context.Context, records []*core.StoredRecord) error {
	if len(records) == 0 {
		return nil
	}

	texts := make([]string, len(records))
	for i, record := range records {
		texts[i] = record.Text
	}

	var embeddings [][]float32
	err := RetryWithBackoff(ctx, func() error {
		var err error
		embeddings, err = bp.embedder.EmbedTexts(ctx, texts)
		return err
	}, bp.maxRetries, bp.retryBaseDelay)

	if err != nil {
		return fmt.Errorf("failed to generate embeddings after %d attempts: %w", bp.maxRetries, err)
	}

	if len(embeddings) != len(records) {
		return fmt.Errorf("embedding count mismatch: expected %d, got %d", len(records), len(embeddings))
	}

	for i := range records {
		records[i].Embedding = embeddings[i]
		if err := bp.writer.WriteChunk(ctx, records[i]); err != nil {
			return fmt.Errorf("failed to update record %s: %w", records[i].RecordID(), err)
		}
	}

	return nil
}
