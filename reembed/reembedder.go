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
	"context"
	"fmt"
	"io"
	"time"

	"github.com/poiesic/docingest/ai"
	"github.com/poiesic/docingest/store"
)

// Config holds configuration for the reembedding operation.
type Config struct {
	// BatchSize is the number of chunks sent to the embedder per call
	BatchSize int

	// ReportInterval is how often to report progress (number of chunks)
	ReportInterval int

	// MaxRetries is the maximum number of retry attempts for failed operations
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      100,
		ReportInterval: 100,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
	}
}

// Reembedder regenerates the embeddings of one document's stored chunks.
type Reembedder struct {
	lister    store.RecordLister
	embedder  ai.Embedder
	config    *Config
	progress  io.Writer
	processor *BatchProcessor
}

// NewReembedder creates a new reembedder. The writer receives the refreshed
// records; it is usually the same store the lister reads from.
// progress: where to write progress output (typically os.Stderr)
func NewReembedder(lister store.RecordLister, writer store.ChunkWriter, embedder ai.Embedder, config *Config, progress io.Writer) *Reembedder {
	if config == nil {
		config = DefaultConfig()
	}

	return &Reembedder{
		lister:    lister,
		embedder:  embedder,
		config:    config,
		progress:  progress,
		processor: NewBatchProcessor(writer, embedder, config.MaxRetries, config.RetryDelay),
	}
}

// Run reembeds every stored chunk of the document with the given file id.
// Progress is reported to the configured writer.
func (r *Reembedder) Run(ctx context.Context, fileID string) error {
	records, err := r.lister.ListRecords(ctx, fileID)
	if err != nil {
		return fmt.Errorf("failed to list records for %s: %w", fileID, err)
	}

	total := len(records)
	if total == 0 {
		fmt.Fprintf(r.progress, "No stored chunks found for file %s\n", fileID)
		return nil
	}

	fmt.Fprintf(r.progress, "Starting reembedding of %d chunks for file %s (batch size: %d)\n",
		total, fileID, r.config.BatchSize)

	tracker := NewProgressTracker(r.progress, total, r.config.ReportInterval)
	tracker.Start()

	processed := 0
	for i := 0; i < total; i += r.config.BatchSize {
		end := i + r.config.BatchSize
		if end > total {
			end = total
		}

		if err := r.processor.Process(ctx, records[i:end]); err != nil {
			return fmt.Errorf("failed to process batch: %w", err)
		}

		processed += end - i
		tracker.Update(processed)

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}

	tracker.Finish()

	elapsed := tracker.Elapsed()
	fmt.Fprintf(r.progress, "Reembedding complete. Processed %d chunks in %v (%.1f chunks/sec)\n",
		total, elapsed.Round(time.Second), float64(total)/elapsed.Seconds())

	return nil
}
