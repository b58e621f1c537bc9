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


package docingest

import (
	"context"
	"log/slog"

	"github.com/poiesic/docingest/ai"
	"github.com/poiesic/docingest/ai/openai"
	"github.com/poiesic/docingest/chunk"
	"github.com/poiesic/docingest/core"
	"github.com/poiesic/docingest/extract"
	"github.com/poiesic/docingest/ingest"
	"github.com/poiesic/docingest/store"
	"github.com/poiesic/docingest/store/chroma"
)

// Ingestor wires the full pipeline behind a single handle: fetcher,
// extractor, chunker, retrying embedder, and a Chroma-backed chunk store.
type Ingestor struct {
	writer   store.ChunkWriter
	embedder ai.Embedder
	pipeline *ingest.Pipeline
	logger   *slog.Logger
}

// IngestorOption configures an Ingestor.
type IngestorOption func(*ingestorOptions)

type ingestorOptions struct {
	aiConfig       *ai.Config
	chunkThreshold int
	workers        int
	timeouts       ingest.Timeouts
}

// WithAIConfig overrides the embedding provider configuration.
func WithAIConfig(config *ai.Config) IngestorOption {
	return func(o *ingestorOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithChunkThreshold overrides the chunk word threshold.
func WithChunkThreshold(words int) IngestorOption {
	return func(o *ingestorOptions) {
		o.chunkThreshold = words
	}
}

// WithWorkers enables parallel embedding with the given pool size.
func WithWorkers(n int) IngestorOption {
	return func(o *ingestorOptions) {
		o.workers = n
	}
}

// WithStageTimeouts overrides the per-stage deadlines.
func WithStageTimeouts(t ingest.Timeouts) IngestorOption {
	return func(o *ingestorOptions) {
		o.timeouts = t
	}
}

// NewIngestor opens a connection to the Chroma server at chromaURL and
// assembles the pipeline around it.
func NewIngestor(ctx context.Context, chromaURL, collection string, opts ...IngestorOption) (*Ingestor, error) {
	options := &ingestorOptions{
		aiConfig: ai.DefaultConfig(),
		timeouts: ingest.DefaultTimeouts(),
	}
	for _, opt := range opts {
		opt(options)
	}

	writer, err := chroma.Open(ctx, chroma.Config{
		BaseURL:    chromaURL,
		Collection: collection,
	})
	if err != nil {
		return nil, err
	}

	embedder, err := openai.NewEmbedder(options.aiConfig)
	if err != nil {
		writer.Close()
		return nil, err
	}

	ingestor, err := newIngestor(writer, embedder, options)
	if err != nil {
		writer.Close()
		return nil, err
	}
	return ingestor, nil
}

// NewIngestorWith assembles the pipeline around a caller-provided writer and
// embedder. The caller keeps ownership of both.
func NewIngestorWith(writer store.ChunkWriter, embedder ai.Embedder, opts ...IngestorOption) (*Ingestor, error) {
	options := &ingestorOptions{
		aiConfig: ai.DefaultConfig(),
		timeouts: ingest.DefaultTimeouts(),
	}
	for _, opt := range opts {
		opt(options)
	}
	return newIngestor(writer, embedder, options)
}

func newIngestor(writer store.ChunkWriter, embedder ai.Embedder, options *ingestorOptions) (*Ingestor, error) {
	requester, err := ingest.NewRequester(embedder)
	if err != nil {
		return nil, err
	}

	pipeline, err := ingest.NewPipeline(
		ingest.NewHTTPFetcher(nil, nil),
		extract.New(nil),
		chunk.New(options.chunkThreshold),
		requester,
		writer,
		ingest.WithTimeouts(options.timeouts),
		ingest.WithWorkers(options.workers),
	)
	if err != nil {
		return nil, err
	}

	return &Ingestor{
		writer:   writer,
		embedder: embedder,
		pipeline: pipeline,
		logger:   slog.Default(),
	}, nil
}

// Ingest runs the pipeline for one document.
func (in *Ingestor) Ingest(ctx context.Context, fileID, sourceURL string) (*ingest.Result, error) {
	return in.pipeline.Run(ctx, core.Document{FileID: fileID, SourceURL: sourceURL})
}

// Close releases the store connection.
func (in *Ingestor) Close() error {
	if err := in.writer.Close(); err != nil {
		in.logger.Error("error closing chunk store", "err", err)
		return err
	}
	return nil
}
