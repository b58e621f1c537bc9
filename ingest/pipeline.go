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

// Package ingest runs a document through the full pipeline: fetch the bytes,
// extract text, split into chunks, embed each chunk, and upsert the results
// into the vector store. Each run is keyed by the document's file id, so
// repeating a run for the same document overwrites its previous records
// instead of duplicating them.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/docingest/chunk"
	"github.com/poiesic/docingest/core"
	"github.com/poiesic/docingest/extract"
	"github.com/poiesic/docingest/store"
)

// Timeouts bounds each stage of a run. Embed covers a chunk's whole retry
// envelope, not each attempt separately.
type Timeouts struct {
	Fetch time.Duration
	Parse time.Duration
	Embed time.Duration
	Store time.Duration
}

// DefaultTimeouts returns the stage budgets used when none are configured.
func DefaultTimeouts() Timeouts {
	return Timeouts{
		Fetch: 5 * time.Minute,
		Parse: 5 * time.Minute,
		Embed: 2 * time.Minute,
		Store: 2 * time.Minute,
	}
}

// Result summarizes a completed run.
type Result struct {
	FileID string
	Chunks int
	Digest string
}

// RunID names a pipeline run for the document with the given file id. One
// document has one run identity, which is what makes re-ingestion replace
// rather than duplicate.
func RunID(fileID string) string {
	return "ingest-" + fileID
}

// TextExtractor converts raw document bytes into plain text.
// *extract.Extractor is the production implementation.
type TextExtractor interface {
	Text(data []byte, format core.Format) (string, error)
}

// Pipeline orchestrates one document's ingestion end to end.
type Pipeline struct {
	fetcher   Fetcher
	extractor TextExtractor
	chunker   *chunk.Chunker
	requester *Requester
	writer    store.ChunkWriter
	timeouts  Timeouts
	workers   int
	logger    *slog.Logger
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithTimeouts overrides the per-stage deadlines. Zero fields keep their
// defaults.
func WithTimeouts(t Timeouts) PipelineOption {
	return func(p *Pipeline) {
		if t.Fetch > 0 {
			p.timeouts.Fetch = t.Fetch
		}
		if t.Parse > 0 {
			p.timeouts.Parse = t.Parse
		}
		if t.Embed > 0 {
			p.timeouts.Embed = t.Embed
		}
		if t.Store > 0 {
			p.timeouts.Store = t.Store
		}
	}
}

// WithWorkers enables bounded parallel embedding. Each chunk still embeds
// before it stores; only the per-chunk work runs concurrently. Values below
// two keep the sequential path.
func WithWorkers(n int) PipelineOption {
	return func(p *Pipeline) {
		if n > 1 {
			p.workers = n
		}
	}
}

// WithPipelineLogger sets the logger for run progress.
func WithPipelineLogger(logger *slog.Logger) PipelineOption {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger.With("component", "pipeline")
		}
	}
}

// NewPipeline wires the stages together.
func NewPipeline(fetcher Fetcher, extractor TextExtractor, chunker *chunk.Chunker, requester *Requester, writer store.ChunkWriter, opts ...PipelineOption) (*Pipeline, error) {
	if fetcher == nil {
		return nil, ErrFetcherRequired
	}
	if extractor == nil {
		return nil, ErrExtractorRequired
	}
	if chunker == nil {
		return nil, ErrChunkerRequired
	}
	if requester == nil {
		return nil, ErrRequesterRequired
	}
	if writer == nil {
		return nil, ErrWriterRequired
	}

	p := &Pipeline{
		fetcher:   fetcher,
		extractor: extractor,
		chunker:   chunker,
		requester: requester,
		writer:    writer,
		timeouts:  DefaultTimeouts(),
		workers:   1,
		logger:    slog.Default().With("component", "pipeline"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Run ingests one document. On failure it returns a *StageError naming the
// stage that failed; stages never run out of order and no stage runs after
// a failure.
func (p *Pipeline) Run(ctx context.Context, doc core.Document) (*Result, error) {
	logger := p.logger.With("run_id", RunID(doc.FileID), "file_id", doc.FileID)
	logger.Info("starting ingestion", "url", doc.SourceURL)

	fetchCtx, cancel := context.WithTimeout(ctx, p.timeouts.Fetch)
	data, err := p.fetcher.Fetch(fetchCtx, doc.SourceURL)
	cancel()
	if err != nil {
		return nil, p.fail(logger, doc.FileID, StageFetch, err)
	}
	digest := core.ContentDigest(data)

	text, err := p.extractWithTimeout(ctx, data, doc.Format())
	if err != nil {
		return nil, p.fail(logger, doc.FileID, StageParse, err)
	}
	paragraphs := extract.Paragraphs(text)
	chunks := p.chunker.Split(doc.FileID, paragraphs)
	logger.Info("parsed document",
		"format", doc.Format(),
		"paragraphs", len(paragraphs),
		"chunks", len(chunks))

	if len(chunks) == 0 {
		logger.Info("document produced no text, completing")
		return &Result{FileID: doc.FileID, Chunks: 0, Digest: digest}, nil
	}

	if p.workers > 1 {
		err = p.processParallel(ctx, chunks)
	} else {
		err = p.processSequential(ctx, chunks)
	}
	if err != nil {
		var stage Stage
		if se, ok := err.(*StageError); ok {
			stage = se.Stage
		}
		logger.Error("ingestion failed", "stage", stage, "permanent", core.IsPermanent(err), "error", err)
		return nil, err
	}

	logger.Info("ingestion completed", "chunks", len(chunks), "digest", digest)
	return &Result{FileID: doc.FileID, Chunks: len(chunks), Digest: digest}, nil
}

func (p *Pipeline) fail(logger *slog.Logger, fileID string, stage Stage, err error) error {
	logger.Error("ingestion failed", "stage", stage, "permanent", core.IsPermanent(err), "error", err)
	return &StageError{FileID: fileID, Stage: stage, Err: err}
}

// extractWithTimeout runs extraction under the parse budget. Extraction is
// CPU-bound and cannot be interrupted, so on timeout the worker goroutine is
// abandoned and the run fails.
func (p *Pipeline) extractWithTimeout(ctx context.Context, data []byte, format core.Format) (string, error) {
	type parseResult struct {
		text string
		err  error
	}
	resCh := make(chan parseResult, 1)
	go func() {
		text, err := p.extractor.Text(data, format)
		resCh <- parseResult{text: text, err: err}
	}()

	timer := time.NewTimer(p.timeouts.Parse)
	defer timer.Stop()
	select {
	case res := <-resCh:
		return res.text, res.err
	case <-ctx.Done():
		return "", ctx.Err()
	case <-timer.C:
		return "", fmt.Errorf("extraction exceeded %v", p.timeouts.Parse)
	}
}

// processChunk embeds one chunk and then stores it. The pairing is atomic
// from the run's point of view: a chunk is never stored without a fresh
// embedding.
func (p *Pipeline) processChunk(ctx context.Context, c core.Chunk) error {
	embedCtx, cancel := context.WithTimeout(ctx, p.timeouts.Embed)
	vector, err := p.requester.Embed(embedCtx, c.Text)
	cancel()
	if err != nil {
		return &StageError{FileID: c.FileID, Stage: StageEmbed, Err: err}
	}

	record := &core.StoredRecord{
		FileID:     c.FileID,
		ChunkIndex: c.Index,
		Text:       c.Text,
		Embedding:  vector,
	}

	storeCtx, cancel := context.WithTimeout(ctx, p.timeouts.Store)
	err = p.writer.WriteChunk(storeCtx, record)
	cancel()
	if err != nil {
		return &StageError{FileID: c.FileID, Stage: StageStore, Err: err}
	}
	return nil
}

func (p *Pipeline) processSequential(ctx context.Context, chunks []core.Chunk) error {
	for _, c := range chunks {
		if err := p.processChunk(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

// processParallel fans chunks out over a bounded pool. The first failure
// (by chunk index) cancels the remaining work and is the one reported.
func (p *Pipeline) processParallel(ctx context.Context, chunks []core.Chunk) error {
	pool, err := ants.NewPool(p.workers)
	if err != nil {
		return &StageError{FileID: chunks[0].FileID, Stage: StageEmbed, Err: err}
	}
	defer pool.Release()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	errs := make([]error, len(chunks))
	var wg sync.WaitGroup
	for i, c := range chunks {
		i, c := i, c
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			if runCtx.Err() != nil {
				return
			}
			if err := p.processChunk(runCtx, c); err != nil {
				errs[i] = err
				cancel()
			}
		})
		if submitErr != nil {
			wg.Done()
			errs[i] = &StageError{FileID: c.FileID, Stage: StageEmbed, Err: submitErr}
			cancel()
		}
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	// Workers skip their chunk once the run context is cancelled, so a
	// cancelled parent must fail the run even when no worker recorded an
	// error: the skipped chunks were never stored.
	if err := ctx.Err(); err != nil {
		return &StageError{FileID: chunks[0].FileID, Stage: StageEmbed, Err: err}
	}
	return nil
}
