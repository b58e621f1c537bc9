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


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/poiesic/docingest"
	"github.com/poiesic/docingest/ai"
	"github.com/poiesic/docingest/ai/openai"
	"github.com/poiesic/docingest/ingest"
	"github.com/poiesic/docingest/reembed"
	"github.com/poiesic/docingest/store"
	storebadger "github.com/poiesic/docingest/store/badger"
	"github.com/poiesic/docingest/store/chroma"
)

func main() {
	app := &cli.App{
		Name:  "docingest",
		Usage: "Document ingestion pipeline for vector search",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "ingest",
				Usage:  "Fetch, parse, embed, and store one document",
				Action: ingestCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "file-id",
						Usage:    "Stable identifier for the document",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "file-url",
						Usage:    "HTTP(S) location of the document",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "chroma-url",
						Usage: "Chroma server URL (omit to store in a local BadgerDB instead)",
					},
					&cli.StringFlag{
						Name:  "collection",
						Usage: "Chroma collection name",
						Value: "documents",
					},
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Path to BadgerDB database directory (used when --chroma-url is not set)",
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "embedding-model",
						Usage: "Embedding model name",
						Value: "embeddinggemma",
					},
					&cli.IntFlag{
						Name:  "chunk-words",
						Usage: "Word threshold per chunk",
						Value: 500,
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Parallel embedding workers (1 = sequential)",
						Value: 1,
					},
					&cli.DurationFlag{
						Name:  "fetch-timeout",
						Usage: "Deadline for downloading the document",
						Value: 5 * time.Minute,
					},
					&cli.DurationFlag{
						Name:  "parse-timeout",
						Usage: "Deadline for extracting text from the document",
						Value: 5 * time.Minute,
					},
					&cli.DurationFlag{
						Name:  "embed-timeout",
						Usage: "Deadline for embedding one chunk (including retries)",
						Value: 2 * time.Minute,
					},
					&cli.DurationFlag{
						Name:  "store-timeout",
						Usage: "Deadline for storing one chunk",
						Value: 2 * time.Minute,
					},
				},
			},
			{
				Name:   "reembed",
				Usage:  "Regenerate embeddings for a document's stored chunks",
				Action: reembedCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "file-id",
						Usage:    "Identifier of the ingested document",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "chroma-url",
						Usage: "Chroma server URL (omit to use a local BadgerDB instead)",
					},
					&cli.StringFlag{
						Name:  "collection",
						Usage: "Chroma collection name",
						Value: "documents",
					},
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Path to BadgerDB database directory (used when --chroma-url is not set)",
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:     "embedding-model",
						Usage:    "Embedding model name",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of chunks to embed in each batch",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N chunks",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed operations",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// openChunkStore opens either the Chroma-backed store or a local BadgerDB
// store, depending on which flags are set. The cleanup function releases
// whatever was opened.
func openChunkStore(ctx context.Context, c *cli.Context) (store.ChunkWriter, store.RecordLister, func(), error) {
	if chromaURL := c.String("chroma-url"); chromaURL != "" {
		s, err := chroma.Open(ctx, chroma.Config{
			BaseURL:    chromaURL,
			Collection: c.String("collection"),
		})
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to open chroma store: %w", err)
		}
		return s, s, func() { s.Close() }, nil
	}

	dbPath := c.String("db")
	if dbPath == "" {
		return nil, nil, nil, fmt.Errorf("either --chroma-url or --db is required")
	}

	backend, err := storebadger.OpenBackend(dbPath, false)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	s, err := storebadger.NewStore(backend)
	if err != nil {
		backend.Close()
		return nil, nil, nil, fmt.Errorf("failed to create store: %w", err)
	}
	return s, s, func() { backend.Close() }, nil
}

func ingestCommand(c *cli.Context) error {
	ctx := context.Background()

	writer, _, cleanup, err := openChunkStore(ctx, c)
	if err != nil {
		return err
	}
	defer cleanup()

	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("embedding-host")),
		ai.WithModel(c.String("embedding-model")),
	)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	embedder, err := openai.NewEmbedder(aiConfig)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}

	ingestor, err := docingest.NewIngestorWith(writer, embedder,
		docingest.WithChunkThreshold(c.Int("chunk-words")),
		docingest.WithWorkers(c.Int("workers")),
		docingest.WithStageTimeouts(ingest.Timeouts{
			Fetch: c.Duration("fetch-timeout"),
			Parse: c.Duration("parse-timeout"),
			Embed: c.Duration("embed-timeout"),
			Store: c.Duration("store-timeout"),
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to build pipeline: %w", err)
	}

	fileID := c.String("file-id")
	slog.Info("starting run", "run_id", ingest.RunID(fileID))

	result, err := ingestor.Ingest(ctx, fileID, c.String("file-url"))
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Ingested %s: %d chunks stored (digest %s)\n",
		result.FileID, result.Chunks, result.Digest)
	return nil
}

func reembedCommand(c *cli.Context) error {
	ctx := context.Background()

	writer, lister, cleanup, err := openChunkStore(ctx, c)
	if err != nil {
		return err
	}
	defer cleanup()

	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("embedding-host")),
		ai.WithModel(c.String("embedding-model")),
	)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	embedder, err := openai.NewEmbedder(aiConfig)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}

	reembedConfig := &reembed.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
	}
	if reembedConfig.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if reembedConfig.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if reembedConfig.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	reembedder := reembed.NewReembedder(lister, writer, embedder, reembedConfig, os.Stderr)

	fmt.Fprintf(os.Stderr, "Embedding host: %s\n", c.String("embedding-host"))
	fmt.Fprintf(os.Stderr, "Embedding model: %s\n", c.String("embedding-model"))
	fmt.Fprintln(os.Stderr)

	if err := reembedder.Run(ctx, c.String("file-id")); err != nil {
		return fmt.Errorf("reembedding failed: %w", err)
	}
	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
