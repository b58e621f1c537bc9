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


package ingest

import (
	"errors"
	"fmt"
)

var (
	// ErrFetcherRequired is returned when a fetcher is not provided.
	ErrFetcherRequired = errors.New("fetcher required")

	// ErrExtractorRequired is returned when an extractor is not provided.
	ErrExtractorRequired = errors.New("extractor required")

	// ErrChunkerRequired is returned when a chunker is not provided.
	ErrChunkerRequired = errors.New("chunker required")

	// ErrRequesterRequired is returned when an embedding requester is not provided.
	ErrRequesterRequired = errors.New("embedding requester required")

	// ErrWriterRequired is returned when a chunk writer is not provided.
	ErrWriterRequired = errors.New("chunk writer required")

	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")
)

// Stage names one step of a document's pipeline run.
type Stage string

const (
	StageFetch Stage = "fetch"
	StageParse Stage = "parse"
	StageEmbed Stage = "embed"
	StageStore Stage = "store"
)

// StageError is the terminal failure of one run. It carries everything the
// run's caller is told: the file, the failing stage, and the error kind.
type StageError struct {
	FileID string
	Stage  Stage
	Err    error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s failed for file %s: %v", e.Stage, e.FileID, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
