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
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/poiesic/docingest/core"
)

// Fetcher retrieves the raw bytes of a document from its source location.
type Fetcher interface {
	Fetch(ctx context.Context, sourceURL string) ([]byte, error)
}

// HTTPFetcher downloads documents over HTTP(S). Any transport error or
// non-2xx status is reported as core.ErrFetchFailed so callers can treat
// the whole class as transient.
type HTTPFetcher struct {
	client *http.Client
	logger *slog.Logger
}

// NewHTTPFetcher creates a fetcher backed by the given client. A nil client
// falls back to http.DefaultClient.
func NewHTTPFetcher(client *http.Client, logger *slog.Logger) *HTTPFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPFetcher{
		client: client,
		logger: logger.With("component", "fetcher"),
	}
}

// Fetch downloads the document at sourceURL and returns its bytes.
func (f *HTTPFetcher) Fetch(ctx context.Context, sourceURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrFetchFailed, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: unexpected status %d from %s", core.ErrFetchFailed, resp.StatusCode, sourceURL)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response body: %w", core.ErrFetchFailed, err)
	}

	f.logger.Info("fetched document",
		"url", sourceURL,
		"bytes", len(data),
		"digest", core.ContentDigest(data))

	return data, nil
}
