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
	"log/slog"
	"math/rand"
	"time"

	"github.com/poiesic/docingest/ai"
	"github.com/poiesic/docingest/core"
)

// DefaultEmbedAttempts is the total number of times a chunk is sent to the
// embedding provider before the run fails.
const DefaultEmbedAttempts = 3

// SleepFunc pauses between retry attempts. It returns early with the
// context's error if the context is cancelled during the pause.
type SleepFunc func(ctx context.Context, d time.Duration) error

func defaultSleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Requester wraps an embedder with the bounded retry policy: after the k-th
// failed attempt (counting from zero) it waits 2^k seconds plus a sub-second
// jitter, and gives up once the attempt budget is spent. The failure that
// exhausts the budget is wrapped in core.ErrEmbeddingFailed.
type Requester struct {
	embedder ai.Embedder
	attempts int
	sleep    SleepFunc
	jitter   func() float64
	logger   *slog.Logger
}

// RequesterOption configures a Requester.
type RequesterOption func(*Requester)

// WithAttempts overrides the total attempt budget. Values below one are
// ignored.
func WithAttempts(n int) RequesterOption {
	return func(r *Requester) {
		if n >= 1 {
			r.attempts = n
		}
	}
}

// WithSleepFunc replaces the pause between attempts. Tests use this to run
// the policy without real delays.
func WithSleepFunc(sleep SleepFunc) RequesterOption {
	return func(r *Requester) {
		if sleep != nil {
			r.sleep = sleep
		}
	}
}

// WithJitterSource replaces the jitter fraction generator. The function must
// return values in [0, 1).
func WithJitterSource(jitter func() float64) RequesterOption {
	return func(r *Requester) {
		if jitter != nil {
			r.jitter = jitter
		}
	}
}

// WithRequesterLogger sets the logger for retry warnings.
func WithRequesterLogger(logger *slog.Logger) RequesterOption {
	return func(r *Requester) {
		if logger != nil {
			r.logger = logger.With("component", "embed-requester")
		}
	}
}

// NewRequester creates a Requester around the given embedder.
func NewRequester(embedder ai.Embedder, opts ...RequesterOption) (*Requester, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	r := &Requester{
		embedder: embedder,
		attempts: DefaultEmbedAttempts,
		sleep:    defaultSleep,
		jitter:   rand.Float64,
		logger:   slog.Default().With("component", "embed-requester"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Embed requests a vector for text, retrying per the backoff policy. The
// returned error is core.ErrEmbeddingFailed wrapping the final provider
// error, or the context's error if cancellation interrupts a pause.
func (r *Requester) Embed(ctx context.Context, text string) ([]float32, error) {
	var lastErr error
	for attempt := 0; attempt < r.attempts; attempt++ {
		vector, err := r.embedder.EmbedText(ctx, text)
		if err == nil {
			if attempt > 0 {
				r.logger.Debug("embedding succeeded after retry", "attempt", attempt+1)
			}
			return vector, nil
		}
		lastErr = err

		if attempt == r.attempts-1 {
			break
		}

		delay := time.Duration((float64(int(1)<<attempt) + r.jitter()) * float64(time.Second))
		r.logger.Warn("embedding attempt failed, retrying",
			"attempt", attempt+1,
			"attempts", r.attempts,
			"delay", delay,
			"error", err)

		if err := r.sleep(ctx, delay); err != nil {
			return nil, err
		}
	}

	return nil, fmt.Errorf("%w: after %d attempts: %w", core.ErrEmbeddingFailed, r.attempts, lastErr)
}
