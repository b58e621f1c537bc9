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


package extract

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/docingest/core"
)

// Extractor converts raw document bytes into normalized text, dispatching on
// the document's format tag. It is a pure transform: no I/O beyond what the
// format decoders require, no retained state between calls.
type Extractor struct {
	logger *slog.Logger
}

// New creates an Extractor. A nil logger falls back to slog.Default().
func New(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{
		logger: logger.With("component", "extractor"),
	}
}

// Text extracts one normalized text string from raw document bytes.
//
// Returns core.ErrUnsupportedFormat when the format tag is unknown and
// core.ErrCorruptDocument when the format-level decode fails. Both are
// permanent conditions: retrying the same bytes cannot succeed.
func (e *Extractor) Text(data []byte, format core.Format) (string, error) {
	var (
		text string
		err  error
	)

	switch format {
	case core.FormatPDF:
		text, err = extractPDF(data)
	case core.FormatDocx:
		text, err = extractDocx(data)
	case core.FormatDoc:
		text, err = extractDoc(data)
	case core.FormatXLS:
		text, err = extractXLS(data)
	case core.FormatXLSX:
		text, err = extractXLSX(data)
	default:
		return "", fmt.Errorf("%w: %q", core.ErrUnsupportedFormat, format)
	}

	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", core.ErrCorruptDocument, format, err)
	}

	e.logger.Debug("extracted document text", "format", format, "bytes", len(data), "chars", len(text))
	return text, nil
}

// Paragraphs splits normalized text into non-empty, whitespace-trimmed lines.
// Blank lines are discarded entirely, not preserved as separators.
func Paragraphs(text string) []string {
	var paragraphs []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		paragraphs = append(paragraphs, line)
	}
	return paragraphs
}
