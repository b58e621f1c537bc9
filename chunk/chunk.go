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


package chunk

import (
	"strings"

	"github.com/poiesic/docingest/core"
)

// DefaultThreshold is the word count at which a chunk is closed.
const DefaultThreshold = 500

// Chunker packs paragraph sequences into word-bounded chunks using greedy
// word-count packing. The threshold is a soft trigger checked only at
// paragraph boundaries: a single paragraph larger than the threshold is
// emitted as one oversized chunk rather than split mid-paragraph.
type Chunker struct {
	threshold int
}

// New creates a Chunker. A threshold <= 0 falls back to DefaultThreshold.
func New(threshold int) *Chunker {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Chunker{threshold: threshold}
}

// Split packs the ordered paragraph sequence into chunks for one file.
// Chunk indices are exactly the output sequence positions, starting at 0,
// with no gaps. Zero paragraphs produce zero chunks.
func (c *Chunker) Split(fileID string, paragraphs []string) []core.Chunk {
	var chunks []core.Chunk
	var words []string

	for _, para := range paragraphs {
		paraWords := strings.Fields(para)
		if len(words)+len(paraWords) > c.threshold && len(words) > 0 {
			chunks = append(chunks, core.Chunk{
				FileID: fileID,
				Index:  len(chunks),
				Text:   strings.Join(words, " "),
			})
			words = nil
		}
		words = append(words, paraWords...)
	}

	if len(words) > 0 {
		chunks = append(chunks, core.Chunk{
			FileID: fileID,
			Index:  len(chunks),
			Text:   strings.Join(words, " "),
		})
	}

	return chunks
}
