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


package core

import (
	"encoding/hex"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/go-crypt/x/blake2b"
)

// Format identifies a source document type. It is derived once, from the
// source locator, and selects the extraction path.
type Format string

const (
	FormatPDF     Format = "pdf"
	FormatDocx    Format = "docx"
	FormatDoc     Format = "doc"
	FormatXLS     Format = "xls"
	FormatXLSX    Format = "xlsx"
	FormatUnknown Format = "unknown"
)

// FormatFromURL derives a document's format tag from the lowercase filename
// extension of the URL's path component. Anything outside the recognized set
// yields FormatUnknown, which is a terminal condition at the extraction stage.
func FormatFromURL(sourceURL string) Format {
	u, err := url.Parse(sourceURL)
	if err != nil {
		return FormatUnknown
	}

	switch strings.ToLower(path.Ext(u.Path)) {
	case ".pdf":
		return FormatPDF
	case ".docx":
		return FormatDocx
	case ".doc":
		return FormatDoc
	case ".xls":
		return FormatXLS
	case ".xlsx":
		return FormatXLSX
	default:
		return FormatUnknown
	}
}

// Document identifies one ingestion source for the duration of a single run.
// It is immutable once ingestion starts and is never persisted by the core.
type Document struct {
	FileID    string // caller-supplied, globally unique per run
	SourceURL string
}

// Format returns the document's format tag, derived from its source URL.
func (d Document) Format() Format {
	return FormatFromURL(d.SourceURL)
}

// Chunk is a bounded-size, index-tagged segment of a document's extracted
// text. Index values for one document form a contiguous range starting at 0,
// assigned in document order.
type Chunk struct {
	FileID string
	Index  int
	Text   string
}

// StoredRecord is the durable unit written by a ChunkWriter: one chunk plus
// its embedding, keyed by the deterministic composite RecordID.
type StoredRecord struct {
	FileID     string
	ChunkIndex int
	Text       string
	Embedding  []float32
}

// RecordID returns the record's deterministic identity key.
func (r *StoredRecord) RecordID() string {
	return RecordID(r.FileID, r.ChunkIndex)
}

// RecordID builds the composite key identifying one stored chunk.
// The format is "<file_id>::<chunk_index>" and is collision-free because
// file IDs are unique per run and chunk indices are unique per file.
func RecordID(fileID string, chunkIndex int) string {
	return fileID + "::" + strconv.Itoa(chunkIndex)
}

// ContentDigest returns a hex-encoded BLAKE2b digest of a payload.
// Used to fingerprint fetched documents in logs and run reports.
func ContentDigest(data []byte) string {
	h, _ := blake2b.New(16, nil) // 16 bytes = 128 bits
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}
