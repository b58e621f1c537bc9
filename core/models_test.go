package core

import (
	"testing"
)

func TestFormatFromURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want Format
	}{
		{
			name: "pdf extension",
			url:  "https://example.com/files/report.pdf",
			want: FormatPDF,
		},
		{
			name: "uppercase extension",
			url:  "https://example.com/files/REPORT.PDF",
			want: FormatPDF,
		},
		{
			name: "docx extension",
			url:  "https://example.com/contract.docx",
			want: FormatDocx,
		},
		{
			name: "legacy doc extension",
			url:  "https://example.com/memo.doc",
			want: FormatDoc,
		},
		{
			name: "xls extension",
			url:  "https://example.com/books/ledger.xls",
			want: FormatXLS,
		},
		{
			name: "xlsx extension",
			url:  "https://example.com/books/ledger.xlsx",
			want: FormatXLSX,
		},
		{
			name: "png is not a document",
			url:  "https://example.com/chart.png",
			want: FormatUnknown,
		},
		{
			name: "no extension",
			url:  "https://example.com/download",
			want: FormatUnknown,
		},
		{
			name: "extension in query is ignored",
			url:  "https://example.com/download?name=report.pdf",
			want: FormatUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatFromURL(tt.url); got != tt.want {
				t.Errorf("FormatFromURL(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestRecordID(t *testing.T) {
	if got := RecordID("file123", 0); got != "file123::0" {
		t.Errorf("RecordID() = %q, want %q", got, "file123::0")
	}
	if got := RecordID("file123", 42); got != "file123::42" {
		t.Errorf("RecordID() = %q, want %q", got, "file123::42")
	}
}

func TestStoredRecord_RecordID_Deterministic(t *testing.T) {
	r1 := &StoredRecord{FileID: "f", ChunkIndex: 7}
	r2 := &StoredRecord{FileID: "f", ChunkIndex: 7, Text: "different text"}

	if r1.RecordID() != r2.RecordID() {
		t.Errorf("RecordID differs for same (file, index): %q vs %q", r1.RecordID(), r2.RecordID())
	}
}

func TestContentDigest(t *testing.T) {
	d1 := ContentDigest([]byte("payload"))
	d2 := ContentDigest([]byte("payload"))
	d3 := ContentDigest([]byte("other payload"))

	if d1 != d2 {
		t.Errorf("ContentDigest() produced different digests for same payload: %s vs %s", d1, d2)
	}
	if d1 == d3 {
		t.Errorf("ContentDigest() produced same digest for different payloads")
	}
	if len(d1) != 32 {
		t.Errorf("ContentDigest() length = %d, want 32 hex chars", len(d1))
	}
}
