package core

import (
	"errors"
	"testing"
)

func TestValidateStoredRecord(t *testing.T) {
	valid := StoredRecord{
		FileID:     "file123",
		ChunkIndex: 0,
		Text:       "some chunk text",
		Embedding:  []float32{0.1, 0.2, 0.3},
	}

	tests := []struct {
		name    string
		mutate  func(r *StoredRecord)
		wantErr error
	}{
		{
			name:    "valid record",
			mutate:  func(r *StoredRecord) {},
			wantErr: nil,
		},
		{
			name:    "empty file id",
			mutate:  func(r *StoredRecord) { r.FileID = "" },
			wantErr: ErrEmptyFileID,
		},
		{
			name:    "negative chunk index",
			mutate:  func(r *StoredRecord) { r.ChunkIndex = -1 },
			wantErr: ErrNegativeChunkIndex,
		},
		{
			name:    "empty embedding",
			mutate:  func(r *StoredRecord) { r.Embedding = nil },
			wantErr: ErrEmptyEmbedding,
		},
		{
			name:    "empty text is allowed",
			mutate:  func(r *StoredRecord) { r.Text = "" },
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := valid
			tt.mutate(&record)

			err := ValidateStoredRecord(&record)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateStoredRecord() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateStoredRecord() = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidRecord) {
				t.Errorf("ValidateStoredRecord() = %v, want wrapped ErrInvalidRecord", err)
			}
		})
	}
}

func TestValidateStoredRecord_Nil(t *testing.T) {
	if err := ValidateStoredRecord(nil); !errors.Is(err, ErrInvalidRecord) {
		t.Errorf("ValidateStoredRecord(nil) = %v, want ErrInvalidRecord", err)
	}
}

func TestIsPermanent(t *testing.T) {
	permanent := []error{ErrUnsupportedFormat, ErrCorruptDocument, ErrEmbeddingFailed, ErrStoreRejected}
	transient := []error{ErrFetchFailed, ErrStoreUnavailable, ErrNotInitialized, errors.New("unknown")}

	for _, err := range permanent {
		if !IsPermanent(err) {
			t.Errorf("IsPermanent(%v) = false, want true", err)
		}
	}
	for _, err := range transient {
		if IsPermanent(err) {
			t.Errorf("IsPermanent(%v) = true, want false", err)
		}
	}
}
