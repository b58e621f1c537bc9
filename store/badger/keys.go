package badger

import "github.com/poiesic/docingest/core"

// Key prefix for stored chunk records.
const chunkRecordPrefix = "chunk:"

// makeChunkKey generates the key for a chunk record.
// Format: chunk:<file_id>::<chunk_index>
func makeChunkKey(fileID string, chunkIndex int) []byte {
	return []byte(chunkRecordPrefix + core.RecordID(fileID, chunkIndex))
}

// makeFilePrefix generates the iteration prefix covering every chunk of one
// file. The "::" separator keeps file ids with a shared prefix apart.
func makeFilePrefix(fileID string) []byte {
	return []byte(chunkRecordPrefix + fileID + "::")
}
