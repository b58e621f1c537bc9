// Package reembed regenerates embeddings for chunks that are already stored,
// without refetching or reparsing the source document. It is used after an
// embedding model change: records are read back from the store, embedded in
// batches with the new model, and written under their original record ids so
// the store's idempotent upsert replaces the stale vectors.
package reembed
