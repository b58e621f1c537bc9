// Package store defines the durable chunk-store abstraction and the shared
// record serialization used by its backends.
//
// The ChunkWriter interface captures the storage contract of the ingestion
// pipeline: an idempotent upsert keyed by the deterministic record id.
// Two backends implement it: store/chroma writes into a Chroma collection
// (the primary, similarity-queryable store) and store/badger writes into an
// embedded BadgerDB (local and offline use).
package store
