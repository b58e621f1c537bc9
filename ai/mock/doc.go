// Package mock provides test doubles for the ai package interfaces.
//
// The mock Embedder produces deterministic vectors derived from the input
// text, so tests can assert on stable values without a live embedding
// service. Custom behavior, including failures, is injected via function
// fields.
package mock
