package reembed

import "errors"

var (
	// ErrInvalidMaxAttempts is returned when a reembedding retry budget
	// of zero or less is configured.
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")
)
