package ingestion

import "errors"

var (
	// ErrEngineRequired is returned when an engine is not provided.
	ErrEngineRequired = errors.New("engine required")

	// ErrInvalidConcurrency is returned when the worker count is not positive.
	ErrInvalidConcurrency = errors.New("concurrency must be positive")

	// ErrInvalidBatchLimit is returned when the batch cap is not positive.
	ErrInvalidBatchLimit = errors.New("batch limit must be positive")
)
