// Package mock provides a test double implementation of engine.Engine.
//
// The mock allows tests to run without a live retrieval server and enables
// controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	eng := mock.NewEngine()
//	err := eng.Insert(ctx, "content", "data/ep.txt", "transcript-ep")
//
//	// Custom behavior injection
//	eng.QueryFunc = func(ctx context.Context, question string, mode engine.QueryMode, contextOnly bool) (string, error) {
//	    return "canned answer", nil
//	}
//
//	// Check call counts
//	count := eng.InsertCount()
//
// # Default Behavior
//
//   - Insert records the document ID and succeeds
//   - Query echoes the question back as the answer
//
// Call counters are safe for concurrent use, so the mock can sit behind
// a scheduler running many workers.
package mock
