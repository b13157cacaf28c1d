package badger

import "github.com/traversaal-ai/lennyhub-rag/history"

// NewMemoryStore creates an in-memory query log for testing.
// Caller must close the returned store when done.
func NewMemoryStore() (history.Store, error) {
	backend, err := OpenBackend("", true)
	if err != nil {
		return nil, err
	}

	store, err := NewStore(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	return store, nil
}
