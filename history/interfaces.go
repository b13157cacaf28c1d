package history

import (
	"context"

	"github.com/traversaal-ai/lennyhub-rag/core"
)

// Store persists query records.
type Store interface {
	// Append adds a record to the log. A zero Id is filled in from the
	// record content. Returns the stored record.
	Append(ctx context.Context, record *core.QueryRecord) (*core.QueryRecord, error)

	// Recent returns up to limit records, newest first.
	Recent(ctx context.Context, limit int) ([]*core.QueryRecord, error)

	// Close releases the underlying storage.
	Close() error
}
