package engine

import "context"

// ContextDelimiter is the fixed marker the engine places between retrieved
// sections in a context-only query response.
const ContextDelimiter = "-----"

// QueryMode selects the retrieval strategy used to answer a question.
type QueryMode string

const (
	// ModeHybrid combines entity and relationship retrieval. Best default.
	ModeHybrid QueryMode = "hybrid"
	// ModeLocal focuses retrieval on entity neighborhoods.
	ModeLocal QueryMode = "local"
	// ModeGlobal focuses retrieval on cross-document relationships.
	ModeGlobal QueryMode = "global"
	// ModeNaive is plain vector search without graph context.
	ModeNaive QueryMode = "naive"
)

// ParseMode converts a string into a QueryMode.
// Returns ErrInvalidMode for unrecognized values.
func ParseMode(s string) (QueryMode, error) {
	switch QueryMode(s) {
	case ModeHybrid, ModeLocal, ModeGlobal, ModeNaive:
		return QueryMode(s), nil
	default:
		return "", ErrInvalidMode
	}
}

// Inserter indexes one document into the retrieval engine.
// Implementations must be thread-safe for concurrent use.
type Inserter interface {
	// Insert indexes the document content under the given ID.
	// The operation is idempotent per docID: re-invoking it for an already
	// indexed ID is safe. It may be slow (network-bound) and may fail
	// transiently; callers decide how to handle failures.
	Insert(ctx context.Context, content, sourcePath, docID string) error
}

// Querier answers natural-language questions against the retrieval index.
// Implementations must be thread-safe for concurrent use.
type Querier interface {
	// Query answers the question using the given retrieval mode.
	// When contextOnly is true it returns the raw retrieved context,
	// delimiter-joined with ContextDelimiter, instead of a generated answer.
	Query(ctx context.Context, question string, mode QueryMode, contextOnly bool) (string, error)
}

// Engine aggregates the narrow surface of the external retrieval engine.
// Everything behind it (embeddings, generation, the vector index) is an
// external collaborator and out of scope for this repository.
type Engine interface {
	Inserter
	Querier

	// Close releases resources held by the engine client.
	Close() error
}
