package mock

import (
	"context"
	"sync"

	"github.com/traversaal-ai/lennyhub-rag/engine"
)

// Engine is a test double for engine.Engine.
// It allows custom behavior injection via function fields.
type Engine struct {
	// InsertFunc is called by Insert if set.
	// If nil, the insert is recorded and succeeds.
	InsertFunc func(ctx context.Context, content, sourcePath, docID string) error

	// QueryFunc is called by Query if set.
	// If nil, the question is echoed back as the answer.
	QueryFunc func(ctx context.Context, question string, mode engine.QueryMode, contextOnly bool) (string, error)

	mu          sync.Mutex
	inserted    []string
	insertCount int
	queryCount  int
	closed      bool
}

var _ engine.Engine = (*Engine)(nil)

// NewEngine creates a mock engine with default behavior.
// Note: Returns concrete type to allow test assertions on call counts.
func NewEngine() *Engine {
	return &Engine{}
}

// Insert records the document ID and delegates to InsertFunc if set.
func (m *Engine) Insert(ctx context.Context, content, sourcePath, docID string) error {
	m.mu.Lock()
	m.insertCount++
	m.inserted = append(m.inserted, docID)
	m.mu.Unlock()

	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, content, sourcePath, docID)
	}
	return nil
}

// Query delegates to QueryFunc if set, otherwise echoes the question.
func (m *Engine) Query(ctx context.Context, question string, mode engine.QueryMode, contextOnly bool) (string, error) {
	m.mu.Lock()
	m.queryCount++
	m.mu.Unlock()

	if m.QueryFunc != nil {
		return m.QueryFunc(ctx, question, mode, contextOnly)
	}
	return question, nil
}

// Close marks the engine closed.
func (m *Engine) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// InsertCount returns the number of times Insert was called.
func (m *Engine) InsertCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.insertCount
}

// QueryCount returns the number of times Query was called.
func (m *Engine) QueryCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queryCount
}

// Inserted returns the document IDs passed to Insert, in call order.
func (m *Engine) Inserted() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.inserted))
	copy(out, m.inserted)
	return out
}

// Closed reports whether Close was called.
func (m *Engine) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
