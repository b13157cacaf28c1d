package ingestion

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// ProgressTracker tracks and reports per-document progress of an
// ingestion run. It is safe for use from many workers at once.
type ProgressTracker struct {
	writer    io.Writer
	total     int
	current   int
	startTime time.Time
	started   bool
	mu        sync.Mutex
}

// NewProgressTracker creates a new progress tracker.
// writer: where to write progress output (typically os.Stderr)
// total: total number of documents scheduled
func NewProgressTracker(writer io.Writer, total int) *ProgressTracker {
	return &ProgressTracker{
		writer: writer,
		total:  total,
	}
}

// Start begins tracking progress.
func (p *ProgressTracker) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.startTime = time.Now()
	p.started = true
	p.current = 0
}

// Done records one finished document and reports it. Only successes
// advance the counter, so its final value equals the successful count.
// The counter, not the caller, decides the position shown, so concurrent
// completions never print the same index twice.
func (p *ProgressTracker) Done(name string, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}

	if err != nil {
		fmt.Fprintf(p.writer, "[ERROR] ✗ %s: %v\n", name, err)
		return
	}

	p.current++
	fmt.Fprintf(p.writer, "[%d/%d] ✓ %s\n", p.current, p.total, name)
}

// Count returns the number of successful documents recorded so far.
func (p *ProgressTracker) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// Elapsed returns the time elapsed since Start was called.
func (p *ProgressTracker) Elapsed() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return 0
	}

	return time.Since(p.startTime)
}
