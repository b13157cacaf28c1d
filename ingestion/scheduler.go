// Copyright 2025 Traversaal AI
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ingestion

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/traversaal-ai/lennyhub-rag/core"
	"github.com/traversaal-ai/lennyhub-rag/engine"
)

const (
	// DefaultConcurrency is the number of inserts allowed in flight at once.
	DefaultConcurrency = 5

	// DefaultBatchLimit caps how many new documents one run schedules.
	DefaultBatchLimit = 23
)

// Scheduler pushes transcript documents through the engine with bounded
// concurrency. It manages a worker pool sized to the concurrency limit so
// at most that many inserts are in flight at any moment.
type Scheduler struct {
	engine      engine.Inserter
	pool        *ants.Pool
	concurrency int
	batchLimit  int
	progress    io.Writer
	logger      *slog.Logger
}

// Option configures a Scheduler.
type Option func(*Scheduler) error

// WithConcurrency sets the number of concurrent insert workers.
// Default is DefaultConcurrency.
func WithConcurrency(n int) Option {
	return func(s *Scheduler) error {
		if n < 1 {
			return ErrInvalidConcurrency
		}

		// Release old pool
		if s.pool != nil {
			s.pool.Release()
		}

		pool, err := ants.NewPool(n)
		if err != nil {
			return err
		}

		s.pool = pool
		s.concurrency = n
		return nil
	}
}

// WithBatchLimit caps how many unprocessed documents one run schedules.
// Default is DefaultBatchLimit.
func WithBatchLimit(n int) Option {
	return func(s *Scheduler) error {
		if n < 1 {
			return ErrInvalidBatchLimit
		}
		s.batchLimit = n
		return nil
	}
}

// WithProgressWriter sets where per-document progress lines are written.
// Default is os.Stderr.
func WithProgressWriter(w io.Writer) Option {
	return func(s *Scheduler) error {
		if w == nil {
			w = io.Discard
		}
		s.progress = w
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scheduler) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewScheduler creates an ingestion scheduler over the given engine.
func NewScheduler(inserter engine.Inserter, opts ...Option) (*Scheduler, error) {
	if inserter == nil {
		return nil, ErrEngineRequired
	}

	pool, err := ants.NewPool(DefaultConcurrency)
	if err != nil {
		return nil, err
	}

	s := &Scheduler{
		engine:      inserter,
		pool:        pool,
		concurrency: DefaultConcurrency,
		batchLimit:  DefaultBatchLimit,
		progress:    os.Stderr,
		logger:      slog.Default().With("component", "scheduler"),
	}

	for _, opt := range opts {
		if optErr := opt(s); optErr != nil {
			s.Release()
			return nil, optErr
		}
	}

	return s, nil
}

// Run ingests the documents not present in the processed set, at most
// batchLimit of them, and returns a report covering the whole run. Every
// scheduled document yields exactly one outcome; an insert failure is
// recorded, not propagated, so one bad transcript cannot sink the batch.
func (s *Scheduler) Run(ctx context.Context, docs []core.Document, processed map[string]struct{}) (*core.IngestReport, error) {
	started := time.Now()

	batch, skipped := s.admit(docs, processed)
	s.logger.Info("ingestion run starting",
		"candidates", len(docs),
		"skipped", skipped,
		"scheduled", len(batch),
		"concurrency", s.concurrency)

	if len(batch) == 0 {
		return &core.IngestReport{
			Skipped:  skipped,
			Duration: time.Since(started),
			Outcomes: []core.Outcome{},
		}, nil
	}

	tracker := NewProgressTracker(s.progress, len(batch))
	tracker.Start()

	// Indexed writes keep the outcome slice race-free without a lock.
	outcomes := make([]core.Outcome, len(batch))

	var wg sync.WaitGroup
	for i := range batch {
		doc := batch[i]
		slot := i

		wg.Add(1)
		err := s.pool.Submit(func() {
			defer wg.Done()
			outcomes[slot] = s.ingest(ctx, doc)
			tracker.Done(doc.ID, outcomeError(outcomes[slot]))
		})
		if err != nil {
			// Pool rejected the task; the document still gets its outcome.
			outcomes[slot] = core.Outcome{DocID: doc.ID, Error: err.Error()}
			tracker.Done(doc.ID, err)
			wg.Done()
		}
	}
	wg.Wait()

	report := foldOutcomes(outcomes, skipped, time.Since(started))
	s.logger.Info("ingestion run finished",
		"successful", report.Successful,
		"failed", report.Failed,
		"skipped", report.Skipped,
		"duration", report.Duration.Round(time.Millisecond))

	return report, nil
}

// Release releases the worker pool.
// The scheduler should not be used after calling Release.
func (s *Scheduler) Release() {
	if s.pool != nil {
		s.pool.Release()
	}
}

// admit filters out already-processed documents, then caps the batch.
// The cap applies after the skip so re-runs make forward progress even
// when the data directory holds more documents than one batch.
func (s *Scheduler) admit(docs []core.Document, processed map[string]struct{}) ([]core.Document, int) {
	batch := make([]core.Document, 0, len(docs))
	skipped := 0
	for _, doc := range docs {
		if _, seen := processed[doc.ID]; seen {
			skipped++
			continue
		}
		batch = append(batch, doc)
	}

	if len(batch) > s.batchLimit {
		batch = batch[:s.batchLimit]
	}
	return batch, skipped
}

// ingest reads one transcript and inserts it into the engine.
func (s *Scheduler) ingest(ctx context.Context, doc core.Document) core.Outcome {
	content, err := os.ReadFile(doc.Path)
	if err != nil {
		s.logger.Error("failed to read document", "doc_id", doc.ID, "err", err)
		return core.Outcome{DocID: doc.ID, Error: fmt.Sprintf("read %s: %v", doc.Path, err)}
	}

	if err := s.engine.Insert(ctx, string(content), doc.Path, doc.ID); err != nil {
		s.logger.Error("failed to insert document", "doc_id", doc.ID, "err", err)
		return core.Outcome{DocID: doc.ID, Error: err.Error()}
	}

	return core.Outcome{DocID: doc.ID, Succeeded: true}
}

// foldOutcomes reduces per-document outcomes into a run report.
func foldOutcomes(outcomes []core.Outcome, skipped int, duration time.Duration) *core.IngestReport {
	report := &core.IngestReport{
		Scheduled: len(outcomes),
		Skipped:   skipped,
		Duration:  duration,
		Outcomes:  outcomes,
	}
	for _, o := range outcomes {
		if o.Succeeded {
			report.Successful++
		} else {
			report.Failed++
		}
	}
	return report
}

func outcomeError(o core.Outcome) error {
	if o.Succeeded {
		return nil
	}
	return fmt.Errorf("%s", o.Error)
}
