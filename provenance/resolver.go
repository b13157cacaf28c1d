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

package provenance

import (
	"log/slog"
	"strings"

	"github.com/traversaal-ai/lennyhub-rag/core"
	"github.com/traversaal-ai/lennyhub-rag/engine"
	"github.com/traversaal-ai/lennyhub-rag/kvstore"
)

// UnknownSource marks a passage that could not be attributed to any
// transcript.
const UnknownSource = "Unknown"

// minSectionBytes filters out delimiter debris: headers, blank runs and
// stray punctuation the context format produces between real passages.
const minSectionBytes = 20

// Resolver attributes raw engine context to source transcripts.
type Resolver struct {
	index   *Index
	monitor Monitor
	logger  *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver) error

// WithMonitor sets an observer for the resolution process.
// Default is a no-op monitor.
func WithMonitor(m Monitor) Option {
	return func(r *Resolver) error {
		if m == nil {
			m = &noopMonitor{}
		}
		r.monitor = m
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewResolver builds a resolver over the side-tables of one working
// directory. The chunk index is normalized once here; Resolve can then be
// called for any number of queries.
func NewResolver(meta *kvstore.Metadata, opts ...Option) (*Resolver, error) {
	r := &Resolver{
		index:   BuildIndex(meta),
		monitor: &noopMonitor{},
		logger:  slog.Default().With("component", "provenance"),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Resolve splits the raw context into sections and attributes each one.
// Sections under minSectionBytes are discarded. Every surviving section
// yields exactly one passage, attributed or not.
func (r *Resolver) Resolve(rawContext string) []core.Passage {
	sections := splitSections(rawContext)
	r.monitor.Start(rawContext, len(sections))

	passages := make([]core.Passage, 0, len(sections))
	for _, section := range sections {
		passage := core.Passage{
			Content: section,
			Source:  UnknownSource,
		}

		if entry, ok := r.index.match(section); ok {
			passage.ChunkID = entry.id
			passage.Source = entry.source
			r.monitor.SectionMatched(passage)
		} else {
			r.monitor.SectionUnmatched(section)
		}

		passages = append(passages, passage)
	}

	r.logger.Debug("resolved context",
		"sections", len(sections),
		"indexed_chunks", r.index.Len())

	r.monitor.Finish(passages)
	return passages
}

// Group buckets passages by source, ordered by each source's first
// appearance in the passage list. Unattributed passages group under
// UnknownSource like any other source.
func Group(passages []core.Passage) []core.SourceGroup {
	order := []string{}
	bySource := map[string][]core.Passage{}

	for _, p := range passages {
		if _, seen := bySource[p.Source]; !seen {
			order = append(order, p.Source)
		}
		bySource[p.Source] = append(bySource[p.Source], p)
	}

	groups := make([]core.SourceGroup, len(order))
	for i, source := range order {
		groups[i] = core.SourceGroup{Source: source, Passages: bySource[source]}
	}
	return groups
}

// splitSections cuts the raw context on the engine's delimiter and drops
// the fragments too short to be real passages.
func splitSections(rawContext string) []string {
	parts := strings.Split(rawContext, engine.ContextDelimiter)

	sections := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if len(part) < minSectionBytes {
			continue
		}
		sections = append(sections, part)
	}
	return sections
}

// FromWorkingDir loads the side-tables and builds a resolver in one step.
func FromWorkingDir(workingDir string, opts ...Option) (*Resolver, error) {
	return NewResolver(kvstore.Load(workingDir), opts...)
}
