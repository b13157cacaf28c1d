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

package kvstore

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Side-table file names as written by the retrieval server.
const (
	ChunksFile    = "kv_store_text_chunks.json"
	FullDocsFile  = "kv_store_full_docs.json"
	DocStatusFile = "kv_store_doc_status.json"
)

// ChunkRecord is one entry of the text-chunks table.
type ChunkRecord struct {
	Content   string `json:"content"`
	FullDocID string `json:"full_doc_id"`
}

// DocRecord is one entry of the full-docs table.
type DocRecord struct {
	Content  string   `json:"content"`
	FileName string   `json:"file_name"`
	Chunks   []string `json:"chunks"`
}

// StatusRecord is one entry of the doc-status table.
type StatusRecord struct {
	Status     string   `json:"status"`
	FilePath   string   `json:"file_path"`
	ChunksList []string `json:"chunks_list"`
}

// Metadata holds the loaded side-tables for one working directory.
// Absent tables are empty maps, never nil.
type Metadata struct {
	Chunks    map[string]ChunkRecord
	FullDocs  map[string]DocRecord
	DocStatus map[string]StatusRecord
}

// Load reads the side-tables from workingDir. A table that is missing,
// unreadable or malformed degrades to empty with a warning. The tables
// are advisory inputs to provenance resolution; refusing to answer a
// query over a damaged one would be worse than answering with "Unknown"
// sources.
func Load(workingDir string) *Metadata {
	logger := slog.Default().With("component", "kvstore")

	meta := &Metadata{
		Chunks:    map[string]ChunkRecord{},
		FullDocs:  map[string]DocRecord{},
		DocStatus: map[string]StatusRecord{},
	}

	if err := loadTable(workingDir, ChunksFile, &meta.Chunks, logger); err != nil {
		logger.Warn("side-table unusable, treating as empty", "err", err)
		meta.Chunks = map[string]ChunkRecord{}
	}
	if err := loadTable(workingDir, FullDocsFile, &meta.FullDocs, logger); err != nil {
		logger.Warn("side-table unusable, treating as empty", "err", err)
		meta.FullDocs = map[string]DocRecord{}
	}
	if err := loadTable(workingDir, DocStatusFile, &meta.DocStatus, logger); err != nil {
		logger.Warn("side-table unusable, treating as empty", "err", err)
		meta.DocStatus = map[string]StatusRecord{}
	}

	logger.Debug("loaded side-tables",
		"working_dir", workingDir,
		"chunks", len(meta.Chunks),
		"full_docs", len(meta.FullDocs),
		"doc_status", len(meta.DocStatus))

	return meta
}

// ProcessedSet returns the document IDs the engine has already seen,
// derived from the doc-status keys.
func (m *Metadata) ProcessedSet() map[string]struct{} {
	set := make(map[string]struct{}, len(m.DocStatus))
	for docID := range m.DocStatus {
		set[docID] = struct{}{}
	}
	return set
}

// LoadProcessedSet reads only the doc-status table and returns its key
// set. Unlike Load, a table that cannot be read or parsed degrades to an
// empty set with a warning: an ingestion run over a damaged working
// directory re-inserts everything rather than refusing to start.
func LoadProcessedSet(workingDir string) map[string]struct{} {
	logger := slog.Default().With("component", "kvstore")

	status := map[string]StatusRecord{}
	if err := loadTable(workingDir, DocStatusFile, &status, logger); err != nil {
		logger.Warn("could not read processed documents, assuming none", "err", err)
		return map[string]struct{}{}
	}

	set := make(map[string]struct{}, len(status))
	for docID := range status {
		set[docID] = struct{}{}
	}
	return set
}

func loadTable[T any](workingDir, name string, into *map[string]T, logger *slog.Logger) error {
	path := filepath.Join(workingDir, name)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		logger.Debug("side-table absent, treating as empty", "file", name)
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}

	if err := json.Unmarshal(data, into); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}
