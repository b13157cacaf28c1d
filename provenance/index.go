package provenance

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/traversaal-ai/lennyhub-rag/kvstore"
)

// chunkEntry is one chunk prepared for matching, with its source already
// resolved.
type chunkEntry struct {
	id      string
	content string
	source  string
}

// Index holds the chunk table normalized for passage matching. It is
// built once per loaded working directory and reused across queries.
//
// Entries are kept in chunk-id order so matching is deterministic
// regardless of map iteration order.
type Index struct {
	entries []chunkEntry
}

// BuildIndex normalizes the side-tables into a matchable index. The
// source of every chunk is resolved up front: through the full-docs
// table first, the doc-status table second, and UnknownSource when
// neither claims the chunk.
func BuildIndex(meta *kvstore.Metadata) *Index {
	entries := make([]chunkEntry, 0, len(meta.Chunks))
	for id, record := range meta.Chunks {
		entries = append(entries, chunkEntry{
			id:      id,
			content: record.Content,
			source:  resolveSource(id, meta),
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].id < entries[j].id })

	return &Index{entries: entries}
}

// Len returns the number of indexed chunks.
func (idx *Index) Len() int {
	return len(idx.entries)
}

// match finds the first chunk whose content contains the section or is
// contained by it. The first match wins even when several chunks would
// qualify; with chunks of one working directory that ambiguity only
// arises for near-duplicate transcripts, and picking the lowest chunk id
// keeps the answer stable.
func (idx *Index) match(section string) (chunkEntry, bool) {
	for _, entry := range idx.entries {
		if entry.content == "" {
			continue
		}
		if strings.Contains(section, entry.content) || strings.Contains(entry.content, section) {
			return entry, true
		}
	}
	return chunkEntry{}, false
}

// resolveSource walks the fallback chain for one chunk id.
func resolveSource(chunkID string, meta *kvstore.Metadata) string {
	// Full-docs table: doc lists its chunk ids, file name is the display name.
	for _, docID := range sortedKeys(meta.FullDocs) {
		doc := meta.FullDocs[docID]
		if contains(doc.Chunks, chunkID) {
			if doc.FileName != "" {
				return doc.FileName
			}
			return docID
		}
	}

	// Doc-status table: status entry lists chunk ids, file path gives a stem.
	for _, docID := range sortedKeys(meta.DocStatus) {
		status := meta.DocStatus[docID]
		if contains(status.ChunksList, chunkID) {
			if status.FilePath != "" {
				base := filepath.Base(status.FilePath)
				return strings.TrimSuffix(base, filepath.Ext(base))
			}
			return docID
		}
	}

	return UnknownSource
}

func sortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func contains(list []string, want string) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}
