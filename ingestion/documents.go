package ingestion

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/traversaal-ai/lennyhub-rag/core"
)

// CollectDocuments finds the transcript files in dataDir and returns them
// as documents in lexicographic path order. Only *.txt files are picked up.
func CollectDocuments(dataDir string) ([]core.Document, error) {
	paths, err := filepath.Glob(filepath.Join(dataDir, "*.txt"))
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dataDir, err)
	}
	sort.Strings(paths)

	docs := make([]core.Document, len(paths))
	for i, path := range paths {
		docs[i] = core.Document{
			ID:     core.DocumentID(path),
			Path:   path,
			Status: core.StatusUnseen,
		}
	}
	return docs, nil
}
