package ingestion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/traversaal-ai/lennyhub-rag/core"
)

func writeTranscript(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCollectDocumentsSortedWithIDs(t *testing.T) {
	dir := t.TempDir()
	writeTranscript(t, dir, "zeta.txt", "z")
	writeTranscript(t, dir, "alpha.txt", "a")
	writeTranscript(t, dir, "mid.txt", "m")
	writeTranscript(t, dir, "notes.md", "ignored")

	docs, err := CollectDocuments(dir)
	require.NoError(t, err)

	require.Len(t, docs, 3)
	assert.Equal(t, "transcript-alpha", docs[0].ID)
	assert.Equal(t, "transcript-mid", docs[1].ID)
	assert.Equal(t, "transcript-zeta", docs[2].ID)
	for _, doc := range docs {
		assert.Equal(t, core.StatusUnseen, doc.Status)
	}
}

func TestCollectDocumentsEmptyDir(t *testing.T) {
	docs, err := CollectDocuments(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, docs)
}
