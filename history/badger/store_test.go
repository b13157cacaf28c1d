package badger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/traversaal-ai/lennyhub-rag/core"
	"github.com/traversaal-ai/lennyhub-rag/history"
)

func newTestStore(t *testing.T) history.Store {
	t.Helper()
	store, err := NewMemoryStore()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleRecord(question string, at time.Time) *core.QueryRecord {
	return &core.QueryRecord{
		Question:  question,
		Mode:      "hybrid",
		Answer:    "an answer",
		Duration:  2 * time.Second,
		Timestamp: at,
	}
}

func TestAppendAndRecent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	for i, q := range []string{"first", "second", "third"} {
		_, err := store.Append(ctx, sampleRecord(q, base.Add(time.Duration(i)*time.Minute)))
		require.NoError(t, err)
	}

	records, err := store.Recent(ctx, 10)
	require.NoError(t, err)

	require.Len(t, records, 3)
	assert.Equal(t, "third", records[0].Question)
	assert.Equal(t, "second", records[1].Question)
	assert.Equal(t, "first", records[2].Question)
}

func TestRecentHonorsLimit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		_, err := store.Append(ctx, sampleRecord("q", base.Add(time.Duration(i)*time.Second)))
		require.NoError(t, err)
	}

	records, err := store.Recent(ctx, 2)
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.True(t, records[0].Timestamp.After(records[1].Timestamp))
}

func TestAppendFillsIDAndTimestamp(t *testing.T) {
	store := newTestStore(t)

	record := sampleRecord("fill me in", time.Time{})
	stored, err := store.Append(context.Background(), record)
	require.NoError(t, err)

	assert.NotZero(t, stored.Id)
	assert.False(t, stored.Timestamp.IsZero())
	// Caller's record is untouched.
	assert.Zero(t, record.Id)
	assert.True(t, record.Timestamp.IsZero())
}

func TestAppendPreservesExplicitID(t *testing.T) {
	store := newTestStore(t)

	record := sampleRecord("explicit", time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC))
	record.Id = core.ID(42)

	stored, err := store.Append(context.Background(), record)
	require.NoError(t, err)
	assert.Equal(t, core.ID(42), stored.Id)
}

func TestAppendRejectsNilAndInvalid(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Append(ctx, nil)
	assert.ErrorIs(t, err, history.ErrRecordRequired)

	noQuestion := sampleRecord("", time.Now().UTC())
	_, err = store.Append(ctx, noQuestion)
	assert.ErrorIs(t, err, core.ErrEmptyQuestion)
}

func TestRecentRejectsBadLimit(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Recent(context.Background(), 0)
	assert.ErrorIs(t, err, history.ErrInvalidLimit)
}

func TestRecentOnEmptyLog(t *testing.T) {
	store := newTestStore(t)

	records, err := store.Recent(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	backend, err := OpenBackend(dir, false)
	require.NoError(t, err)
	store, err := NewStore(backend)
	require.NoError(t, err)

	_, err = store.Append(context.Background(),
		sampleRecord("durable", time.Date(2025, 7, 2, 8, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	require.NoError(t, store.Close())

	backend, err = OpenBackend(dir, false)
	require.NoError(t, err)
	store, err = NewStore(backend)
	require.NoError(t, err)
	defer store.Close()

	records, err := store.Recent(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "durable", records[0].Question)
}
