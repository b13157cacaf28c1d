package provenance

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/traversaal-ai/lennyhub-rag/core"
	"github.com/traversaal-ai/lennyhub-rag/kvstore"
)

const (
	chunkGrowth    = "The single most important lever for consumer growth is retention, not acquisition."
	chunkChurn     = "Churn compounds quietly until the growth curve flattens and nobody can say why."
	chunkPricing   = "Pricing is positioning: the number tells the customer what segment you built for."
	chunkOrphan    = "This passage belongs to a chunk no document claims as its own."
)

func testMetadata() *kvstore.Metadata {
	return &kvstore.Metadata{
		Chunks: map[string]kvstore.ChunkRecord{
			"chunk-growth":  {Content: chunkGrowth, FullDocID: "transcript-growth"},
			"chunk-churn":   {Content: chunkChurn, FullDocID: "transcript-growth"},
			"chunk-pricing": {Content: chunkPricing, FullDocID: "transcript-pricing"},
			"chunk-orphan":  {Content: chunkOrphan},
		},
		FullDocs: map[string]kvstore.DocRecord{
			"transcript-growth": {
				FileName: "growth-episode.txt",
				Chunks:   []string{"chunk-growth", "chunk-churn"},
			},
		},
		DocStatus: map[string]kvstore.StatusRecord{
			"transcript-pricing": {
				Status:     "processed",
				FilePath:   "data/pricing-episode.txt",
				ChunksList: []string{"chunk-pricing"},
			},
		},
	}
}

func newTestResolver(t *testing.T, meta *kvstore.Metadata, opts ...Option) *Resolver {
	t.Helper()
	r, err := NewResolver(meta, opts...)
	require.NoError(t, err)
	return r
}

func TestResolveAttributesViaFullDocs(t *testing.T) {
	r := newTestResolver(t, testMetadata())

	passages := r.Resolve(chunkGrowth)
	require.Len(t, passages, 1)

	assert.Equal(t, "chunk-growth", passages[0].ChunkID)
	assert.Equal(t, "growth-episode.txt", passages[0].Source)
}

func TestResolveFallsBackToDocStatusStem(t *testing.T) {
	r := newTestResolver(t, testMetadata())

	passages := r.Resolve(chunkPricing)
	require.Len(t, passages, 1)

	assert.Equal(t, "chunk-pricing", passages[0].ChunkID)
	assert.Equal(t, "pricing-episode", passages[0].Source)
}

func TestResolveUnclaimedChunkIsUnknown(t *testing.T) {
	r := newTestResolver(t, testMetadata())

	passages := r.Resolve(chunkOrphan)
	require.Len(t, passages, 1)

	assert.Equal(t, "chunk-orphan", passages[0].ChunkID)
	assert.Equal(t, UnknownSource, passages[0].Source)
}

func TestResolveUnmatchedSectionIsUnknown(t *testing.T) {
	r := newTestResolver(t, testMetadata())

	passages := r.Resolve("this section matches nothing in the chunk table at all")
	require.Len(t, passages, 1)

	assert.Empty(t, passages[0].ChunkID)
	assert.Equal(t, UnknownSource, passages[0].Source)
}

func TestResolveSplitsAndFiltersSections(t *testing.T) {
	r := newTestResolver(t, testMetadata())

	raw := strings.Join([]string{
		"hdr", // too short, dropped
		chunkGrowth,
		"   ", // blank, dropped
		chunkPricing,
	}, "\n-----\n")

	passages := r.Resolve(raw)
	require.Len(t, passages, 2)
	assert.Equal(t, "chunk-growth", passages[0].ChunkID)
	assert.Equal(t, "chunk-pricing", passages[1].ChunkID)
}

func TestResolveBidirectionalContainment(t *testing.T) {
	r := newTestResolver(t, testMetadata())

	// Section wraps the chunk content.
	wrapped := "Retrieved context follows. " + chunkChurn + " End of retrieved context."
	passages := r.Resolve(wrapped)
	require.Len(t, passages, 1)
	assert.Equal(t, "chunk-churn", passages[0].ChunkID)

	// Section is a fragment of the chunk content.
	fragment := chunkChurn[:40]
	require.GreaterOrEqual(t, len(fragment), minSectionBytes)
	passages = r.Resolve(fragment)
	require.Len(t, passages, 1)
	assert.Equal(t, "chunk-churn", passages[0].ChunkID)
}

func TestResolveFirstMatchWins(t *testing.T) {
	meta := testMetadata()
	// Two chunks with identical content; the lower chunk id must win.
	meta.Chunks["chunk-dup-b"] = kvstore.ChunkRecord{Content: chunkGrowth}
	meta.Chunks["chunk-aaa-dup"] = kvstore.ChunkRecord{Content: chunkGrowth}

	r := newTestResolver(t, meta)

	passages := r.Resolve(chunkGrowth)
	require.Len(t, passages, 1)
	assert.Equal(t, "chunk-aaa-dup", passages[0].ChunkID)
}

func TestResolveEmptyMetadata(t *testing.T) {
	r := newTestResolver(t, &kvstore.Metadata{
		Chunks:    map[string]kvstore.ChunkRecord{},
		FullDocs:  map[string]kvstore.DocRecord{},
		DocStatus: map[string]kvstore.StatusRecord{},
	})

	passages := r.Resolve(chunkGrowth)
	require.Len(t, passages, 1)
	assert.Equal(t, UnknownSource, passages[0].Source)
}

func TestGroupPreservesFirstOccurrenceOrder(t *testing.T) {
	passages := []core.Passage{
		{Content: "a", Source: "episode-two.txt"},
		{Content: "b", Source: "episode-one.txt"},
		{Content: "c", Source: "episode-two.txt"},
		{Content: "d", Source: UnknownSource},
	}

	groups := Group(passages)
	require.Len(t, groups, 3)

	assert.Equal(t, "episode-two.txt", groups[0].Source)
	assert.Len(t, groups[0].Passages, 2)
	assert.Equal(t, "episode-one.txt", groups[1].Source)
	assert.Equal(t, UnknownSource, groups[2].Source)
}

type recordingMonitor struct {
	started   bool
	matched   int
	unmatched int
	finished  int
}

func (m *recordingMonitor) Start(_ string, _ int)         { m.started = true }
func (m *recordingMonitor) SectionMatched(_ core.Passage) { m.matched++ }
func (m *recordingMonitor) SectionUnmatched(_ string)     { m.unmatched++ }
func (m *recordingMonitor) Finish(p []core.Passage)       { m.finished = len(p) }

func TestResolverMonitorHooks(t *testing.T) {
	mon := &recordingMonitor{}
	r := newTestResolver(t, testMetadata(), WithMonitor(mon))

	raw := chunkGrowth + "\n-----\n" + "totally unrecognized section content here"
	r.Resolve(raw)

	assert.True(t, mon.started)
	assert.Equal(t, 1, mon.matched)
	assert.Equal(t, 1, mon.unmatched)
	assert.Equal(t, 2, mon.finished)
}
