package lightrag

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/traversaal-ai/lennyhub-rag/engine"
)

func newTestClient(t *testing.T, handler http.Handler) (engine.Engine, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	config := engine.NewConfig(
		engine.WithBaseURL(server.URL),
		engine.WithAPIKey("test-key"),
	)

	client, err := NewClient(config)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	return client, server
}

func TestClientInsert(t *testing.T) {
	var got insertRequest
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/documents/text", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-API-Key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))

	err := client.Insert(context.Background(), "episode content", "data/ep1.txt", "transcript-ep1")
	require.NoError(t, err)

	assert.Equal(t, "episode content", got.Text)
	assert.Equal(t, "data/ep1.txt", got.FileSource)
	assert.Equal(t, "transcript-ep1", got.DocID)
}

func TestClientInsertServerError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "pipeline busy", http.StatusServiceUnavailable)
	}))

	err := client.Insert(context.Background(), "content", "data/ep1.txt", "transcript-ep1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
	assert.Contains(t, err.Error(), "pipeline busy")
}

func TestClientQuery(t *testing.T) {
	var got queryRequest
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/query", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(queryResponse{Response: "the answer"})
	}))

	answer, err := client.Query(context.Background(), "what is churn?", engine.ModeHybrid, false)
	require.NoError(t, err)

	assert.Equal(t, "the answer", answer)
	assert.Equal(t, "what is churn?", got.Query)
	assert.Equal(t, "hybrid", got.Mode)
	assert.False(t, got.OnlyNeedContext)
}

func TestClientQueryContextOnly(t *testing.T) {
	var got queryRequest
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(queryResponse{Response: "chunk one\n-----\nchunk two"})
	}))

	raw, err := client.Query(context.Background(), "question", engine.ModeLocal, true)
	require.NoError(t, err)

	assert.True(t, got.OnlyNeedContext)
	assert.Equal(t, "local", got.Mode)
	assert.Contains(t, raw, engine.ContextDelimiter)
}

func TestClientRejectsInvalidConfig(t *testing.T) {
	config := engine.NewConfig(engine.WithBaseURL(""))

	_, err := NewClient(config)
	assert.ErrorIs(t, err, engine.ErrBaseURLRequired)
}

func TestProbeQdrant(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/":
			json.NewEncoder(w).Encode(map[string]string{"title": "qdrant", "version": "1.9.0"})
		case "/collections":
			w.Write([]byte(`{"result":{"collections":[{"name":"lennyhub"},{"name":"scratch"}]}}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	status, err := ProbeQdrant(context.Background(), server.URL)
	require.NoError(t, err)

	assert.True(t, status.Reachable)
	assert.Equal(t, "1.9.0", status.Version)
	assert.True(t, status.HasCollection("lennyhub"))
	assert.False(t, status.HasCollection("missing"))
}

func TestProbeQdrantUnreachable(t *testing.T) {
	status, err := ProbeQdrant(context.Background(), "http://127.0.0.1:1")
	require.NoError(t, err)
	assert.False(t, status.Reachable)
}
