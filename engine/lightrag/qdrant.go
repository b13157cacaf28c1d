package lightrag

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// QdrantStatus reports the health of the vector store backing the engine.
type QdrantStatus struct {
	Reachable   bool
	Version     string
	Collections []string
}

// qdrantRoot is the body of the Qdrant service root endpoint.
type qdrantRoot struct {
	Title   string `json:"title"`
	Version string `json:"version"`
}

// qdrantCollections is the body of the collections listing endpoint.
type qdrantCollections struct {
	Result struct {
		Collections []struct {
			Name string `json:"name"`
		} `json:"collections"`
	} `json:"result"`
}

// ProbeQdrant checks that the vector store at baseURL is alive and lists
// its collections. A connection failure yields Reachable=false and no
// error; a malformed response is an error.
func ProbeQdrant(ctx context.Context, baseURL string) (*QdrantStatus, error) {
	baseURL = strings.TrimSuffix(baseURL, "/")
	client := &http.Client{Timeout: 5 * time.Second}

	root, err := getJSON[qdrantRoot](ctx, client, baseURL+"/")
	if err != nil {
		return &QdrantStatus{Reachable: false}, nil
	}

	status := &QdrantStatus{
		Reachable: true,
		Version:   root.Version,
	}

	listing, err := getJSON[qdrantCollections](ctx, client, baseURL+"/collections")
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	for _, c := range listing.Result.Collections {
		status.Collections = append(status.Collections, c.Name)
	}

	return status, nil
}

// HasCollection reports whether the status listing contains name.
func (s *QdrantStatus) HasCollection(name string) bool {
	for _, c := range s.Collections {
		if c == name {
			return true
		}
	}
	return false
}

func getJSON[T any](ctx context.Context, client *http.Client, url string) (*T, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}
