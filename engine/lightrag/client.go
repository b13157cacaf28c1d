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

package lightrag

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/traversaal-ai/lennyhub-rag/engine"
)

// Client implements engine.Engine over the HTTP API of a LightRAG-compatible
// server. The server owns chunking, embedding, graph extraction and the
// vector index; the client only moves text in and answers out.
type Client struct {
	config *engine.Config
	http   *http.Client
	logger *slog.Logger
}

var _ engine.Engine = (*Client)(nil)

// insertRequest is the payload for the document-text endpoint.
type insertRequest struct {
	Text       string `json:"text"`
	FileSource string `json:"file_source,omitempty"`
	DocID      string `json:"doc_id,omitempty"`
}

// queryRequest is the payload for the query endpoint.
type queryRequest struct {
	Query           string `json:"query"`
	Mode            string `json:"mode"`
	OnlyNeedContext bool   `json:"only_need_context"`
}

// queryResponse is the body returned by the query endpoint.
type queryResponse struct {
	Response string `json:"response"`
}

// NewClient creates an engine client for the configured server.
// The config is validated and normalized before use.
//
// Returns engine.Engine (not *Client) to enforce abstraction and prevent
// coupling to transport details.
func NewClient(config *engine.Config) (engine.Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Client{
		config: config,
		// Per-call deadlines come from the config via context; the client
		// itself carries no global timeout so insert and query limits can
		// differ.
		http:   &http.Client{},
		logger: slog.Default().With("component", "lightrag-client"),
	}, nil
}

// Insert indexes the document content under the given ID.
func (c *Client) Insert(ctx context.Context, content, sourcePath, docID string) error {
	ctx, cancel := context.WithTimeout(ctx, c.config.InsertTimeout)
	defer cancel()

	c.logger.Debug("inserting document", "doc_id", docID, "bytes", len(content))

	body, err := c.post(ctx, "/documents/text", insertRequest{
		Text:       content,
		FileSource: sourcePath,
		DocID:      docID,
	})
	if err != nil {
		return fmt.Errorf("insert %s: %w", docID, err)
	}
	io.Copy(io.Discard, body)
	body.Close()

	return nil
}

// Query answers the question using the given retrieval mode.
func (c *Client) Query(ctx context.Context, question string, mode engine.QueryMode, contextOnly bool) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.QueryTimeout)
	defer cancel()

	c.logger.Debug("querying engine", "mode", mode, "context_only", contextOnly)

	body, err := c.post(ctx, "/query", queryRequest{
		Query:           question,
		Mode:            string(mode),
		OnlyNeedContext: contextOnly,
	})
	if err != nil {
		return "", fmt.Errorf("query: %w", err)
	}
	defer body.Close()

	var resp queryResponse
	if err := json.NewDecoder(body).Decode(&resp); err != nil {
		return "", fmt.Errorf("query: decode response: %w", err)
	}

	return resp.Response, nil
}

// Close releases resources held by the client.
func (c *Client) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// post sends a JSON payload and returns the response body on 2xx status.
// The caller must close the returned reader.
func (c *Client) post(ctx context.Context, path string, payload any) (io.ReadCloser, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.config.APIKey != "" {
		req.Header.Set("X-API-Key", c.config.APIKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("engine returned %s: %s", resp.Status, strings.TrimSpace(string(detail)))
	}

	return resp.Body, nil
}
