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

package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"
)

// ErrNoAPIKey indicates the probe was invoked without a key.
var ErrNoAPIKey = errors.New("openai api key is required")

// probeModel is the cheapest embedding model; the probe result is discarded,
// only the authentication outcome matters.
const probeModel = "text-embedding-3-small"

// VerifyCredentials issues a single embedding request against the OpenAI
// API to confirm the key is valid. baseURL may be empty to use the public
// endpoint, or point at an OpenAI-compatible service.
func VerifyCredentials(ctx context.Context, apiKey, baseURL string) error {
	if apiKey == "" {
		return ErrNoAPIKey
	}

	logger := slog.Default().With("component", "openai-probe")

	opts := []openai.Option{
		openai.WithToken(apiKey),
		openai.WithEmbeddingModel(probeModel),
	}
	if baseURL != "" {
		opts = append(opts, openai.WithBaseURL(baseURL))
	}

	client, err := openai.New(opts...)
	if err != nil {
		return fmt.Errorf("create openai client: %w", err)
	}

	embedder, err := embeddings.NewEmbedder(client, embeddings.WithStripNewLines(true))
	if err != nil {
		return fmt.Errorf("create embedder: %w", err)
	}

	logger.Debug("verifying openai credentials", "model", probeModel)

	if _, err := embedder.EmbedDocuments(ctx, []string{"ping"}); err != nil {
		return fmt.Errorf("credential check failed: %w", err)
	}

	logger.Debug("openai credentials verified")
	return nil
}
