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


package engine

import (
	"strings"
	"time"
)

// Config holds connection settings for the external retrieval engine.
type Config struct {
	// BaseURL is the base URL of the engine's HTTP API.
	// Example: "http://localhost:9621"
	BaseURL string

	// APIKey authenticates requests against the engine, if it requires one.
	// Empty means unauthenticated access (typical for local deployments).
	APIKey string

	// InsertTimeout bounds a single document insert call. Inserts chunk,
	// embed and graph-extract on the engine side, so this is generous.
	// Default: 10 minutes.
	InsertTimeout time.Duration

	// QueryTimeout bounds a single query call.
	// Default: 2 minutes.
	QueryTimeout time.Duration
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithBaseURL sets the engine API base URL.
func WithBaseURL(url string) ConfigOption {
	return func(c *Config) {
		c.BaseURL = url
	}
}

// WithAPIKey sets the engine API key.
func WithAPIKey(key string) ConfigOption {
	return func(c *Config) {
		c.APIKey = key
	}
}

// WithInsertTimeout sets the per-insert timeout.
func WithInsertTimeout(d time.Duration) ConfigOption {
	return func(c *Config) {
		c.InsertTimeout = d
	}
}

// WithQueryTimeout sets the per-query timeout.
func WithQueryTimeout(d time.Duration) ConfigOption {
	return func(c *Config) {
		c.QueryTimeout = d
	}
}

// DefaultConfig returns a Config with sensible defaults for a local engine.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:       "http://localhost:9621",
		InsertTimeout: 10 * time.Minute,
		QueryTimeout:  2 * time.Minute,
	}
}

// NewConfig creates a Config with default values and applies the provided options.
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// Trailing slashes are stripped from the base URL so request paths can be
// appended verbatim.
func (c *Config) Normalize() {
	c.BaseURL = strings.TrimSuffix(c.BaseURL, "/")
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.BaseURL == "" {
		return ErrBaseURLRequired
	}
	if c.InsertTimeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.QueryTimeout <= 0 {
		return ErrInvalidTimeout
	}
	return nil
}
