// Package config assembles application settings from the environment,
// with a .env file loaded first when present.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Defaults mirror a local single-node setup.
const (
	DefaultLightRAGURL      = "http://localhost:9621"
	DefaultQdrantURL        = "http://localhost:6333"
	DefaultQdrantCollection = "lennyhub"
	DefaultWorkingDir       = "./rag_storage"
	DefaultDataDir          = "./data"
	DefaultConcurrency      = 5
	DefaultMaxDocuments     = 23
)

// ErrAPIKeyRequired is returned when OPENAI_API_KEY is not set.
var ErrAPIKeyRequired = errors.New("OPENAI_API_KEY environment variable not set")

// Config holds the application settings.
type Config struct {
	OpenAIKey        string
	LightRAGURL      string
	QdrantURL        string
	QdrantCollection string
	UseQdrant        bool
	WorkingDir       string
	DataDir          string
	HistoryDir       string
	Concurrency      int
	MaxDocuments     int
}

// FromEnv builds a Config from the process environment. A .env file in
// the working directory is loaded first if one exists; real environment
// variables win over the file.
func FromEnv() (*Config, error) {
	// Missing .env is the normal case, not an error.
	_ = godotenv.Load()

	cfg := &Config{
		OpenAIKey:        os.Getenv("OPENAI_API_KEY"),
		LightRAGURL:      envOr("LIGHTRAG_URL", DefaultLightRAGURL),
		QdrantURL:        envOr("QDRANT_URL", DefaultQdrantURL),
		QdrantCollection: envOr("QDRANT_COLLECTION_NAME", DefaultQdrantCollection),
		UseQdrant:        envBool("USE_QDRANT", true),
		WorkingDir:       envOr("WORKING_DIR", DefaultWorkingDir),
		DataDir:          envOr("DATA_DIR", DefaultDataDir),
		Concurrency:      DefaultConcurrency,
		MaxDocuments:     DefaultMaxDocuments,
	}

	var err error
	if cfg.Concurrency, err = envInt("INGEST_CONCURRENCY", DefaultConcurrency); err != nil {
		return nil, err
	}
	if cfg.MaxDocuments, err = envInt("MAX_DOCUMENTS", DefaultMaxDocuments); err != nil {
		return nil, err
	}

	cfg.Normalize()
	return cfg, nil
}

// Normalize fills derived fields and strips trailing slashes from URLs.
func (c *Config) Normalize() {
	c.LightRAGURL = strings.TrimSuffix(c.LightRAGURL, "/")
	c.QdrantURL = strings.TrimSuffix(c.QdrantURL, "/")
	if c.HistoryDir == "" {
		c.HistoryDir = filepath.Join(c.WorkingDir, "history")
	}
	if c.Concurrency < 1 {
		c.Concurrency = DefaultConcurrency
	}
	if c.MaxDocuments < 1 {
		c.MaxDocuments = DefaultMaxDocuments
	}
}

// Validate checks the settings a query or build run depends on.
func (c *Config) Validate() error {
	if c.OpenAIKey == "" {
		return ErrAPIKeyRequired
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.New(key + " must be an integer")
	}
	return n, nil
}
