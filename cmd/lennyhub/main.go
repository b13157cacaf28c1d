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

package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/traversaal-ai/lennyhub-rag/config"
	"github.com/traversaal-ai/lennyhub-rag/core"
	"github.com/traversaal-ai/lennyhub-rag/engine"
	"github.com/traversaal-ai/lennyhub-rag/engine/lightrag"
	"github.com/traversaal-ai/lennyhub-rag/engine/openai"
	"github.com/traversaal-ai/lennyhub-rag/history"
	historybadger "github.com/traversaal-ai/lennyhub-rag/history/badger"
	"github.com/traversaal-ai/lennyhub-rag/ingestion"
	"github.com/traversaal-ai/lennyhub-rag/kvstore"
	"github.com/traversaal-ai/lennyhub-rag/provenance"
)

// displayLimit caps how much of a passage the sources command prints.
const displayLimit = 600

func main() {
	app := &cli.App{
		Name:  "lennyhub",
		Usage: "Transcript RAG with per-source answer attribution",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "warn",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "build",
				Usage:  "Ingest transcript files into the retrieval index",
				Action: buildCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "data-dir",
						Aliases: []string{"d"},
						Usage:   "Directory holding *.txt transcripts",
					},
					&cli.StringFlag{
						Name:    "working-dir",
						Aliases: []string{"w"},
						Usage:   "Engine working directory with the side-tables",
					},
					&cli.IntFlag{
						Name:    "max",
						Aliases: []string{"m"},
						Usage:   "Maximum number of new documents to ingest this run",
					},
					&cli.IntFlag{
						Name:    "concurrency",
						Aliases: []string{"c"},
						Usage:   "Number of concurrent inserts",
					},
					&cli.BoolFlag{
						Name:  "skip-verify",
						Usage: "Skip the OpenAI credential check",
					},
				},
			},
			{
				Name:      "query",
				Usage:     "Answer a question from the indexed transcripts",
				ArgsUsage: "QUESTION",
				Action:    queryCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "mode",
						Aliases: []string{"m"},
						Usage:   "Retrieval mode (hybrid, local, global, naive)",
						Value:   "hybrid",
					},
					&cli.BoolFlag{
						Name:  "no-history",
						Usage: "Do not record this query in the history log",
					},
				},
			},
			{
				Name:      "sources",
				Usage:     "Show which transcripts back the answer to a question",
				ArgsUsage: "QUESTION",
				Action:    sourcesCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "mode",
						Aliases: []string{"m"},
						Usage:   "Retrieval mode (hybrid, local, global, naive)",
						Value:   "hybrid",
					},
					&cli.StringFlag{
						Name:    "working-dir",
						Aliases: []string{"w"},
						Usage:   "Engine working directory with the side-tables",
					},
				},
			},
			{
				Name:   "status",
				Usage:  "Report index and vector store status",
				Action: statusCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "working-dir",
						Aliases: []string{"w"},
						Usage:   "Engine working directory with the side-tables",
					},
				},
			},
			{
				Name:   "history",
				Usage:  "List recent queries",
				Action: historyCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "Number of entries to show",
						Value:   10,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func buildCommand(c *cli.Context) error {
	ctx := context.Background()

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if !c.Bool("skip-verify") {
		if err := openai.VerifyCredentials(ctx, cfg.OpenAIKey, ""); err != nil {
			return err
		}
	}

	if cfg.UseQdrant {
		status, err := lightrag.ProbeQdrant(ctx, cfg.QdrantURL)
		if err != nil {
			return err
		}
		if !status.Reachable {
			fmt.Fprintf(os.Stderr, "warning: qdrant unreachable at %s\n", cfg.QdrantURL)
		} else if !status.HasCollection(cfg.QdrantCollection) {
			fmt.Fprintf(os.Stderr, "note: collection %q not created yet\n", cfg.QdrantCollection)
		}
	}

	docs, err := ingestion.CollectDocuments(cfg.DataDir)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		return fmt.Errorf("no transcript files found in %s", cfg.DataDir)
	}

	processed := kvstore.LoadProcessedSet(cfg.WorkingDir)

	eng, err := newEngine(cfg)
	if err != nil {
		return err
	}
	defer eng.Close()

	scheduler, err := ingestion.NewScheduler(eng,
		ingestion.WithConcurrency(cfg.Concurrency),
		ingestion.WithBatchLimit(cfg.MaxDocuments),
		ingestion.WithProgressWriter(os.Stderr),
	)
	if err != nil {
		return err
	}
	defer scheduler.Release()

	fmt.Fprintf(os.Stderr, "Found %d transcripts in %s\n", len(docs), cfg.DataDir)

	report, err := scheduler.Run(ctx, docs, processed)
	if err != nil {
		return err
	}

	printReport(report)

	if report.Failed > 0 {
		return fmt.Errorf("%d of %d documents failed", report.Failed, report.Scheduled)
	}
	return nil
}

func queryCommand(c *cli.Context) error {
	ctx := context.Background()

	question, err := questionArg(c)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	mode, err := engine.ParseMode(c.String("mode"))
	if err != nil {
		return err
	}

	eng, err := newEngine(cfg)
	if err != nil {
		return err
	}
	defer eng.Close()

	started := time.Now()
	answer, err := eng.Query(ctx, question, mode, false)
	if err != nil {
		return err
	}
	elapsed := time.Since(started)

	fmt.Println(answer)
	fmt.Fprintf(os.Stderr, "\n(%s mode, %s)\n", mode, elapsed.Round(time.Millisecond))

	if c.Bool("no-history") {
		return nil
	}

	store, err := openHistory(cfg)
	if err != nil {
		// A broken history log should not invalidate a delivered answer.
		slog.Warn("history unavailable", "err", err)
		return nil
	}
	defer store.Close()

	_, err = store.Append(ctx, &core.QueryRecord{
		Question: question,
		Mode:     string(mode),
		Answer:   answer,
		Duration: elapsed,
	})
	if err != nil {
		slog.Warn("failed to record query", "err", err)
	}
	return nil
}

func sourcesCommand(c *cli.Context) error {
	ctx := context.Background()

	question, err := questionArg(c)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	mode, err := engine.ParseMode(c.String("mode"))
	if err != nil {
		return err
	}

	eng, err := newEngine(cfg)
	if err != nil {
		return err
	}
	defer eng.Close()

	rawContext, err := eng.Query(ctx, question, mode, true)
	if err != nil {
		return err
	}

	resolver, err := provenance.FromWorkingDir(cfg.WorkingDir)
	if err != nil {
		return err
	}

	passages := resolver.Resolve(rawContext)
	if len(passages) == 0 {
		fmt.Println("No supporting context returned.")
		return nil
	}

	groups := provenance.Group(passages)
	fmt.Printf("Retrieved %d passages from %d sources:\n", len(passages), len(groups))

	for _, group := range groups {
		fmt.Printf("\n=== %s (%d passages) ===\n", group.Source, len(group.Passages))
		for _, passage := range group.Passages {
			if passage.ChunkID != "" {
				fmt.Printf("\n[%s]\n", passage.ChunkID)
			} else {
				fmt.Println("\n[unmatched]")
			}
			fmt.Println(truncate(passage.Content, displayLimit))
		}
	}
	return nil
}

func statusCommand(c *cli.Context) error {
	ctx := context.Background()

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	if cfg.OpenAIKey == "" {
		fmt.Println("OpenAI key:        missing (set OPENAI_API_KEY)")
	} else if err := openai.VerifyCredentials(ctx, cfg.OpenAIKey, ""); err != nil {
		fmt.Printf("OpenAI key:        set, but probe failed: %v\n", err)
	} else {
		fmt.Println("OpenAI key:        verified")
	}

	docs, err := ingestion.CollectDocuments(cfg.DataDir)
	if err != nil {
		return err
	}
	var totalBytes int64
	for _, doc := range docs {
		if info, err := os.Stat(doc.Path); err == nil {
			totalBytes += info.Size()
		}
	}
	fmt.Printf("Transcripts:       %d in %s (%.1f MB)\n",
		len(docs), cfg.DataDir, float64(totalBytes)/(1024*1024))

	meta := kvstore.Load(cfg.WorkingDir)

	fmt.Printf("Working directory: %s\n", cfg.WorkingDir)
	fmt.Printf("Documents indexed: %d\n", len(meta.DocStatus))
	fmt.Printf("Chunks stored:     %d\n", len(meta.Chunks))
	for _, name := range []string{kvstore.ChunksFile, kvstore.FullDocsFile, kvstore.DocStatusFile} {
		if _, err := os.Stat(filepath.Join(cfg.WorkingDir, name)); err != nil {
			fmt.Printf("  %s: absent\n", name)
		}
	}

	byStatus := map[string]int{}
	for _, record := range meta.DocStatus {
		byStatus[record.Status]++
	}
	for status, count := range byStatus {
		fmt.Printf("  %-12s %d\n", status, count)
	}

	if !cfg.UseQdrant {
		return nil
	}

	status, err := lightrag.ProbeQdrant(ctx, cfg.QdrantURL)
	if err != nil {
		return err
	}
	if !status.Reachable {
		fmt.Printf("Qdrant:            unreachable at %s\n", cfg.QdrantURL)
		return nil
	}

	fmt.Printf("Qdrant:            %s (v%s)\n", cfg.QdrantURL, status.Version)
	if status.HasCollection(cfg.QdrantCollection) {
		fmt.Printf("Collection:        %s\n", cfg.QdrantCollection)
	} else {
		fmt.Printf("Collection:        %s (missing)\n", cfg.QdrantCollection)
	}
	return nil
}

func historyCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	store, err := openHistory(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.Recent(context.Background(), c.Int("limit"))
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Println("No queries recorded yet.")
		return nil
	}

	for _, record := range records {
		fmt.Printf("%s  [%s, %s]\n  %s\n",
			record.Timestamp.Local().Format("2006-01-02 15:04"),
			record.Mode,
			record.Duration.Round(time.Millisecond),
			record.Question)
	}
	return nil
}

// loadConfig builds the config from the environment, then lets command
// flags override it.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return nil, err
	}

	if v := c.String("data-dir"); v != "" {
		cfg.DataDir = v
	}
	if v := c.String("working-dir"); v != "" {
		cfg.WorkingDir = v
		cfg.HistoryDir = ""
	}
	if v := c.Int("max"); v > 0 {
		cfg.MaxDocuments = v
	}
	if v := c.Int("concurrency"); v > 0 {
		cfg.Concurrency = v
	}

	cfg.Normalize()
	return cfg, nil
}

func newEngine(cfg *config.Config) (engine.Engine, error) {
	return lightrag.NewClient(engine.NewConfig(engine.WithBaseURL(cfg.LightRAGURL)))
}

func openHistory(cfg *config.Config) (history.Store, error) {
	backend, err := historybadger.OpenBackend(cfg.HistoryDir, false)
	if err != nil {
		return nil, err
	}
	return historybadger.NewStore(backend)
}

func questionArg(c *cli.Context) (string, error) {
	question := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if question == "" {
		return "", fmt.Errorf("a question is required")
	}
	return question, nil
}

func printReport(report *core.IngestReport) {
	fmt.Fprintln(os.Stderr)
	fmt.Fprintf(os.Stderr, "Scheduled:  %d\n", report.Scheduled)
	fmt.Fprintf(os.Stderr, "Successful: %d\n", report.Successful)
	fmt.Fprintf(os.Stderr, "Failed:     %d\n", report.Failed)
	fmt.Fprintf(os.Stderr, "Skipped:    %d (already indexed)\n", report.Skipped)
	fmt.Fprintf(os.Stderr, "Duration:   %s (%.1fs/doc)\n",
		report.Duration.Round(time.Second), report.SecondsPerDocument())

	for _, outcome := range report.Outcomes {
		if !outcome.Succeeded {
			fmt.Fprintf(os.Stderr, "  failed %s: %s\n", outcome.DocID, outcome.Error)
		}
	}
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
