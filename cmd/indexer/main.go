// Command indexer embeds the site's source content (resume YAML and blog
// posts) and upserts it into the pgvector index the chat assistant retrieves
// from. Safe to re-run: unchanged documents are skipped by content hash.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/karthikcsq/personalsite/internal/config"
	"github.com/karthikcsq/personalsite/internal/database"
	"github.com/karthikcsq/personalsite/internal/ingest"
	"github.com/karthikcsq/personalsite/internal/rag"
	"github.com/karthikcsq/personalsite/internal/vectorindex"
)

func main() {
	migrationsPath := flag.String("migrations", "migrations", "path to SQL migrations")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("loading config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	if err := database.RunMigrations(cfg.DB.DSN(), *migrationsPath); err != nil {
		slog.Error("running migrations", "error", err)
		os.Exit(1)
	}

	pool, err := database.NewPostgresPool(ctx, cfg.DB)
	if err != nil {
		slog.Error("connecting to postgres", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	embedder, err := rag.NewOpenAIEmbedder(cfg.OpenAI)
	if err != nil {
		slog.Error("creating embedder", "error", err)
		os.Exit(1)
	}

	svc := ingest.NewService(
		embedder,
		vectorindex.NewPostgresIndex(pool),
		cfg.Content.WorkFile,
		cfg.Content.BlogDir,
	)

	stats, err := svc.Run(ctx)
	if err != nil {
		slog.Error("indexing failed", "error", err)
		os.Exit(1)
	}
	slog.Info("done", "total", stats.Total, "indexed", stats.Indexed, "skipped", stats.Skipped)
}
