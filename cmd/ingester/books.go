package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"codeberg.org/libroteca/server/internal/config"
	"codeberg.org/libroteca/server/internal/ingest"
	"codeberg.org/libroteca/server/internal/llm"
	"codeberg.org/libroteca/server/internal/logger"
	"codeberg.org/libroteca/server/internal/store"
)

// reads a JSON file of books and runs it through the ingestion pipeline,
// logging every progress event as it arrives
func IngestBooks(ctx context.Context, cfg *config.Config, db *pgxpool.Pool, flags config.Flags) error {
	logger.Info("starting book ingestion", "path", flags.Path)

	data, err := os.ReadFile(flags.Path)
	if err != nil {
		return fmt.Errorf("failed to read books file: %w", err)
	}

	var items []ingest.Item
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("failed to parse books file: %w", err)
	}

	logger.Info("loaded books from file", "count", len(items))

	// use shared connection pool
	catalog := store.NewClientFromPool(db)
	defer catalog.Close() // no-op since we don't own the pool

	embedder := llm.NewOpenAIEmbedder(llm.OpenAIConfig{APIKey: cfg.OpenAIKey})
	pipeline := ingest.NewPipeline(catalog, embedder, logger.Default())

	failed := false

	for event := range pipeline.Run(ctx, items) {
		switch event.Kind {
		case ingest.KindFailed:
			failed = true
			logger.Error("ingestion event", "kind", event.Kind, "message", event.Message)
		default:
			logger.Info("ingestion event", "kind", event.Kind, "message", event.Message)
		}
	}

	if failed {
		return fmt.Errorf("ingestion finished with errors")
	}

	count, err := catalog.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to verify catalog size: %w", err)
	}

	logger.Info("successfully ingested books", "total_books", count)

	return nil
}
