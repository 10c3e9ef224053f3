package main

import (
	"fmt"

	"codeberg.org/libroteca/server/internal/config"
	"codeberg.org/libroteca/server/internal/ingest"
	"codeberg.org/libroteca/server/internal/llm"
	"codeberg.org/libroteca/server/internal/logger"
	"codeberg.org/libroteca/server/internal/rag"
	"codeberg.org/libroteca/server/internal/retriever"
	"codeberg.org/libroteca/server/internal/store"
)

// creates and configures all service clients and pipelines
func InitializeServices(cfg *config.Config, catalog *store.Client) (*Services, error) {
	embedder, generator, err := llm.NewClients(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM clients: %w", err)
	}

	if generator == nil {
		logger.Warn("no text generator configured, chat answers will be retrieval-only")
	}

	return &Services{
		Embedder:  embedder,
		Generator: generator,
		Rag:       rag.NewPipeline(catalog, embedder, generator, logger.Default()),
		Ingest:    ingest.NewPipeline(catalog, embedder, logger.Default()),
		Retriever: retriever.NewClient(catalog, embedder),
	}, nil
}
