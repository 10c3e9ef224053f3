package main

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"codeberg.org/libroteca/server/internal/config"
	"codeberg.org/libroteca/server/internal/ingest"
	"codeberg.org/libroteca/server/internal/llm"
	"codeberg.org/libroteca/server/internal/rag"
	"codeberg.org/libroteca/server/internal/retriever"
	"codeberg.org/libroteca/server/internal/store"
)

// holds all dependencies and state for the API server
type Server struct {
	db       *pgxpool.Pool
	config   *config.Config
	catalog  *store.Client
	services *Services
	router   *gin.Engine
}

// holds all external service clients and pipelines
type Services struct {
	Embedder  llm.Embedder
	Generator llm.TextGenerator
	Rag       *rag.Pipeline
	Ingest    *ingest.Pipeline
	Retriever *retriever.Client
}
