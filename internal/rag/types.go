package rag

import (
	"context"
	"time"

	"codeberg.org/libroteca/server/internal/intent"
	"codeberg.org/libroteca/server/internal/store"
)

// Searcher is the slice of the catalog store the pipeline needs.
type Searcher interface {
	Search(ctx context.Context, embedding []float32, maxDistance float64, k int) ([]store.Match, error)
}

// RetrievedDocument is a catalog entry pulled in for a question, carrying its
// similarity score in [0,1] rather than the raw distance.
type RetrievedDocument struct {
	Title       string
	Author      string
	Description string
	Score       float64
	Embedding   []float32
}

// BookRecommendation is the answer-facing shape of a retrieved document.
type BookRecommendation struct {
	Title  string  `json:"title"`
	Author string  `json:"author"`
	Score  float64 `json:"similarity_score"`
}

// Metadata accumulates processing facts across the stages. Every field is
// typed; consumers never dig through loosely typed maps.
type Metadata struct {
	DocumentsRetrieved int       `json:"documents_retrieved"`
	RetrievedAt        time.Time `json:"retrieved_at,omitzero"`
	IntentAnalyzedAt   time.Time `json:"intent_analyzed_at,omitzero"`
	ContextLength      int       `json:"context_length"`
	SourcesCount       int       `json:"sources_count"`
	ResponseLength     int       `json:"response_length"`
	GeneratedAt        time.Time `json:"generated_at,omitzero"`
	Model              string    `json:"model,omitempty"`
	Error              string    `json:"error,omitempty"`
}

// State is the single value threaded through the pipeline stages. Each stage
// reads what earlier stages wrote and adds its own fields.
type State struct {
	Question            string
	K                   int
	SimilarityThreshold float64

	Documents       []RetrievedDocument
	Intent          intent.Intent
	FoundExactMatch bool

	Context         string
	Sources         []string
	Recommendations []BookRecommendation

	Answer   string
	Metadata Metadata
}
