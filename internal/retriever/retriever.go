// Package retriever serves direct catalog similarity searches, pairing each
// result with a 2-D projection of its embedding so clients can plot the query
// against its neighbors.
package retriever

import (
	"context"
	"fmt"
	"strings"

	apperrors "codeberg.org/libroteca/server/internal/errors"
	"codeberg.org/libroteca/server/internal/llm"
	"codeberg.org/libroteca/server/internal/rag"
	"codeberg.org/libroteca/server/internal/similarity"
)

const (
	// DefaultThreshold is stricter than the conversational default because
	// direct search favors precision over chatty recall.
	DefaultThreshold = 0.5

	topK = 5
)

// ScoredBook is one search hit with its plotting position.
type ScoredBook struct {
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Description string    `json:"description"`
	Score       float64   `json:"similarity_score"`
	Position2D  []float64 `json:"embedding_2d"`
}

// Result is a full search response. Query2D and the book positions come from
// one joint projection, so they live in the same plane.
type Result struct {
	Query2D []float64    `json:"query_embedding_2d"`
	Books   []ScoredBook `json:"results"`
}

// Client executes searches against the catalog.
type Client struct {
	searcher rag.Searcher
	embedder llm.Embedder
}

func NewClient(searcher rag.Searcher, embedder llm.Embedder) *Client {
	return &Client{
		searcher: searcher,
		embedder: embedder,
	}
}

// Search embeds the query, retrieves the closest books above the similarity
// threshold, and projects query plus hits into 2-D. A threshold of zero or
// below falls back to the default; an empty catalog yields an empty result.
func (c *Client) Search(ctx context.Context, query string, threshold float64) (*Result, error) {
	if strings.TrimSpace(query) == "" {
		return nil, apperrors.Validation("query must not be empty")
	}

	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	maxDistance, err := similarity.ThresholdToDistance(threshold)
	if err != nil {
		return nil, err
	}

	embedding, err := c.embedder.GenerateEmbedding(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	matches, err := c.searcher.Search(ctx, embedding, maxDistance, topK)
	if err != nil {
		return nil, err
	}

	if len(matches) == 0 {
		return &Result{Books: []ScoredBook{}}, nil
	}

	neighbors := make([][]float32, 0, len(matches))
	for _, match := range matches {
		neighbors = append(neighbors, match.Book.Embedding)
	}

	query2D, neighbors2D, err := similarity.Project2D(embedding, neighbors)
	if err != nil {
		return nil, fmt.Errorf("failed to project embeddings: %w", err)
	}

	books := make([]ScoredBook, 0, len(matches))
	for i, match := range matches {
		books = append(books, ScoredBook{
			Title:       match.Book.Title,
			Author:      match.Book.Author,
			Description: match.Book.Description,
			Score:       similarity.DistanceToScore(match.Distance),
			Position2D:  neighbors2D[i],
		})
	}

	return &Result{Query2D: query2D, Books: books}, nil
}
