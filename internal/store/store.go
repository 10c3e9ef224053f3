// Package store provides the persistent book catalog with vector similarity
// search. Records are keyed by title: the ingestion pipeline deduplicates on
// exact title match, and there is no update path for stored embeddings.
package store

import "context"

// Book is one catalog record. The embedding is immutable once stored.
type Book struct {
	Title       string
	Author      string
	Description string
	Embedding   []float32
}

// BookSummary is a lightweight listing entry without the embedding payload.
type BookSummary struct {
	Title  string
	Author string
}

// Match pairs a retrieved book with its Euclidean distance to the query.
type Match struct {
	Book     Book
	Distance float64
}

// Store is the vector store contract. Search returns matches ordered by
// ascending distance, at most k of them, all strictly closer than maxDistance.
// Each call is an independent round trip; there is no transactional guarantee
// across calls, so two concurrent batches can both observe a title as absent
// and both insert it (known limitation, see ingest package).
type Store interface {
	EnsureSchema(ctx context.Context) error
	Search(ctx context.Context, embedding []float32, maxDistance float64, k int) ([]Match, error)
	Insert(ctx context.Context, book Book) error
	ListTitles(ctx context.Context) (map[string]struct{}, error)
	ListSummaries(ctx context.Context) ([]BookSummary, error)
	Count(ctx context.Context) (int, error)
}
