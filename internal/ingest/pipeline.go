// Package ingest loads book batches into the catalog, deduplicating on exact
// title and embedding only the titles that are actually new. Progress is
// streamed to the caller as events on a channel that closes when the run ends,
// successfully or not.
package ingest

import (
	"context"
	"fmt"
	"log/slog"

	"codeberg.org/libroteca/server/internal/llm"
	"codeberg.org/libroteca/server/internal/store"
)

// Kind labels a progress event.
type Kind string

const (
	KindStarted   Kind = "started"
	KindSkipped   Kind = "skipped"
	KindEmbedding Kind = "embedding"
	KindInserted  Kind = "inserted"
	KindSummary   Kind = "summary"
	KindFailed    Kind = "failed"
)

// Event is one progress notification. A KindFailed event is always terminal;
// KindSummary closes a successful run.
type Event struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

// Item is one incoming catalog record, before embedding.
type Item struct {
	Title       string `json:"title" binding:"required"`
	Author      string `json:"author" binding:"required"`
	Description string `json:"description" binding:"required"`
}

// Pipeline ingests batches against a store using the embedder for the new
// titles. Deduplication and insertion are separate round trips, so a title
// ingested concurrently by two batches can be stored twice; retrieval
// tolerates duplicates and the catalog has no uniqueness constraint.
type Pipeline struct {
	store    store.Store
	embedder llm.Embedder
	log      *slog.Logger
}

func NewPipeline(st store.Store, embedder llm.Embedder, log *slog.Logger) *Pipeline {
	return &Pipeline{
		store:    st,
		embedder: embedder,
		log:      log,
	}
}

// Run processes the batch in the background and returns the event stream.
// The channel is closed once the run finishes; inserts that already happened
// before a failure are not rolled back.
func (p *Pipeline) Run(ctx context.Context, items []Item) <-chan Event {
	events := make(chan Event)

	go func() {
		defer close(events)
		p.run(ctx, items, events)
	}()

	return events
}

func (p *Pipeline) run(ctx context.Context, items []Item, events chan<- Event) {
	if len(items) == 0 {
		events <- Event{Kind: KindFailed, Message: "batch contains no books"}
		return
	}

	if err := p.store.EnsureSchema(ctx); err != nil {
		p.fail(events, "failed to prepare schema", err)
		return
	}

	events <- Event{Kind: KindStarted, Message: fmt.Sprintf("processing %d books", len(items))}

	existing, err := p.store.ListTitles(ctx)
	if err != nil {
		p.fail(events, "failed to list existing titles", err)
		return
	}

	// dedupe against the store snapshot and within the batch itself
	var newItems []Item

	for _, item := range items {
		if _, ok := existing[item.Title]; ok {
			events <- Event{Kind: KindSkipped, Message: fmt.Sprintf("skipping %q, already in the catalog", item.Title)}
			continue
		}

		existing[item.Title] = struct{}{}
		newItems = append(newItems, item)
	}

	if len(newItems) == 0 {
		events <- Event{Kind: KindSummary, Message: summaryMessage(0, len(items))}
		return
	}

	events <- Event{Kind: KindEmbedding, Message: fmt.Sprintf("embedding %d new books", len(newItems))}

	embeddings, err := p.embedBatch(ctx, newItems)
	if err != nil {
		p.fail(events, "failed to embed batch", err)
		return
	}

	if len(embeddings) != len(newItems) {
		p.fail(events, "embedding batch size mismatch", fmt.Errorf("got %d embeddings for %d books", len(embeddings), len(newItems)))
		return
	}

	inserted := 0

	for i, item := range newItems {
		book := store.Book{
			Title:       item.Title,
			Author:      item.Author,
			Description: item.Description,
			Embedding:   embeddings[i],
		}

		if err := p.store.Insert(ctx, book); err != nil {
			p.fail(events, fmt.Sprintf("failed to insert %q", item.Title), err)
			return
		}

		inserted++
		events <- Event{Kind: KindInserted, Message: fmt.Sprintf("inserted %q by %s", item.Title, item.Author)}
	}

	events <- Event{Kind: KindSummary, Message: summaryMessage(inserted, len(items)-inserted)}
}

// embedBatch offloads the blocking batch call to a worker goroutine so that a
// cancelled context unblocks the event stream immediately. Only descriptions
// are embedded; queries against the catalog compare to description vectors.
func (p *Pipeline) embedBatch(ctx context.Context, items []Item) ([][]float32, error) {
	texts := make([]string, 0, len(items))
	for _, item := range items {
		texts = append(texts, item.Description)
	}

	type result struct {
		embeddings [][]float32
		err        error
	}

	results := make(chan result, 1)

	go func() {
		embeddings, err := p.embedder.GenerateEmbeddings(ctx, texts)
		results <- result{embeddings: embeddings, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-results:
		return res.embeddings, res.err
	}
}

func (p *Pipeline) fail(events chan<- Event, msg string, err error) {
	p.log.Error("ingestion failed", "error", err, "detail", msg)
	events <- Event{Kind: KindFailed, Message: fmt.Sprintf("%s: %v", msg, err)}
}

func summaryMessage(inserted, skipped int) string {
	return fmt.Sprintf("done: %d inserted, %d skipped", inserted, skipped)
}
