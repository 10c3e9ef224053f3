package ingest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/libroteca/server/internal/logger"
	"codeberg.org/libroteca/server/internal/similarity"
	"codeberg.org/libroteca/server/internal/store"
)

type mockEmbedder struct {
	calls int
	texts []string
	err   error
}

func (m *mockEmbedder) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	out, err := m.GenerateEmbeddings(ctx, []string{text})
	if err != nil {
		return nil, err
	}

	return out[0], nil
}

func (m *mockEmbedder) GenerateEmbeddings(_ context.Context, texts []string) ([][]float32, error) {
	m.calls++
	m.texts = append(m.texts, texts...)

	if m.err != nil {
		return nil, m.err
	}

	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = make([]float32, similarity.Dimensions)
		out[i][i%similarity.Dimensions] = 1
	}

	return out, nil
}

func collect(t *testing.T, events <-chan Event) []Event {
	t.Helper()

	var all []Event
	for event := range events {
		all = append(all, event)
	}

	return all
}

func kinds(events []Event) []Kind {
	out := make([]Kind, 0, len(events))
	for _, event := range events {
		out = append(out, event.Kind)
	}

	return out
}

func TestRunInsertsNewAndSkipsDuplicates(t *testing.T) {
	ctx := context.Background()
	memory := store.NewMemory()

	require.NoError(t, memory.Insert(ctx, store.Book{Title: "Rayuela", Author: "Julio Cortázar"}))

	embedder := &mockEmbedder{}
	pipeline := NewPipeline(memory, embedder, logger.Default())

	events := collect(t, pipeline.Run(ctx, []Item{
		{Title: "Rayuela", Author: "Julio Cortázar", Description: "ya está"},
		{Title: "Ficciones", Author: "Jorge Luis Borges", Description: "cuentos"},
		{Title: "Pedro Páramo", Author: "Juan Rulfo", Description: "Comala"},
	}))

	assert.Equal(t, []Kind{KindStarted, KindSkipped, KindEmbedding, KindInserted, KindInserted, KindSummary}, kinds(events))

	count, err := memory.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	last := events[len(events)-1]
	assert.Equal(t, "done: 2 inserted, 1 skipped", last.Message)

	// only the new books' descriptions go to the embedder, nothing else
	assert.Equal(t, []string{"cuentos", "Comala"}, embedder.texts)
}

// re-running the same batch must not grow the catalog
func TestRunIsIdempotent(t *testing.T) {
	ctx := context.Background()
	memory := store.NewMemory()
	embedder := &mockEmbedder{}
	pipeline := NewPipeline(memory, embedder, logger.Default())

	batch := []Item{
		{Title: "Ficciones", Author: "Jorge Luis Borges", Description: "cuentos"},
		{Title: "Pedro Páramo", Author: "Juan Rulfo", Description: "Comala"},
	}

	collect(t, pipeline.Run(ctx, batch))
	second := collect(t, pipeline.Run(ctx, batch))

	count, err := memory.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	// second run skips everything and never calls the embedder again
	assert.Equal(t, []Kind{KindStarted, KindSkipped, KindSkipped, KindSummary}, kinds(second))
	assert.Equal(t, 1, embedder.calls)
}

func TestRunDeduplicatesWithinBatch(t *testing.T) {
	ctx := context.Background()
	memory := store.NewMemory()
	pipeline := NewPipeline(memory, &mockEmbedder{}, logger.Default())

	events := collect(t, pipeline.Run(ctx, []Item{
		{Title: "Ficciones", Author: "Jorge Luis Borges", Description: "cuentos"},
		{Title: "Ficciones", Author: "Jorge Luis Borges", Description: "repetido"},
	}))

	assert.Equal(t, []Kind{KindStarted, KindSkipped, KindEmbedding, KindInserted, KindSummary}, kinds(events))

	count, err := memory.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRunEmptyBatchFails(t *testing.T) {
	embedder := &mockEmbedder{}
	pipeline := NewPipeline(store.NewMemory(), embedder, logger.Default())

	events := collect(t, pipeline.Run(context.Background(), nil))

	require.Len(t, events, 1)
	assert.Equal(t, KindFailed, events[0].Kind)
	assert.Zero(t, embedder.calls)
}

// an embedder failure ends the stream with a terminal failure event and
// inserts nothing
func TestRunEmbedderFailureIsTerminal(t *testing.T) {
	ctx := context.Background()
	memory := store.NewMemory()
	pipeline := NewPipeline(memory, &mockEmbedder{err: errors.New("quota exhausted")}, logger.Default())

	events := collect(t, pipeline.Run(ctx, []Item{
		{Title: "Ficciones", Author: "Jorge Luis Borges", Description: "cuentos"},
	}))

	require.NotEmpty(t, events)
	assert.Equal(t, KindFailed, events[len(events)-1].Kind)

	count, err := memory.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}
