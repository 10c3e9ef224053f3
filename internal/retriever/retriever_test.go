package retriever

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "codeberg.org/libroteca/server/internal/errors"
	"codeberg.org/libroteca/server/internal/similarity"
	"codeberg.org/libroteca/server/internal/store"
)

type mockEmbedder struct {
	vector []float32
	err    error
}

func (m *mockEmbedder) GenerateEmbedding(_ context.Context, _ string) ([]float32, error) {
	return m.vector, m.err
}

func (m *mockEmbedder) GenerateEmbeddings(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = m.vector
	}

	return out, m.err
}

func unitVector(index int) []float32 {
	v := make([]float32, similarity.Dimensions)
	v[index] = 1
	return v
}

func TestSearchRejectsEmptyQuery(t *testing.T) {
	client := NewClient(store.NewMemory(), &mockEmbedder{vector: unitVector(0)})

	_, err := client.Search(context.Background(), "  ", 0)

	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestSearchRejectsBadThreshold(t *testing.T) {
	client := NewClient(store.NewMemory(), &mockEmbedder{vector: unitVector(0)})

	_, err := client.Search(context.Background(), "realismo mágico", 2)

	assert.ErrorIs(t, err, apperrors.ErrDomain)
}

func TestSearchEmptyCatalog(t *testing.T) {
	client := NewClient(store.NewMemory(), &mockEmbedder{vector: unitVector(0)})

	result, err := client.Search(context.Background(), "realismo mágico", 0)
	require.NoError(t, err)

	assert.Empty(t, result.Books)
	assert.Empty(t, result.Query2D)
}

func TestSearchReturnsProjectedHits(t *testing.T) {
	ctx := context.Background()
	memory := store.NewMemory()

	require.NoError(t, memory.Insert(ctx, store.Book{
		Title:       "Cien años de soledad",
		Author:      "Gabriel García Márquez",
		Description: "Macondo",
		Embedding:   unitVector(0),
	}))
	require.NoError(t, memory.Insert(ctx, store.Book{
		Title:       "Rayuela",
		Author:      "Julio Cortázar",
		Description: "París y Buenos Aires",
		Embedding:   unitVector(1),
	}))

	client := NewClient(memory, &mockEmbedder{vector: unitVector(0)})

	result, err := client.Search(ctx, "la familia Buendía", 0.3)
	require.NoError(t, err)
	require.NotEmpty(t, result.Books)

	// closest hit first, every hit carries a 2-D position
	assert.Equal(t, "Cien años de soledad", result.Books[0].Title)
	assert.InDelta(t, 1.0, result.Books[0].Score, 1e-9)
	assert.Len(t, result.Query2D, 2)

	for _, book := range result.Books {
		assert.Len(t, book.Position2D, 2)
	}
}
