package rag

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "codeberg.org/libroteca/server/internal/errors"
	"codeberg.org/libroteca/server/internal/intent"
	"codeberg.org/libroteca/server/internal/llm"
	"codeberg.org/libroteca/server/internal/logger"
	"codeberg.org/libroteca/server/internal/similarity"
	"codeberg.org/libroteca/server/internal/store"
)

// mockEmbedder returns a canned vector per input text
type mockEmbedder struct {
	vectors map[string][]float32
	err     error
}

func (m *mockEmbedder) GenerateEmbedding(_ context.Context, text string) ([]float32, error) {
	if m.err != nil {
		return nil, m.err
	}

	if v, ok := m.vectors[text]; ok {
		return v, nil
	}

	return unitVector(0), nil
}

func (m *mockEmbedder) GenerateEmbeddings(_ context.Context, texts []string) ([][]float32, error) {
	if m.err != nil {
		return nil, m.err
	}

	out := make([][]float32, 0, len(texts))
	for _, text := range texts {
		v, err := m.GenerateEmbedding(context.Background(), text)
		if err != nil {
			return nil, err
		}

		out = append(out, v)
	}

	return out, nil
}

// mockGenerator returns canned text and records the last request
type mockGenerator struct {
	text    string
	err     error
	lastReq llm.TextGenerationRequest
}

func (m *mockGenerator) GenerateText(_ context.Context, req llm.TextGenerationRequest) (*llm.TextGenerationResponse, error) {
	m.lastReq = req

	if m.err != nil {
		return nil, m.err
	}

	return &llm.TextGenerationResponse{Text: m.text}, nil
}

func (m *mockGenerator) Model() string {
	return "mock-model"
}

func unitVector(index int) []float32 {
	v := make([]float32, similarity.Dimensions)
	v[index] = 1
	return v
}

func seededStore(t *testing.T) *store.Memory {
	t.Helper()

	memory := store.NewMemory()

	books := []store.Book{
		{Title: "Cien años de soledad", Author: "Gabriel García Márquez", Description: "La saga de la familia Buendía en Macondo.", Embedding: unitVector(0)},
		{Title: "El amor en los tiempos del cólera", Author: "Gabriel García Márquez", Description: "Una historia de amor que espera medio siglo.", Embedding: unitVector(1)},
		{Title: "Rayuela", Author: "Julio Cortázar", Description: "Una novela que puede leerse en varios órdenes.", Embedding: unitVector(2)},
	}

	for _, book := range books {
		require.NoError(t, memory.Insert(context.Background(), book))
	}

	return memory
}

func TestRunRejectsEmptyQuestion(t *testing.T) {
	pipeline := NewPipeline(store.NewMemory(), &mockEmbedder{}, nil, logger.Default())

	_, err := pipeline.Run(context.Background(), "   ", 0, 0)

	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestRunRejectsThresholdAboveOne(t *testing.T) {
	pipeline := NewPipeline(store.NewMemory(), &mockEmbedder{}, nil, logger.Default())

	_, err := pipeline.Run(context.Background(), "¿qué tienen de ciencia ficción?", 0, 1.5)

	assert.ErrorIs(t, err, apperrors.ErrDomain)
}

// without a generator the pipeline still answers, flags the degradation in
// metadata, and returns no error
func TestRunWithoutGeneratorDegrades(t *testing.T) {
	question := "¿Tienes Cien años de soledad?"

	embedder := &mockEmbedder{vectors: map[string][]float32{question: unitVector(0)}}
	pipeline := NewPipeline(seededStore(t), embedder, nil, logger.Default())

	state, err := pipeline.Run(context.Background(), question, 0, 0)
	require.NoError(t, err)

	assert.Equal(t, unavailableAnswer, state.Answer)
	assert.Equal(t, generatorMissingNote, state.Metadata.Error)
	assert.Empty(t, state.Metadata.Model)
	assert.NotEmpty(t, state.Documents)
}

// a question whose embedding coincides with a stored book must come back as an
// exact match with a score of 1.0
func TestRunFindsExactMatch(t *testing.T) {
	question := "¿Tienes Cien años de soledad?"

	embedder := &mockEmbedder{vectors: map[string][]float32{question: unitVector(0)}}
	pipeline := NewPipeline(seededStore(t), embedder, nil, logger.Default())

	state, err := pipeline.Run(context.Background(), question, 5, 0.3)
	require.NoError(t, err)
	require.NotEmpty(t, state.Documents)

	assert.Equal(t, intent.ExactMatch, state.Intent)
	assert.True(t, state.FoundExactMatch)
	assert.Equal(t, "Cien años de soledad", state.Documents[0].Title)
	assert.InDelta(t, 1.0, state.Documents[0].Score, 1e-9)
	assert.Contains(t, state.Sources, "Cien años de soledad por Gabriel García Márquez")

	// recommendations are built from the retrieved documents for every intent,
	// exact matches included
	require.Len(t, state.Recommendations, len(state.Documents))
	assert.Equal(t, "Cien años de soledad", state.Recommendations[0].Title)
	assert.InDelta(t, 1.0, state.Recommendations[0].Score, 1e-9)
}

// duplicate catalog entries produce repeated source strings; the metadata
// counts distinct sources only
func TestRunCountsDistinctSources(t *testing.T) {
	ctx := context.Background()
	memory := store.NewMemory()

	duplicate := store.Book{
		Title:       "Ficciones",
		Author:      "Jorge Luis Borges",
		Description: "cuentos",
		Embedding:   unitVector(0),
	}

	require.NoError(t, memory.Insert(ctx, duplicate))
	require.NoError(t, memory.Insert(ctx, duplicate))

	question := "¿qué cuentos tienen?"
	embedder := &mockEmbedder{vectors: map[string][]float32{question: unitVector(0)}}
	pipeline := NewPipeline(memory, embedder, nil, logger.Default())

	state, err := pipeline.Run(ctx, question, 0, 0)
	require.NoError(t, err)

	require.Len(t, state.Sources, 2)
	assert.Equal(t, 1, state.Metadata.SourcesCount)
}

func TestRunEmptyCatalog(t *testing.T) {
	pipeline := NewPipeline(store.NewMemory(), &mockEmbedder{}, nil, logger.Default())

	state, err := pipeline.Run(context.Background(), "¿qué novedades hay?", 0, 0)
	require.NoError(t, err)

	assert.Empty(t, state.Documents)
	assert.Empty(t, state.Context)
	assert.Empty(t, state.Sources)
	assert.Equal(t, intent.GeneralQuery, state.Intent)
	assert.Zero(t, state.Metadata.DocumentsRetrieved)
}

func TestRunWithGenerator(t *testing.T) {
	// no retrieved title lexically matches this question, so the keyword scan
	// decides and classifies it as a recommendation
	question := "recomienda novelas de realismo mágico"

	embedder := &mockEmbedder{vectors: map[string][]float32{question: unitVector(0)}}
	generator := &mockGenerator{text: "Te recomiendo El amor en los tiempos del cólera."}
	pipeline := NewPipeline(seededStore(t), embedder, generator, logger.Default())

	state, err := pipeline.Run(context.Background(), question, 0, 0)
	require.NoError(t, err)

	assert.Equal(t, generator.text, state.Answer)
	assert.Equal(t, "mock-model", state.Metadata.Model)
	assert.Empty(t, state.Metadata.Error)
	assert.Equal(t, intent.Recommendation, state.Intent)
	assert.NotEmpty(t, state.Recommendations)

	// the generator must see the retrieved context, not just the question
	assert.Contains(t, generator.lastReq.SystemPrompt, "Cien años de soledad")
	require.Len(t, generator.lastReq.Messages, 1)
	assert.Contains(t, generator.lastReq.Messages[0].Content, question)
}

func TestRunGeneratorFailure(t *testing.T) {
	question := "¿Tienes Rayuela?"

	embedder := &mockEmbedder{vectors: map[string][]float32{question: unitVector(2)}}
	generator := &mockGenerator{err: errors.New("upstream exploded")}
	pipeline := NewPipeline(seededStore(t), embedder, generator, logger.Default())

	_, err := pipeline.Run(context.Background(), question, 0, 0)

	assert.ErrorIs(t, err, apperrors.ErrGenerator)
}

func TestRunDefaultsApplied(t *testing.T) {
	question := "novelas latinoamericanas"

	embedder := &mockEmbedder{vectors: map[string][]float32{question: unitVector(1)}}
	pipeline := NewPipeline(seededStore(t), embedder, nil, logger.Default())

	state, err := pipeline.Run(context.Background(), question, 0, 0)
	require.NoError(t, err)

	assert.Equal(t, DefaultK, state.K)
	assert.InDelta(t, DefaultSimilarityThreshold, state.SimilarityThreshold, 1e-9)
}
