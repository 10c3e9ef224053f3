package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vec(values ...float32) []float32 {
	return values
}

func seedMemory(t *testing.T) *Memory {
	t.Helper()

	ctx := context.Background()
	m := NewMemory()

	books := []Book{
		{Title: "far", Author: "a", Embedding: vec(3, 0)},
		{Title: "near", Author: "b", Embedding: vec(0.1, 0)},
		{Title: "mid", Author: "c", Embedding: vec(1, 0)},
	}

	for _, book := range books {
		require.NoError(t, m.Insert(ctx, book))
	}

	return m
}

func TestMemorySearchOrdersByDistance(t *testing.T) {
	m := seedMemory(t)

	matches, err := m.Search(context.Background(), vec(0, 0), 10, 5)
	require.NoError(t, err)
	require.Len(t, matches, 3)

	assert.Equal(t, "near", matches[0].Book.Title)
	assert.Equal(t, "mid", matches[1].Book.Title)
	assert.Equal(t, "far", matches[2].Book.Title)

	for i := 1; i < len(matches); i++ {
		assert.LessOrEqual(t, matches[i-1].Distance, matches[i].Distance)
	}
}

// the cutoff is strict: a book exactly at maxDistance is excluded
func TestMemorySearchStrictCutoff(t *testing.T) {
	m := seedMemory(t)

	matches, err := m.Search(context.Background(), vec(0, 0), 1, 5)
	require.NoError(t, err)
	require.Len(t, matches, 1)

	assert.Equal(t, "near", matches[0].Book.Title)
}

func TestMemorySearchCapsAtK(t *testing.T) {
	m := seedMemory(t)

	matches, err := m.Search(context.Background(), vec(0, 0), 10, 2)
	require.NoError(t, err)

	assert.Len(t, matches, 2)
	assert.Equal(t, "near", matches[0].Book.Title)
}

func TestMemorySearchEmptyStore(t *testing.T) {
	m := NewMemory()

	matches, err := m.Search(context.Background(), vec(0, 0), 10, 5)
	require.NoError(t, err)

	assert.Empty(t, matches)
}

func TestMemoryListTitles(t *testing.T) {
	m := seedMemory(t)

	titles, err := m.ListTitles(context.Background())
	require.NoError(t, err)

	assert.Len(t, titles, 3)
	assert.Contains(t, titles, "near")
	assert.Contains(t, titles, "mid")
	assert.Contains(t, titles, "far")
}

func TestMemoryListSummaries(t *testing.T) {
	m := seedMemory(t)

	summaries, err := m.ListSummaries(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 3)

	for _, summary := range summaries {
		assert.NotEmpty(t, summary.Title)
		assert.NotEmpty(t, summary.Author)
	}
}

func TestMemoryCount(t *testing.T) {
	m := seedMemory(t)

	count, err := m.Count(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, count)
}
