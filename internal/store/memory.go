package store

import (
	"context"
	"math"
	"sort"
	"sync"
)

// Memory implements Store with a brute-force exact L2 scan. It backs the test
// suite and small local setups where PostgreSQL is overkill.
type Memory struct {
	mu    sync.RWMutex
	books []Book
}

// creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{}
}

// no schema to create for the in-memory variant
func (m *Memory) EnsureSchema(_ context.Context) error {
	return nil
}

func (m *Memory) Search(_ context.Context, embedding []float32, maxDistance float64, k int) ([]Match, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var matches []Match

	for _, book := range m.books {
		d := l2Distance(embedding, book.Embedding)
		if d < maxDistance {
			matches = append(matches, Match{Book: book, Distance: d})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Distance < matches[j].Distance
	})

	if k >= 0 && len(matches) > k {
		matches = matches[:k]
	}

	return matches, nil
}

func (m *Memory) Insert(_ context.Context, book Book) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.books = append(m.books, book)
	return nil
}

func (m *Memory) ListTitles(_ context.Context) (map[string]struct{}, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	titles := make(map[string]struct{}, len(m.books))
	for _, book := range m.books {
		titles[book.Title] = struct{}{}
	}

	return titles, nil
}

func (m *Memory) ListSummaries(_ context.Context) ([]BookSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	summaries := make([]BookSummary, 0, len(m.books))
	for _, book := range m.books {
		summaries = append(summaries, BookSummary{Title: book.Title, Author: book.Author})
	}

	return summaries, nil
}

func (m *Memory) Count(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.books), nil
}

// Euclidean distance with float64 accumulation. Vectors of unequal length are
// compared over the shorter prefix.
func l2Distance(a, b []float32) float64 {
	n := min(len(a), len(b))

	var sum float64

	for i := range n {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}

	return math.Sqrt(sum)
}
