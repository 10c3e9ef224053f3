// Package rag runs catalog questions through a fixed linear pipeline:
// retrieve similar books, classify the question's intent, assemble a prompt
// context, and generate an answer. Stages always run in that order and the
// first failing stage aborts the run.
package rag

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	apperrors "codeberg.org/libroteca/server/internal/errors"
	"codeberg.org/libroteca/server/internal/intent"
	"codeberg.org/libroteca/server/internal/llm"
	"codeberg.org/libroteca/server/internal/similarity"
)

const (
	// DefaultK bounds retrieval when the caller does not say how many
	// neighbors they want.
	DefaultK = 5

	// DefaultSimilarityThreshold is deliberately permissive so that
	// conversational questions still surface loosely related books.
	DefaultSimilarityThreshold = 0.3

	maxAnswerTokens = 1024
)

// shown verbatim when no text generator is configured; the catalog's primary
// audience is Spanish-speaking
const unavailableAnswer = "Lo siento, el servicio de generación de respuestas no está disponible en este momento. Aún así, estos son los libros del catálogo más relacionados con tu consulta."

const generatorMissingNote = "generator not configured"

// Pipeline wires the retrieval store, the embedder, and an optional text
// generator into the four-stage answer flow. A nil generator is valid and
// produces degraded retrieval-only answers.
type Pipeline struct {
	searcher  Searcher
	embedder  llm.Embedder
	generator llm.TextGenerator
	log       *slog.Logger
}

func NewPipeline(searcher Searcher, embedder llm.Embedder, generator llm.TextGenerator, log *slog.Logger) *Pipeline {
	return &Pipeline{
		searcher:  searcher,
		embedder:  embedder,
		generator: generator,
		log:       log,
	}
}

// Run executes the stages in order and returns the final state. k and
// threshold fall back to the defaults when zero or negative; an out-of-range
// threshold fails validation before any stage runs.
func (p *Pipeline) Run(ctx context.Context, question string, k int, threshold float64) (*State, error) {
	if strings.TrimSpace(question) == "" {
		return nil, apperrors.Validation("question must not be empty")
	}

	if k <= 0 {
		k = DefaultK
	}

	if threshold <= 0 {
		threshold = DefaultSimilarityThreshold
	}

	state := &State{
		Question:            question,
		K:                   k,
		SimilarityThreshold: threshold,
	}

	stages := []func(context.Context, *State) error{
		p.retrieve,
		p.classifyIntent,
		p.prepareContext,
		p.generate,
	}

	for _, stage := range stages {
		if err := stage(ctx, state); err != nil {
			return nil, err
		}
	}

	return state, nil
}

// stage 1: embed the question and pull the closest catalog entries
func (p *Pipeline) retrieve(ctx context.Context, state *State) error {
	maxDistance, err := similarity.ThresholdToDistance(state.SimilarityThreshold)
	if err != nil {
		return err
	}

	embedding, err := p.embedder.GenerateEmbedding(ctx, state.Question)
	if err != nil {
		return fmt.Errorf("failed to embed question: %w", err)
	}

	matches, err := p.searcher.Search(ctx, embedding, maxDistance, state.K)
	if err != nil {
		return err
	}

	state.Documents = make([]RetrievedDocument, 0, len(matches))
	for _, match := range matches {
		state.Documents = append(state.Documents, RetrievedDocument{
			Title:       match.Book.Title,
			Author:      match.Book.Author,
			Description: match.Book.Description,
			Score:       similarity.DistanceToScore(match.Distance),
			Embedding:   match.Book.Embedding,
		})
	}

	state.Metadata.DocumentsRetrieved = len(state.Documents)
	state.Metadata.RetrievedAt = time.Now().UTC()

	p.log.Debug("retrieved documents", "question", state.Question, "count", len(state.Documents))

	return nil
}

// stage 2: decide what the question is after
func (p *Pipeline) classifyIntent(_ context.Context, state *State) error {
	candidates := make([]intent.Candidate, 0, len(state.Documents))
	for _, doc := range state.Documents {
		candidates = append(candidates, intent.Candidate{Title: doc.Title, Score: doc.Score})
	}

	state.Intent, state.FoundExactMatch = intent.Classify(state.Question, candidates)
	state.Metadata.IntentAnalyzedAt = time.Now().UTC()

	return nil
}

// stage 3: assemble the prompt context and the answer-facing source list
func (p *Pipeline) prepareContext(_ context.Context, state *State) error {
	var sb strings.Builder

	state.Sources = make([]string, 0, len(state.Documents))
	for i, doc := range state.Documents {
		if i > 0 {
			sb.WriteString("\n\n")
		}

		sb.WriteString("Title: " + doc.Title + "\n")
		sb.WriteString("Author: " + doc.Author + "\n")
		sb.WriteString("Description: " + doc.Description)

		state.Sources = append(state.Sources, fmt.Sprintf("%s por %s", doc.Title, doc.Author))
	}

	state.Context = sb.String()

	// every retrieved document doubles as a recommendation candidate, whatever
	// the classified intent turned out to be
	state.Recommendations = make([]BookRecommendation, 0, len(state.Documents))
	for _, doc := range state.Documents {
		state.Recommendations = append(state.Recommendations, BookRecommendation{
			Title:  doc.Title,
			Author: doc.Author,
			Score:  doc.Score,
		})
	}

	state.Metadata.ContextLength = len(state.Context)
	state.Metadata.SourcesCount = distinctCount(state.Sources)

	return nil
}

func distinctCount(values []string) int {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		seen[v] = struct{}{}
	}

	return len(seen)
}

// stage 4: ask the generator for an answer, or degrade when there is none
func (p *Pipeline) generate(ctx context.Context, state *State) error {
	if p.generator == nil {
		state.Answer = unavailableAnswer
		state.Metadata.Error = generatorMissingNote
		state.Metadata.ResponseLength = len(state.Answer)
		state.Metadata.GeneratedAt = time.Now().UTC()

		p.log.Warn("answering without a text generator", "question", state.Question)

		return nil
	}

	resp, err := p.generator.GenerateText(ctx, llm.TextGenerationRequest{
		SystemPrompt: buildSystemPrompt(state),
		Messages: []llm.Message{
			{Role: "user", Content: buildUserMessage(state.Question)},
		},
		MaxTokens: maxAnswerTokens,
	})
	if err != nil {
		return apperrors.Generation(err)
	}

	state.Answer = resp.Text
	state.Metadata.ResponseLength = len(state.Answer)
	state.Metadata.GeneratedAt = time.Now().UTC()
	state.Metadata.Model = p.generator.Model()

	return nil
}
