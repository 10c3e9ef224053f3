package llm

import (
	"fmt"

	"codeberg.org/libroteca/server/internal/config"
)

// NewClients builds the embedding and generation clients from configuration.
// The embedder is mandatory. The text generator is optional: without a Google
// AI key the returned generator is nil and callers degrade to retrieval-only
// answers instead of failing.
func NewClients(cfg *config.Config) (Embedder, TextGenerator, error) {
	if cfg.OpenAIKey == "" {
		return nil, nil, fmt.Errorf("openai api key is required for embeddings")
	}

	embedder := NewOpenAIEmbedder(OpenAIConfig{APIKey: cfg.OpenAIKey})

	if cfg.GoogleAIKey == "" {
		return embedder, nil, nil
	}

	generator := NewGeminiGenerator(GeminiConfig{APIKey: cfg.GoogleAIKey})

	return embedder, generator, nil
}
