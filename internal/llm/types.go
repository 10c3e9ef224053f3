package llm

import "context"

// generates embeddings from text
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
	GenerateEmbeddings(ctx context.Context, texts []string) ([][]float32, error)
}

// generates natural-language text, optionally invoking a declared tool
type TextGenerator interface {
	GenerateText(ctx context.Context, req TextGenerationRequest) (*TextGenerationResponse, error)
	Model() string
}

// represents a single conversation turn
type Message struct {
	Role    string `json:"role"`    // "user" or "model"
	Content string `json:"content"` // message content
}

// describes a capability the generator may invoke during a call
type ToolDeclaration struct {
	Name        string
	Description string
	Parameters  map[string]any // JSON-schema style parameter description
}

// records that the generator chose to invoke a declared tool, and with what
// arguments. Consumers get this as a typed outcome; nobody inspects raw call
// histories.
type ToolCall struct {
	Name      string
	Arguments map[string]any
}

type TextGenerationRequest struct {
	SystemPrompt string
	Messages     []Message
	MaxTokens    int
	Tools        []ToolDeclaration
}

type TextGenerationResponse struct {
	Text     string
	ToolCall *ToolCall // nil unless the model invoked a tool
	Usage    Usage
}

type Usage struct {
	InputTokens  int
	OutputTokens int
}
