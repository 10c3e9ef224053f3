package chat

import "codeberg.org/libroteca/server/internal/rag"

// Request represents the request body for a catalog question
type Request struct {
	Question string `json:"question" binding:"required"`

	// how many books to retrieve; zero falls back to the pipeline default
	K int `json:"k"`

	// similarity score in [0,1]; nil falls back to the pipeline default
	SimilarityThreshold *float64 `json:"similarity_threshold"`
}

// Response represents the answered question
type Response struct {
	Answer             string                   `json:"answer"`
	Sources            []string                 `json:"sources"`
	RecommendedBooks   []rag.BookRecommendation `json:"recommended_books"`
	SearchIntent       string                   `json:"search_intent"`
	FoundExactMatch    bool                     `json:"found_exact_match"`
	ProcessingMetadata rag.Metadata             `json:"processing_metadata"`
}
