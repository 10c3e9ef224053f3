package health

// Response represents the basic health check response
type Response struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version,omitempty"`
}

// ChatResponse reports whether the conversational endpoint is fully usable
type ChatResponse struct {
	Status           string `json:"status"`
	BooksInCatalog   int    `json:"books_in_catalog"`
	GeneratorEnabled bool   `json:"generator_enabled"`
	Model            string `json:"model,omitempty"`
}
