package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// loads configuration from environment variables
func LoadEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have .env file
	}

	databaseURL := os.Getenv("DATABASE_URL")
	openaiKey := os.Getenv("OPENAI_API_KEY")
	googleKey := os.Getenv("GOOGLE_API_KEY")
	environment := os.Getenv("ENVIRONMENT")

	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	if openaiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required")
	}

	// GOOGLE_API_KEY is intentionally optional: without it the chat endpoint
	// still serves retrieval results with a fixed unavailability answer

	if environment == "" {
		environment = "development"
	}

	return &Config{
		DatabaseURL: databaseURL,
		OpenAIKey:   openaiKey,
		GoogleAIKey: googleKey,
		Environment: environment,
	}, nil
}
