package tui

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

// manages HTTP requests to the catalog REST API
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// creates a new catalog REST client
func NewClient() *Client {
	endpoint := os.Getenv("LIBROTECA_API_ENDPOINT")
	if endpoint == "" {
		endpoint = "http://localhost:8080"
	}

	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// asks the chat endpoint a catalog question
func (c *Client) Chat(ctx context.Context, question string) (*ChatResponseMsg, error) {
	var resp chatResponse

	err := c.post(ctx, "/api/v1/chat", chatRequest{Question: question}, &resp)
	if err != nil {
		return nil, err
	}

	return &ChatResponseMsg{
		question: question,
		answer:   resp.Answer,
		sources:  resp.Sources,
		intent:   resp.SearchIntent,
	}, nil
}

// runs a similarity search and condenses the hits into one printable block
func (c *Client) Search(ctx context.Context, query string) (*SearchResponseMsg, error) {
	var resp searchResponse

	err := c.post(ctx, "/api/v1/search", searchRequest{Query: query}, &resp)
	if err != nil {
		return nil, err
	}

	if len(resp.Results) == 0 {
		return &SearchResponseMsg{query: query, summary: "No se encontraron libros para esa búsqueda."}, nil
	}

	var sb bytes.Buffer
	for i, result := range resp.Results {
		fmt.Fprintf(&sb, "%d. **%s** de %s (%.2f)\n", i+1, result.Title, result.Author, result.Score)
	}

	return &SearchResponseMsg{query: query, summary: sb.String()}, nil
}

func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	url := c.endpoint + path

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payloadBytes))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp apiErrorResponse
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
			return fmt.Errorf("%s: %s", errResp.Error, errResp.Message)
		}

		return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	return nil
}

// returns a tea.Cmd that sends a chat request
func (c *Client) ChatCmd(question string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		resp, err := c.Chat(ctx, question)
		if err != nil {
			return APIErrorMsg{err: err}
		}

		return *resp
	}
}

// returns a tea.Cmd that sends a search request
func (c *Client) SearchCmd(query string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		resp, err := c.Search(ctx, query)
		if err != nil {
			return APIErrorMsg{err: err}
		}

		return *resp
	}
}
