package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
)

const requestTimeout = 90 * time.Second

// one rendered entry in the conversation transcript
type entry struct {
	role    string // "you" or "libroteca"
	content string
}

// main TUI application model
type Model struct {
	input           textinput.Model
	viewport        viewport.Model
	spinner         spinner.Model
	glamourRenderer *glamour.TermRenderer
	client          *Client
	history         []entry
	isFetching      bool
	ready           bool
	width           int
	height          int
	err             error
}

// sent when the chat endpoint answers
type ChatResponseMsg struct {
	question string
	answer   string
	sources  []string
	intent   string
}

// sent when the search endpoint answers
type SearchResponseMsg struct {
	query   string
	summary string
}

// sent when a request fails
type APIErrorMsg struct {
	err error
}

type chatRequest struct {
	Question string `json:"question"`
}

type chatResponse struct {
	Answer          string   `json:"answer"`
	Sources         []string `json:"sources"`
	SearchIntent    string   `json:"search_intent"`
	FoundExactMatch bool     `json:"found_exact_match"`
}

type searchRequest struct {
	Query string `json:"query"`
}

type searchResponse struct {
	Results []struct {
		Title  string  `json:"title"`
		Author string  `json:"author"`
		Score  float64 `json:"similarity_score"`
	} `json:"results"`
}

type apiErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
