package search

// Request represents the request body for a similarity search
type Request struct {
	Query string `json:"query" binding:"required"`

	// similarity score in [0,1]; nil falls back to the search default
	Threshold *float64 `json:"threshold"`
}
