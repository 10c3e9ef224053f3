package books

import "codeberg.org/libroteca/server/internal/ingest"

// UploadRequest is the batch payload; every entry needs all three fields
type UploadRequest []ingest.Item

// ListEntry is one row of the catalog listing
type ListEntry struct {
	Title  string `json:"title"`
	Author string `json:"author"`
}

// ListResponse represents the catalog listing
type ListResponse struct {
	Books []ListEntry `json:"books"`
	Total int         `json:"total"`
}
