package books

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "codeberg.org/libroteca/server/internal/errors"
	"codeberg.org/libroteca/server/internal/ingest"
	"codeberg.org/libroteca/server/internal/logger"
	"codeberg.org/libroteca/server/internal/store"
)

// lists the catalog without embedding payloads
func ListHandler(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		summaries, err := st.ListSummaries(c.Request.Context())
		if err != nil {
			apperrors.Respond(c, err)
			return
		}

		entries := make([]ListEntry, 0, len(summaries))
		for _, summary := range summaries {
			entries = append(entries, ListEntry{Title: summary.Title, Author: summary.Author})
		}

		c.JSON(http.StatusOK, ListResponse{Books: entries, Total: len(entries)})
	}
}

// ingests a batch and streams progress events as newline-delimited JSON.
// The batch is validated up front; once streaming starts, failures arrive as
// terminal events in the stream rather than as HTTP errors.
func UploadHandler(pipeline *ingest.Pipeline) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UploadRequest

		if err := c.ShouldBindJSON(&req); err != nil {
			apperrors.ValidationError(c, err)
			return
		}

		if len(req) == 0 {
			apperrors.Respond(c, apperrors.Validation("batch contains no books"))
			return
		}

		events := pipeline.Run(c.Request.Context(), req)

		c.Header("Content-Type", "application/x-ndjson")
		c.Status(http.StatusOK)

		c.Stream(func(w io.Writer) bool {
			event, ok := <-events
			if !ok {
				return false
			}

			if err := json.NewEncoder(w).Encode(event); err != nil {
				logger.ErrorErr(err, "failed to stream ingestion event")
				return false
			}

			return true
		})
	}
}
