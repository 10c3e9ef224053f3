package search

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "codeberg.org/libroteca/server/internal/errors"
	"codeberg.org/libroteca/server/internal/retriever"
)

// runs a similarity search and returns the hits with their 2-D positions
func Handler(client *retriever.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req Request

		if err := c.ShouldBindJSON(&req); err != nil {
			apperrors.ValidationError(c, err)
			return
		}

		threshold := 0.0
		if req.Threshold != nil {
			threshold = *req.Threshold
		}

		result, err := client.Search(c.Request.Context(), req.Query, threshold)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}

		c.JSON(http.StatusOK, result)
	}
}
