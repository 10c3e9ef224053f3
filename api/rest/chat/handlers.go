package chat

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "codeberg.org/libroteca/server/internal/errors"
	"codeberg.org/libroteca/server/internal/rag"
)

// answers a catalog question through the retrieval pipeline
func Handler(pipeline *rag.Pipeline) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req Request

		if err := c.ShouldBindJSON(&req); err != nil {
			apperrors.ValidationError(c, err)
			return
		}

		threshold := 0.0
		if req.SimilarityThreshold != nil {
			threshold = *req.SimilarityThreshold
		}

		state, err := pipeline.Run(c.Request.Context(), req.Question, req.K, threshold)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}

		c.JSON(http.StatusOK, Response{
			Answer:             state.Answer,
			Sources:            state.Sources,
			RecommendedBooks:   state.Recommendations,
			SearchIntent:       string(state.Intent),
			FoundExactMatch:    state.FoundExactMatch,
			ProcessingMetadata: state.Metadata,
		})
	}
}
