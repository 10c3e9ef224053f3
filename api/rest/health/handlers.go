package health

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "codeberg.org/libroteca/server/internal/errors"
	"codeberg.org/libroteca/server/internal/llm"
)

type Counter interface {
	Count(ctx context.Context) (int, error)
}

// returns the server health status
func Handler(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Status:  "healthy",
		Service: "libroteca",
		Version: "1.0.0",
	})
}

// reports chat readiness: catalog size plus whether answers are generated or
// degraded to retrieval-only
func ChatHandler(counter Counter, generator llm.TextGenerator) gin.HandlerFunc {
	return func(c *gin.Context) {
		count, err := counter.Count(c.Request.Context())
		if err != nil {
			apperrors.Respond(c, err)
			return
		}

		resp := ChatResponse{
			Status:           "healthy",
			BooksInCatalog:   count,
			GeneratorEnabled: generator != nil,
		}

		if generator != nil {
			resp.Model = generator.Model()
		} else {
			resp.Status = "degraded"
		}

		c.JSON(http.StatusOK, resp)
	}
}
