package search

import (
	"github.com/gin-gonic/gin"

	"codeberg.org/libroteca/server/internal/retriever"
)

// registers the similarity search route
func RegisterRoutes(router *gin.RouterGroup, client *retriever.Client) {
	router.POST("/search", Handler(client))
}
