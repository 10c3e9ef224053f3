package chat

import (
	"github.com/gin-gonic/gin"

	"codeberg.org/libroteca/server/internal/rag"
)

// registers the conversational route
func RegisterRoutes(router *gin.RouterGroup, pipeline *rag.Pipeline) {
	router.POST("/chat", Handler(pipeline))
}
