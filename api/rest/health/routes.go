package health

import (
	"github.com/gin-gonic/gin"

	"codeberg.org/libroteca/server/internal/llm"
)

// registers health check routes
func RegisterRoutes(router *gin.Engine, api *gin.RouterGroup, counter Counter, generator llm.TextGenerator) {
	router.GET("/health", Handler)
	api.GET("/chat/health", ChatHandler(counter, generator))
}
