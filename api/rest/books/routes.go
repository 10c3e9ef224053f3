package books

import (
	"github.com/gin-gonic/gin"

	"codeberg.org/libroteca/server/internal/ingest"
	"codeberg.org/libroteca/server/internal/store"
)

// registers catalog listing and ingestion routes
func RegisterRoutes(router *gin.RouterGroup, st store.Store, pipeline *ingest.Pipeline) {
	router.GET("/books", ListHandler(st))
	router.POST("/books/upload", UploadHandler(pipeline))
}
