package main

import (
	"github.com/gin-gonic/gin"

	"codeberg.org/libroteca/server/api/rest/books"
	"codeberg.org/libroteca/server/api/rest/chat"
	"codeberg.org/libroteca/server/api/rest/health"
	"codeberg.org/libroteca/server/api/rest/search"
	apperrors "codeberg.org/libroteca/server/internal/errors"
)

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server) {
	router.Use(CORSMiddleware())
	router.Use(RateLimitMiddleware())

	router.NoRoute(func(c *gin.Context) {
		apperrors.NotFound(c, "")
	})

	v1 := router.Group("/api/v1")

	{
		health.RegisterRoutes(router, v1, server.catalog, server.services.Generator)
		books.RegisterRoutes(v1, server.catalog, server.services.Ingest)
		search.RegisterRoutes(v1, server.services.Retriever)
		chat.RegisterRoutes(v1, server.services.Rag)
	}
}
