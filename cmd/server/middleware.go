package main

import (
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	limiter "github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// embedding and generation calls are metered upstream, so the API itself
// enforces a modest per-client ceiling
const rateLimitPerMinute = 60

// configures cross-origin access; ALLOWED_ORIGINS is a comma-separated list
// and defaults to the local dev frontend
func CORSMiddleware() gin.HandlerFunc {
	origins := []string{"http://localhost:5173"}

	if env := os.Getenv("ALLOWED_ORIGINS"); env != "" {
		origins = strings.Split(env, ",")
	}

	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	})
}

// limits each client IP to a fixed request budget per minute, tracked in
// process memory
func RateLimitMiddleware() gin.HandlerFunc {
	rate := limiter.Rate{
		Period: 1 * time.Minute,
		Limit:  rateLimitPerMinute,
	}

	return mgin.NewMiddleware(limiter.New(memory.NewStore(), rate))
}
