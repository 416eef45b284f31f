package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-feeds/backend/internal/middleware"
	"github.com/pageza/recipe-feeds/backend/internal/types"
)

// Pinger reports whether a backing store is reachable.
type Pinger func(ctx context.Context) error

// HealthHandler returns the health status of the API. A failing ping
// answers 503.
func HealthHandler(ping Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ping != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := ping(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	}
}

// RegisterRoutes registers all API routes. limiter may be nil, which
// disables rate limiting.
func RegisterRoutes(router *gin.Engine, svcs *Services, limiter *middleware.RateLimiter, ping Pinger) {
	router.GET("/health", HealthHandler(ping))
	router.GET("/api/health", HealthHandler(ping))

	v1 := router.Group("/api/v1")
	NewUserHandler(svcs.Users).RegisterRoutes(v1)
	NewRecipeHandler(svcs.Recipes, svcs.Stars, svcs.Images).RegisterRoutes(v1)
	NewBookHandler(svcs.Books).RegisterRoutes(v1)
	NewFeedHandler(svcs.Feeds, svcs.Recommendations, limiter).RegisterRoutes(v1)

	if limiter != nil {
		RegisterRateLimitRoutes(v1, limiter)
	}
}

// RegisterRateLimitRoutes exposes the caller's remaining feed budget.
func RegisterRateLimitRoutes(router *gin.RouterGroup, limiter *middleware.RateLimiter) {
	router.GET("/rate-limits/feeds", func(c *gin.Context) {
		remaining, resetTime, err := limiter.Remaining(c.Request.Context(), middleware.ClientIP(c))
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, types.ErrorResponse{Error: "failed to check rate limit"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"limit":      limiter.Limit(),
			"remaining":  remaining,
			"reset_time": resetTime.Unix(),
			"window":     limiter.Window().String(),
		})
	})
}
