package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-feeds/backend/internal/middleware"
	"github.com/pageza/recipe-feeds/backend/internal/service"
	"github.com/pageza/recipe-feeds/backend/internal/types"
)

// FeedHandler serves the paged feeds and the recommendation endpoint.
type FeedHandler struct {
	feeds   service.IFeedService
	recs    service.IRecommendationService
	limiter *middleware.RateLimiter
}

// NewFeedHandler creates a FeedHandler. limiter may be nil.
func NewFeedHandler(feeds service.IFeedService, recs service.IRecommendationService, limiter *middleware.RateLimiter) *FeedHandler {
	return &FeedHandler{feeds: feeds, recs: recs, limiter: limiter}
}

func (h *FeedHandler) RegisterRoutes(router *gin.RouterGroup) {
	var limited []gin.HandlerFunc
	if h.limiter != nil {
		limited = append(limited, h.limiter.Middleware(middleware.ClientIP))
	}

	feeds := router.Group("/feeds", limited...)
	{
		feeds.POST("/public", h.feed(func(c *gin.Context, req types.FeedRequest, p service.Page) (*types.FeedResponse, error) {
			return h.feeds.Public(c.Request.Context(), p)
		}))
		feeds.POST("/popular", h.feed(func(c *gin.Context, req types.FeedRequest, p service.Page) (*types.FeedResponse, error) {
			return h.feeds.Popular(c.Request.Context(), p)
		}))
		feeds.POST("/recommended", h.feed(func(c *gin.Context, req types.FeedRequest, p service.Page) (*types.FeedResponse, error) {
			return h.feeds.Recommended(c.Request.Context(), req.Username, p)
		}))
		feeds.POST("/users/:username", h.feed(func(c *gin.Context, req types.FeedRequest, p service.Page) (*types.FeedResponse, error) {
			return h.feeds.ByUser(c.Request.Context(), c.Param("username"), p)
		}))
		feeds.POST("/books/:id", h.BookFeed)
	}

	recs := router.Group("/recommendations", limited...)
	recs.POST("", h.Recommend)
}

type feedFunc func(c *gin.Context, req types.FeedRequest, p service.Page) (*types.FeedResponse, error)

// feed binds and validates a FeedRequest before calling load.
func (h *FeedHandler) feed(load feedFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.FeedRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		page, err := service.NewPage(req.PageCount, req.PageSize)
		if err != nil {
			respondError(c, err)
			return
		}
		resp, err := load(c, req, page)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

func (h *FeedHandler) BookFeed(c *gin.Context) {
	id, ok := uuidParam(c, "id", "book")
	if !ok {
		return
	}
	h.feed(func(c *gin.Context, req types.FeedRequest, p service.Page) (*types.FeedResponse, error) {
		return h.feeds.Book(c.Request.Context(), id, req.Username, p)
	})(c)
}

// Recommend answers POST /recommendations.
func (h *FeedHandler) Recommend(c *gin.Context) {
	var req types.RecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	resp, err := h.recs.Recommend(c.Request.Context(), service.RecommendationQuery{
		Username:     req.Username,
		Categories:   req.Categories,
		CuisineTypes: req.CuisineTypes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
