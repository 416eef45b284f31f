package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pageza/recipe-feeds/backend/config"
	"github.com/pageza/recipe-feeds/backend/internal/api"
	"github.com/pageza/recipe-feeds/backend/internal/database"
	"github.com/pageza/recipe-feeds/backend/internal/logging"
	"github.com/pageza/recipe-feeds/backend/internal/middleware"
	"github.com/pageza/recipe-feeds/backend/internal/recommend"
	"github.com/pageza/recipe-feeds/backend/internal/service"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *gorm.DB
	redis  *redis.Client
}

// Deps are the external resources a Server uses. Redis and Presigner may
// be nil.
type Deps struct {
	DB        *gorm.DB
	Redis     *redis.Client
	Presigner service.Presigner
	Engine    *recommend.Engine
}

// New creates a new server instance
func New(cfg *config.Config, deps Deps) *Server {
	router := gin.New()
	router.Use(logging.GinLogger(), middleware.ErrorHandler(), middleware.CORS(cfg.CORSOrigins))
	router.NoRoute(middleware.NotFound())

	images := service.NewImageNormalizer(deps.Presigner, cfg.ImageURLExpiry)
	svcs := api.NewServices(deps.DB, images, deps.Engine)

	var limiter *middleware.RateLimiter
	if deps.Redis != nil {
		limiter = middleware.NewFeedRateLimiter(deps.Redis, cfg.RateLimitRequests, cfg.RateLimitWindow)
	}

	api.RegisterRoutes(router, svcs, limiter, func(ctx context.Context) error {
		return database.HealthCheck(ctx, deps.DB)
	})

	return &Server{
		router: router,
		db:     deps.DB,
		redis:  deps.Redis,
		http: &http.Server{
			Addr:              net.JoinHostPort(cfg.ServerHost, cfg.ServerPort),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until Shutdown is called. It returns nil after a clean
// shutdown.
func (s *Server) Start() error {
	logging.Info().Str("addr", s.http.Addr).Msg("starting server")
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server and closes its stores.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.http.Shutdown(ctx)
	if s.redis != nil {
		err = errors.Join(err, s.redis.Close())
	}
	if s.db != nil {
		err = errors.Join(err, database.Close(s.db))
	}
	return err
}
