package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-feeds/backend/config"
	"github.com/pageza/recipe-feeds/backend/internal/database"
	"github.com/pageza/recipe-feeds/backend/internal/logging"
	"github.com/pageza/recipe-feeds/backend/internal/server"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}

	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if cfg.Env == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.New(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := database.RunMigrations(db); err != nil {
		logging.Fatal().Err(err).Msg("failed to migrate database")
	}

	deps := server.Deps{DB: db}

	if cfg.RedisEnabled() {
		rdb, err := database.NewRedisClient(cfg)
		if err != nil {
			// Rate limiting is optional; serve without it.
			logging.Warn().Err(err).Msg("redis unavailable, rate limiting disabled")
		} else {
			deps.Redis = rdb
		}
	}

	s3cfg, err := config.NewS3Config(context.Background(), cfg)
	if err != nil {
		logging.Warn().Err(err).Msg("s3 unavailable, serving inline images only")
	} else if s3cfg != nil {
		deps.Presigner = s3cfg
	}

	srv := server.New(cfg, deps)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			logging.Fatal().Err(err).Msg("server error")
		}
	case sig := <-quit:
		logging.Info().Str("signal", sig.String()).Msg("received signal")
	}

	logging.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logging.Fatal().Err(err).Msg("server shutdown error")
	}
	logging.Info().Msg("server stopped")
}
