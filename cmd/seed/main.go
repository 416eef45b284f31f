// Command seed fills a development database with users, recipes, ratings
// and a book so the feeds have something to page through.
package main

import (
	"context"
	"flag"
	"time"

	"github.com/pageza/recipe-feeds/backend/config"
	"github.com/pageza/recipe-feeds/backend/internal/api"
	"github.com/pageza/recipe-feeds/backend/internal/database"
	"github.com/pageza/recipe-feeds/backend/internal/logging"
	"github.com/pageza/recipe-feeds/backend/internal/recommend"
)

func main() {
	count := flag.Int("recipes", 60, "number of recipes to create")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	db, err := database.New(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer database.Close(db)

	if err := database.RunMigrations(db); err != nil {
		logging.Fatal().Err(err).Msg("failed to migrate database")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	svcs := api.NewServices(db, nil, recommend.NewEngine(recommend.Config{}))
	res, err := seed(ctx, svcs, *count)
	if err != nil {
		logging.Fatal().Err(err).Msg("seeding failed")
	}
	logging.Info().
		Int("users", res.Users).
		Int("recipes", res.Recipes).
		Int("ratings", res.Ratings).
		Str("book", res.BookID.String()).
		Msg("seeded database")
}
