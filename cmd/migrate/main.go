// Command migrate brings the database schema up to date and exits.
package main

import (
	"github.com/pageza/recipe-feeds/backend/config"
	"github.com/pageza/recipe-feeds/backend/internal/database"
	"github.com/pageza/recipe-feeds/backend/internal/logging"
)

func main() {
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
		logging.Fatal().Err(err).Msg("migration failed")
	}
	logging.Info().Str("driver", cfg.DBDriver).Msg("schema up to date")
}
