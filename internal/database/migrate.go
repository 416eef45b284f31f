package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/pageza/recipe-feeds/backend/internal/logging"
	"github.com/pageza/recipe-feeds/backend/internal/models"
)

// RunMigrations brings the schema up to date with the models.
func RunMigrations(db *gorm.DB) error {
	log := logging.Component("database")
	log.Info().Str("dialect", db.Dialector.Name()).Msg("running auto-migration")
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
