package database

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-feeds/backend/config"
	"github.com/pageza/recipe-feeds/backend/internal/logging"
	"github.com/pageza/recipe-feeds/backend/internal/models"
)

func TestNewSQLiteAndMigrate(t *testing.T) {
	db, err := New(&config.Config{DBDriver: "sqlite", SQLitePath: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	require.NoError(t, RunMigrations(db))
	require.NoError(t, HealthCheck(context.Background(), db))

	for _, table := range []string{"users", "recipes", "recipe_ingredients", "stars", "books", "book_recipes"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}

	user := models.User{Username: "ada"}
	require.NoError(t, db.Create(&user).Error)
	assert.NotEqual(t, "", user.ID.String())
}

func TestNewRejectsUnknownDriver(t *testing.T) {
	_, err := New(&config.Config{DBDriver: "oracle"})
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestNewRedisClientBadURL(t *testing.T) {
	_, err := NewRedisClient(&config.Config{RedisURL: "not a url"})
	assert.ErrorContains(t, err, "failed to parse Redis URL")
}

func TestRunMigrationsLogsDialect(t *testing.T) {
	var buf bytes.Buffer
	prev := logging.Logger()
	logging.SetLogger(zerolog.New(&buf))
	t.Cleanup(func() { logging.SetLogger(prev) })

	db, err := New(&config.Config{DBDriver: "sqlite", SQLitePath: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })
	require.NoError(t, RunMigrations(db))

	assert.Contains(t, buf.String(), `"component":"database"`)
	assert.Contains(t, buf.String(), `"dialect":"sqlite"`)
	assert.Contains(t, buf.String(), "running auto-migration")
}
