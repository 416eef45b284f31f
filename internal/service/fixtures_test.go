package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pageza/recipe-feeds/backend/internal/models"
	"github.com/pageza/recipe-feeds/backend/internal/testdb"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

type fixture struct {
	t    *testing.T
	ctx  context.Context
	db   *gorm.DB
	base time.Time
	n    int
}

func newFixture(t *testing.T) *fixture {
	return &fixture{
		t:    t,
		ctx:  context.Background(),
		db:   testdb.SQLite(t),
		base: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (f *fixture) user(name string, mutate ...func(*models.User)) *models.User {
	f.t.Helper()
	u := &models.User{Username: name, DisplayName: name}
	for _, m := range mutate {
		m(u)
	}
	require.NoError(f.t, f.db.Create(u).Error)
	return u
}

// recipe inserts a recipe owned by owner. Each call is one minute newer
// than the previous one.
func (f *fixture) recipe(owner *models.User, title string, mutate ...func(*models.Recipe)) *models.Recipe {
	f.t.Helper()
	f.n++
	r := &models.Recipe{
		Title:       title,
		UserID:      owner.ID,
		CreatedAt:   f.base.Add(time.Duration(f.n) * time.Minute),
		Quantities:  models.StringList{"1 cup"},
		Ingredients: models.StringList{"Water"},
		Steps:       models.StringList{"Boil"},
	}
	for _, m := range mutate {
		m(r)
	}
	require.NoError(f.t, f.db.Create(r).Error)
	return r
}

func (f *fixture) star(user *models.User, recipe *models.Recipe, value int) {
	f.t.Helper()
	require.NoError(f.t, f.db.Create(&models.Star{UserID: user.ID, RecipeID: recipe.ID, Value: value}).Error)
}

func tagged(diet, categories, cuisines, allergens []string) func(*models.Recipe) {
	return func(r *models.Recipe) {
		r.Diet = diet
		r.Categories = categories
		r.CuisineTypes = cuisines
		r.Allergens = allergens
	}
}

func private(r *models.Recipe) {
	r.Visibility = models.VisibilityPrivate
}

func titles[T any](items []T, title func(T) string) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = title(it)
	}
	return out
}
