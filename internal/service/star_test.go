package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-feeds/backend/internal/models"
)

func TestRateUpsertsInPlace(t *testing.T) {
	f := newFixture(t)
	ada := f.user("ada")
	f.user("bob")
	f.user("cy")
	recipe := f.recipe(ada, "Soup")
	svc := NewStarService(f.db)

	_, err := svc.Rate(f.ctx, recipe.ID, "bob", 2)
	require.NoError(t, err)
	_, err = svc.Rate(f.ctx, recipe.ID, "bob", 5)
	require.NoError(t, err)
	summary, err := svc.Rate(f.ctx, recipe.ID, "cy", 4)
	require.NoError(t, err)

	assert.Equal(t, int64(2), summary.Count)
	assert.InDelta(t, 4.5, summary.Average, 0.001)
	assert.Equal(t, int64(2), summary.Positive)

	var rows int64
	require.NoError(t, f.db.Model(&models.Star{}).Count(&rows).Error)
	assert.Equal(t, int64(2), rows)
}

func TestRateValidation(t *testing.T) {
	f := newFixture(t)
	ada := f.user("ada")
	recipe := f.recipe(ada, "Soup")
	svc := NewStarService(f.db)

	_, err := svc.Rate(f.ctx, recipe.ID, "ada", 6)
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.Rate(f.ctx, recipe.ID, "nobody", 3)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.Rate(f.ctx, uuid.New(), "ada", 3)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSummaryUnrated(t *testing.T) {
	f := newFixture(t)
	recipe := f.recipe(f.user("ada"), "Soup")

	summary, err := NewStarService(f.db).Summary(f.ctx, recipe.ID)
	require.NoError(t, err)
	assert.Zero(t, summary.Count)
	assert.Zero(t, summary.Average)
}

func TestRatingsFor(t *testing.T) {
	f := newFixture(t)
	ada := f.user("ada")
	bob := f.user("bob")
	soup := f.recipe(ada, "Soup")
	cake := f.recipe(ada, "Cake")
	other := f.recipe(ada, "Other")
	f.star(ada, soup, 1)
	f.star(bob, soup, 4)
	f.star(bob, cake, 3)
	f.star(bob, other, 5)

	svc := NewStarService(f.db)
	ratings, err := svc.RatingsFor(f.ctx, []uuid.UUID{soup.ID, cake.ID})
	require.NoError(t, err)
	assert.Len(t, ratings, 3)
	for _, r := range ratings {
		assert.NotEqual(t, other.ID, r.RecipeID)
	}

	empty, err := svc.RatingsFor(f.ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
