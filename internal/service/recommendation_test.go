package service

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-feeds/backend/internal/models"
	"github.com/pageza/recipe-feeds/backend/internal/recommend"
)

func newRecommendationService(f *fixture) *RecommendationService {
	engine := recommend.NewEngine(recommend.Config{Intn: rand.New(rand.NewPCG(1, 2)).IntN})
	return NewRecommendationService(
		NewUserService(f.db),
		NewRecipeService(f.db),
		NewStarService(f.db),
		engine,
		NewImageNormalizer(nil, 0),
	)
}

func TestRecommendVeganScenario(t *testing.T) {
	f := newFixture(t)
	chef := f.user("chef")
	f.user("vera", func(u *models.User) {
		u.DietaryPreferences = []string{"Vegan"}
		u.PreferredCategories = []string{"Dinner"}
		u.Allergies = []string{"Peanut"}
	})

	vegan := make(map[uuid.UUID]bool)
	for i := 0; i < 10; i++ {
		r := f.recipe(chef, fmt.Sprintf("vegan-%d", i), tagged([]string{"Vegan"}, []string{"Dinner"}, nil, nil))
		vegan[r.ID] = true
	}
	for i := 0; i < 10; i++ {
		f.recipe(chef, fmt.Sprintf("omni-%d", i), tagged([]string{"Omnivore"}, []string{"Dinner"}, nil, []string{"Peanut"}))
	}
	for i := 0; i < 5; i++ {
		f.recipe(chef, fmt.Sprintf("veg-%d", i), tagged([]string{"Vegetarian"}, []string{"Dessert"}, nil, []string{"Peanut"}))
	}

	resp, err := newRecommendationService(f).Recommend(f.ctx, RecommendationQuery{Username: "vera"})
	require.NoError(t, err)

	require.Len(t, resp.Recipes, 10)
	assert.True(t, resp.Limit)
	for _, r := range resp.Recipes {
		assert.True(t, vegan[r.ID], r.Title)
		assert.NotContains(t, r.Allergens, "Peanut")
	}
}

func TestRecommendRequestCategoriesExtendProfile(t *testing.T) {
	f := newFixture(t)
	chef := f.user("chef")
	f.user("omar", func(u *models.User) { u.Allergies = []string{"Gluten"} })
	f.recipe(chef, "soup", tagged(nil, []string{"Soup"}, []string{"French"}, nil))
	f.recipe(chef, "bread", tagged(nil, []string{"Bakery"}, []string{"French"}, []string{"Gluten"}))

	resp, err := newRecommendationService(f).Recommend(f.ctx, RecommendationQuery{
		Username:   "omar",
		Categories: []string{"soup"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"soup"}, recipeTitles(resp.Recipes))

	var stored models.User
	require.NoError(t, f.db.First(&stored, "username = ?", "omar").Error)
	assert.Empty(t, stored.PreferredCategories)
}

func TestRecommendFallbackUsesWholePool(t *testing.T) {
	f := newFixture(t)
	chef := f.user("chef")
	f.user("nut", func(u *models.User) { u.Allergies = []string{"Nuts"} })
	for i := 0; i < 30; i++ {
		f.recipe(chef, fmt.Sprintf("nutty-%d", i), tagged(nil, nil, nil, []string{"Nuts"}))
	}

	resp, err := newRecommendationService(f).Recommend(f.ctx, RecommendationQuery{Username: "nut", PageSize: 20})
	require.NoError(t, err)
	assert.Len(t, resp.Recipes, 20)
	assert.False(t, resp.Limit)
}

func TestRecommendEmptyPool(t *testing.T) {
	f := newFixture(t)
	f.user("ada")

	resp, err := newRecommendationService(f).Recommend(f.ctx, RecommendationQuery{Username: "ada"})
	require.NoError(t, err)
	assert.Empty(t, resp.Recipes)
	assert.True(t, resp.Limit)
}

func TestRecommendUnknownUser(t *testing.T) {
	f := newFixture(t)
	_, err := newRecommendationService(f).Recommend(f.ctx, RecommendationQuery{Username: "ghost"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecommendedFeedDelegates(t *testing.T) {
	f := newFixture(t)
	chef := f.user("chef")
	for i := 0; i < 3; i++ {
		f.recipe(chef, fmt.Sprintf("r%d", i))
	}
	feeds := NewFeedService(f.db, nil, newRecommendationService(f))

	resp, err := feeds.Recommended(f.ctx, "chef", mustPage(t, 2, 2))
	require.NoError(t, err)
	assert.Len(t, resp.Recipes, 2)
	assert.False(t, resp.Limit)
}
