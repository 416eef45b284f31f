package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pageza/recipe-feeds/backend/internal/logging"
	"github.com/pageza/recipe-feeds/backend/internal/models"
	"github.com/pageza/recipe-feeds/backend/internal/recommend"
	"github.com/pageza/recipe-feeds/backend/internal/types"
)

// RecommendationQuery asks for one recommendation page. Categories and
// CuisineTypes extend the user's stored preferences for this request only.
type RecommendationQuery struct {
	Username     string
	Categories   []string
	CuisineTypes []string
	PageSize     int
}

// RecommendationService runs the recommendation engine over a random
// candidate pool of public recipes.
type RecommendationService struct {
	users   IUserService
	recipes IRecipeService
	stars   IStarService
	engine  *recommend.Engine
	images  *ImageNormalizer
}

// NewRecommendationService creates a new RecommendationService instance
func NewRecommendationService(users IUserService, recipes IRecipeService, stars IStarService, engine *recommend.Engine, images *ImageNormalizer) *RecommendationService {
	if engine == nil {
		engine = recommend.NewEngine(recommend.Config{})
	}
	return &RecommendationService{users: users, recipes: recipes, stars: stars, engine: engine, images: images}
}

// Recommend returns up to one page of recipes for q.Username.
func (s *RecommendationService) Recommend(ctx context.Context, q RecommendationQuery) (*types.FeedResponse, error) {
	if q.PageSize < 0 || q.PageSize > types.MaxPageSize {
		return nil, invalid("page_size must be between 1 and %d", types.MaxPageSize)
	}
	user, err := s.users.GetByUsername(ctx, q.Username)
	if err != nil {
		return nil, err
	}

	pool, err := s.recipes.CandidatePool(ctx, CandidatePoolSize)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, len(pool))
	byID := make(map[uuid.UUID]*models.Recipe, len(pool))
	items := make([]recommend.Item, len(pool))
	for i := range pool {
		ids[i] = pool[i].ID
		byID[pool[i].ID] = &pool[i]
		items[i] = ItemOf(&pool[i])
	}

	ratings, err := s.stars.RatingsFor(ctx, ids)
	if err != nil {
		return nil, err
	}

	profile := ProfileOf(user)
	profile.Categories.Merge(recommend.NewLabelSet(q.Categories...))
	profile.CuisineTypes.Merge(recommend.NewLabelSet(q.CuisineTypes...))

	engine := s.engine.WithPageSize(q.PageSize)
	result := engine.Recommend(items, profile, ratings)

	log := logging.Component("recommend")
	if result.Fallback && len(pool) > 0 {
		log.Warn().Str("username", user.Username).Int("pool", len(pool)).Msg("no recipe matched profile, sampling full pool")
	} else {
		log.Debug().Str("username", user.Username).Int("pool", len(pool)).Int("matched", result.Matched).Msg("recommendation computed")
	}

	recipes := make([]types.Recipe, 0, len(result.Items))
	for _, it := range result.Items {
		r, ok := byID[it.ID]
		if !ok {
			return nil, fmt.Errorf("engine returned unknown recipe %s", it.ID)
		}
		recipes = append(recipes, s.images.Present(ctx, r))
	}
	return &types.FeedResponse{
		Recipes: recipes,
		Limit:   len(recipes) < engine.PageSize(),
	}, nil
}

// ItemOf converts a stored recipe to an engine item.
func ItemOf(r *models.Recipe) recommend.Item {
	return recommend.Item{
		ID: r.ID,
		Tags: recommend.Tags{
			Diet:         recommend.NewLabelSet(r.Diet...),
			Categories:   recommend.NewLabelSet(r.Categories...),
			CuisineTypes: recommend.NewLabelSet(r.CuisineTypes...),
			Allergens:    recommend.NewLabelSet(r.Allergens...),
		},
	}
}

// ProfileOf converts a stored user to an engine profile.
func ProfileOf(u *models.User) recommend.Profile {
	return recommend.Profile{
		Diets:        recommend.NewLabelSet(u.DietaryPreferences...),
		Categories:   recommend.NewLabelSet(u.PreferredCategories...),
		CuisineTypes: recommend.NewLabelSet(u.PreferredCuisineTypes...),
		Allergies:    recommend.NewLabelSet(u.Allergies...),
	}
}
