package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/recipe-feeds/backend/internal/models"
	"github.com/pageza/recipe-feeds/backend/internal/recommend"
	"github.com/pageza/recipe-feeds/backend/internal/types"
)

// StarService handles star ratings
type StarService struct {
	db *gorm.DB
}

// NewStarService creates a new StarService instance
func NewStarService(db *gorm.DB) *StarService {
	return &StarService{db: db}
}

// Rate records username's rating of a recipe, replacing any earlier one,
// and returns the recipe's updated summary.
func (s *StarService) Rate(ctx context.Context, recipeID uuid.UUID, username string, stars int) (*types.StarSummary, error) {
	if stars < 1 || stars > 5 {
		return nil, invalid("stars must be between 1 and 5, got %d", stars)
	}
	user, err := findUser(ctx, s.db, username)
	if err != nil {
		return nil, err
	}
	if err := s.recipeExists(ctx, recipeID); err != nil {
		return nil, err
	}

	star := models.Star{UserID: user.ID, RecipeID: recipeID, Value: stars}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "recipe_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"value":      stars,
			"updated_at": time.Now(),
		}),
	}).Create(&star).Error
	if err != nil {
		return nil, fmt.Errorf("failed to save rating: %w", err)
	}
	return s.Summary(ctx, recipeID)
}

// Summary returns the running average and counts for a recipe.
func (s *StarService) Summary(ctx context.Context, recipeID uuid.UUID) (*types.StarSummary, error) {
	if err := s.recipeExists(ctx, recipeID); err != nil {
		return nil, err
	}

	var row struct {
		Average  float64
		Count    int64
		Positive int64
	}
	err := s.db.WithContext(ctx).Model(&models.Star{}).
		Select("COALESCE(AVG(value), 0) AS average, COUNT(*) AS count, COALESCE(SUM(CASE WHEN value > ? THEN 1 ELSE 0 END), 0) AS positive", recommend.PositiveThreshold).
		Where("recipe_id = ?", recipeID).
		Scan(&row).Error
	if err != nil {
		return nil, fmt.Errorf("failed to summarize stars: %w", err)
	}
	return &types.StarSummary{
		RecipeID: recipeID,
		Average:  row.Average,
		Count:    row.Count,
		Positive: row.Positive,
	}, nil
}

// RatingsFor returns every user's ratings of the given recipes.
func (s *StarService) RatingsFor(ctx context.Context, recipeIDs []uuid.UUID) ([]recommend.Rating, error) {
	if len(recipeIDs) == 0 {
		return []recommend.Rating{}, nil
	}
	var stars []models.Star
	if err := s.db.WithContext(ctx).Where("recipe_id IN ?", recipeIDs).Find(&stars).Error; err != nil {
		return nil, fmt.Errorf("failed to load ratings: %w", err)
	}
	ratings := make([]recommend.Rating, 0, len(stars))
	for _, st := range stars {
		ratings = append(ratings, recommend.Rating{RecipeID: st.RecipeID, Stars: st.Value})
	}
	return ratings, nil
}

func (s *StarService) recipeExists(ctx context.Context, id uuid.UUID) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Recipe{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to load recipe: %w", err)
	}
	if count == 0 {
		return notFound("recipe %s", id)
	}
	return nil
}
