package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/recipe-feeds/backend/internal/models"
	"github.com/pageza/recipe-feeds/backend/internal/types"
)

// CandidatePoolSize bounds the random sample handed to the recommendation engine.
const CandidatePoolSize = 100

// RecipeFilter narrows ListRecipes. Zero values match everything.
type RecipeFilter struct {
	Ingredient string
	Category   string
	Limit      int
	Offset     int
}

// RecipeService handles recipe operations
type RecipeService struct {
	db *gorm.DB
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// CreateRecipe creates a recipe owned by req.Username and indexes its ingredients.
func (s *RecipeService) CreateRecipe(ctx context.Context, req *types.CreateRecipeRequest) (*models.Recipe, error) {
	owner, err := findUser(ctx, s.db, req.Username)
	if err != nil {
		return nil, err
	}
	if err := checkIngredients(req.Quantities, req.Ingredients); err != nil {
		return nil, err
	}
	image, err := DecodeImage(req.Image)
	if err != nil {
		return nil, err
	}

	recipe := &models.Recipe{
		Title:        strings.TrimSpace(req.Title),
		Image:        image,
		ImageKey:     req.ImageKey,
		ChefName:     req.ChefName,
		UserID:       owner.ID,
		Visibility:   req.Visibility,
		Description:  req.Description,
		Quantities:   models.StringList(req.Quantities),
		Ingredients:  models.StringList(req.Ingredients),
		Steps:        models.StringList(req.Steps),
		Diet:         models.StringList(req.Diet),
		Categories:   models.StringList(req.Categories),
		CuisineTypes: models.StringList(req.CuisineTypes),
		Allergens:    models.StringList(req.Allergens),
	}
	if recipe.Title == "" {
		return nil, invalid("title is required")
	}
	if recipe.ChefName == "" {
		recipe.ChefName = owner.DisplayName
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(recipe).Error; err != nil {
			return err
		}
		return replaceIngredientRows(tx, recipe)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create recipe: %w", err)
	}
	return recipe, nil
}

// GetRecipe retrieves a recipe by ID
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		return nil, lookupErr(err, "recipe "+id.String())
	}
	return &recipe, nil
}

// UpdateRecipe applies the fields present in req. Only the owner may update.
func (s *RecipeService) UpdateRecipe(ctx context.Context, id uuid.UUID, req *types.UpdateRecipeRequest) (*models.Recipe, error) {
	recipe, err := s.ownedRecipe(ctx, id, req.Username)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		recipe.Title = strings.TrimSpace(*req.Title)
		if recipe.Title == "" {
			return nil, invalid("title must not be empty")
		}
	}
	if req.Image != nil {
		image, err := DecodeImage(*req.Image)
		if err != nil {
			return nil, err
		}
		recipe.Image = image
	}
	if req.ChefName != nil {
		recipe.ChefName = *req.ChefName
	}
	if req.Visibility != nil {
		recipe.Visibility = *req.Visibility
	}
	if req.Description != nil {
		recipe.Description = *req.Description
	}
	assignList(&recipe.Quantities, req.Quantities)
	assignList(&recipe.Ingredients, req.Ingredients)
	assignList(&recipe.Steps, req.Steps)
	assignList(&recipe.Diet, req.Diet)
	assignList(&recipe.Categories, req.Categories)
	assignList(&recipe.CuisineTypes, req.CuisineTypes)
	assignList(&recipe.Allergens, req.Allergens)

	if err := checkIngredients(recipe.Quantities, recipe.Ingredients); err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(recipe).Error; err != nil {
			return err
		}
		return replaceIngredientRows(tx, recipe)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update recipe: %w", err)
	}
	return recipe, nil
}

// DeleteRecipe removes a recipe with its ingredient rows, stars and book
// placements. Only the owner may delete.
func (s *RecipeService) DeleteRecipe(ctx context.Context, id uuid.UUID, username string) error {
	if _, err := s.ownedRecipe(ctx, id, username); err != nil {
		return err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.Star{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.BookRecipe{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Recipe{}, "id = ?", id).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}
	return nil
}

// ListRecipes lists public recipes, newest first.
func (s *RecipeService) ListRecipes(ctx context.Context, filter RecipeFilter) ([]models.Recipe, error) {
	query := s.db.WithContext(ctx).Model(&models.Recipe{}).Where("visibility = ?", models.VisibilityPublic)

	if ing := strings.ToLower(strings.TrimSpace(filter.Ingredient)); ing != "" {
		sub := s.db.Model(&models.RecipeIngredient{}).Select("recipe_id").Where("normalized LIKE ?", "%"+ing+"%")
		query = query.Where("id IN (?)", sub)
	}
	if cat := strings.ToLower(strings.TrimSpace(filter.Category)); cat != "" {
		column := "LOWER(categories)"
		if s.db.Dialector.Name() == "postgres" {
			column = "LOWER(categories::text)"
		}
		query = query.Where(column+" LIKE ?", `%"`+cat+`"%`)
	}

	limit := filter.Limit
	if limit <= 0 || limit > types.MaxPageSize {
		limit = types.DefaultPageSize
	}

	var recipes []models.Recipe
	err := query.Order("created_at DESC").Order("id").Limit(limit).Offset(filter.Offset).Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return recipes, nil
}

// CandidatePool draws up to limit public recipes in random order.
func (s *RecipeService) CandidatePool(ctx context.Context, limit int) ([]models.Recipe, error) {
	if limit <= 0 {
		limit = CandidatePoolSize
	}
	var recipes []models.Recipe
	err := s.db.WithContext(ctx).
		Where("visibility = ?", models.VisibilityPublic).
		Order("RANDOM()").
		Limit(limit).
		Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to sample recipes: %w", err)
	}
	return recipes, nil
}

func (s *RecipeService) ownedRecipe(ctx context.Context, id uuid.UUID, username string) (*models.Recipe, error) {
	user, err := findUser(ctx, s.db, username)
	if err != nil {
		return nil, err
	}
	recipe, err := s.GetRecipe(ctx, id)
	if err != nil {
		return nil, err
	}
	if recipe.UserID != user.ID {
		return nil, forbidden("recipe %s is not owned by %s", id, user.Username)
	}
	return recipe, nil
}

func replaceIngredientRows(tx *gorm.DB, recipe *models.Recipe) error {
	if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
		return err
	}
	rows := recipe.IngredientRows()
	if len(rows) == 0 {
		return nil
	}
	return tx.Create(&rows).Error
}

func checkIngredients(quantities, ingredients []string) error {
	if len(ingredients) == 0 {
		return invalid("at least one ingredient is required")
	}
	if len(quantities) != len(ingredients) {
		return invalid("got %d quantities for %d ingredients", len(quantities), len(ingredients))
	}
	return nil
}

func assignList(dst *models.StringList, src []string) {
	if src != nil {
		*dst = models.StringList(src)
	}
}
