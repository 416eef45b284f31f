package types

import (
	"github.com/google/uuid"
)

// CreateRecipeRequest represents the request body for creating a recipe
type CreateRecipeRequest struct {
	Username     string   `json:"username" binding:"required"`
	Title        string   `json:"title" binding:"required,max=200"`
	Image        string   `json:"image"`
	ImageKey     string   `json:"image_key"`
	ChefName     string   `json:"chef_name"`
	Visibility   string   `json:"visibility" binding:"omitempty,oneof=public private"`
	Description  string   `json:"description"`
	Quantities   []string `json:"quantities"`
	Ingredients  []string `json:"ingredients" binding:"required,min=1"`
	Steps        []string `json:"steps" binding:"required,min=1"`
	Diet         []string `json:"diet"`
	Categories   []string `json:"categories"`
	CuisineTypes []string `json:"cuisine_types"`
	Allergens    []string `json:"allergens"`
}

// UpdateRecipeRequest represents the request body for updating a recipe.
// Nil slices leave the stored value unchanged.
type UpdateRecipeRequest struct {
	Username     string   `json:"username" binding:"required"`
	Title        *string  `json:"title" binding:"omitempty,max=200"`
	Image        *string  `json:"image"`
	ChefName     *string  `json:"chef_name"`
	Visibility   *string  `json:"visibility" binding:"omitempty,oneof=public private"`
	Description  *string  `json:"description"`
	Quantities   []string `json:"quantities"`
	Ingredients  []string `json:"ingredients"`
	Steps        []string `json:"steps"`
	Diet         []string `json:"diet"`
	Categories   []string `json:"categories"`
	CuisineTypes []string `json:"cuisine_types"`
	Allergens    []string `json:"allergens"`
}

// DeleteRecipeRequest identifies the acting user for a delete.
type DeleteRecipeRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
}

// RateRecipeRequest sets a user's star rating on a recipe.
type RateRecipeRequest struct {
	Username string `json:"username" binding:"required"`
	Stars    int    `json:"stars" binding:"required,min=1,max=5"`
}

// CreateUserRequest represents the request body for creating a user
type CreateUserRequest struct {
	Username              string   `json:"username" binding:"required,min=3,max=50"`
	DisplayName           string   `json:"display_name"`
	DietaryPreferences    []string `json:"dietary_preferences"`
	PreferredCategories   []string `json:"preferred_categories"`
	PreferredCuisineTypes []string `json:"preferred_cuisine_types"`
	Allergies             []string `json:"allergies"`
}

// UpdatePreferencesRequest replaces the preference sets that are present.
type UpdatePreferencesRequest struct {
	DietaryPreferences    []string `json:"dietary_preferences"`
	PreferredCategories   []string `json:"preferred_categories"`
	PreferredCuisineTypes []string `json:"preferred_cuisine_types"`
	Allergies             []string `json:"allergies"`
}

// CreateBookRequest represents the request body for creating a book
type CreateBookRequest struct {
	Username    string `json:"username" binding:"required"`
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description"`
}

// AddBookRecipeRequest adds a recipe to a book owned by Username.
type AddBookRecipeRequest struct {
	Username string    `json:"username" binding:"required"`
	RecipeID uuid.UUID `json:"recipe_id" binding:"required"`
}

// RecommendationRequest asks for a recommendation page for Username.
// Categories and CuisineTypes are merged into the user's stored preferences.
type RecommendationRequest struct {
	Username     string   `json:"username" binding:"required"`
	Categories   []string `json:"categories" binding:"max=50,dive,required,max=64"`
	CuisineTypes []string `json:"cuisine_types" binding:"max=50,dive,required,max=64"`
}
