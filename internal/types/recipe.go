package types

import (
	"time"

	"github.com/google/uuid"
)

// Recipe is the wire shape of a recipe, shared by the API and the feed cache.
type Recipe struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Image        string    `json:"image,omitempty"`
	ChefName     string    `json:"chef_name"`
	UserID       uuid.UUID `json:"user_id"`
	Visibility   string    `json:"visibility"`
	Description  string    `json:"description"`
	Quantities   []string  `json:"quantities"`
	Ingredients  []string  `json:"ingredients"`
	Steps        []string  `json:"steps"`
	Diet         []string  `json:"diet"`
	Categories   []string  `json:"categories"`
	CuisineTypes []string  `json:"cuisine_types"`
	Allergens    []string  `json:"allergens"`
	CreatedAt    time.Time `json:"created_at"`
}

// StarSummary is the aggregate rating of a recipe.
type StarSummary struct {
	RecipeID uuid.UUID `json:"recipe_id"`
	Average  float64   `json:"average"`
	Count    int64     `json:"count"`
	Positive int64     `json:"positive"`
}

// User is the public view of a user and their preference profile.
type User struct {
	ID                    uuid.UUID `json:"id"`
	Username              string    `json:"username"`
	DisplayName           string    `json:"display_name"`
	DietaryPreferences    []string  `json:"dietary_preferences"`
	PreferredCategories   []string  `json:"preferred_categories"`
	PreferredCuisineTypes []string  `json:"preferred_cuisine_types"`
	Allergies             []string  `json:"allergies"`
}

// Book is the public view of a recipe collection.
type Book struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Owner       string    `json:"owner"`
	RecipeCount int64     `json:"recipe_count"`
	CreatedAt   time.Time `json:"created_at"`
}
