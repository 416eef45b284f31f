package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/pageza/recipe-feeds/backend/internal/models"
	"github.com/pageza/recipe-feeds/backend/internal/recommend"
	"github.com/pageza/recipe-feeds/backend/internal/types"
)

// IUserService defines the interface for user and preference operations
type IUserService interface {
	CreateUser(ctx context.Context, req *types.CreateUserRequest) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	UpdatePreferences(ctx context.Context, username string, req *types.UpdatePreferencesRequest) (*models.User, error)
}

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	CreateRecipe(ctx context.Context, req *types.CreateRecipeRequest) (*models.Recipe, error)
	GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error)
	UpdateRecipe(ctx context.Context, id uuid.UUID, req *types.UpdateRecipeRequest) (*models.Recipe, error)
	DeleteRecipe(ctx context.Context, id uuid.UUID, username string) error
	ListRecipes(ctx context.Context, filter RecipeFilter) ([]models.Recipe, error)
	CandidatePool(ctx context.Context, limit int) ([]models.Recipe, error)
}

// IStarService defines the interface for star ratings
type IStarService interface {
	Rate(ctx context.Context, recipeID uuid.UUID, username string, stars int) (*types.StarSummary, error)
	Summary(ctx context.Context, recipeID uuid.UUID) (*types.StarSummary, error)
	RatingsFor(ctx context.Context, recipeIDs []uuid.UUID) ([]recommend.Rating, error)
}

// IBookService defines the interface for recipe books
type IBookService interface {
	CreateBook(ctx context.Context, req *types.CreateBookRequest) (*models.Book, error)
	GetBook(ctx context.Context, id uuid.UUID) (*types.Book, error)
	AddRecipe(ctx context.Context, bookID uuid.UUID, req *types.AddBookRecipeRequest) error
}

// IFeedService defines the paged feeds consumed by the client cache
type IFeedService interface {
	Public(ctx context.Context, page Page) (*types.FeedResponse, error)
	Popular(ctx context.Context, page Page) (*types.FeedResponse, error)
	ByUser(ctx context.Context, username string, page Page) (*types.FeedResponse, error)
	Book(ctx context.Context, bookID uuid.UUID, requester string, page Page) (*types.FeedResponse, error)
	Recommended(ctx context.Context, username string, page Page) (*types.FeedResponse, error)
}

// IRecommendationService defines the interface for recommendations
type IRecommendationService interface {
	Recommend(ctx context.Context, q RecommendationQuery) (*types.FeedResponse, error)
}
