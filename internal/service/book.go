package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/recipe-feeds/backend/internal/models"
	"github.com/pageza/recipe-feeds/backend/internal/types"
)

// BookService handles recipe books
type BookService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewBookService creates a new BookService instance
func NewBookService(db *gorm.DB) *BookService {
	return &BookService{db: db, now: time.Now}
}

// CreateBook creates an empty book owned by req.Username.
func (s *BookService) CreateBook(ctx context.Context, req *types.CreateBookRequest) (*models.Book, error) {
	owner, err := findUser(ctx, s.db, req.Username)
	if err != nil {
		return nil, err
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, invalid("title is required")
	}

	book := &models.Book{Title: title, Description: req.Description, OwnerID: owner.ID}
	if err := s.db.WithContext(ctx).Create(book).Error; err != nil {
		return nil, fmt.Errorf("failed to create book: %w", err)
	}
	book.Owner = owner
	return book, nil
}

// GetBook returns a book with its owner's username and recipe count.
func (s *BookService) GetBook(ctx context.Context, id uuid.UUID) (*types.Book, error) {
	book, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.BookRecipe{}).Where("book_id = ?", id).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to count book recipes: %w", err)
	}
	return &types.Book{
		ID:          book.ID,
		Title:       book.Title,
		Description: book.Description,
		Owner:       book.Owner.Username,
		RecipeCount: count,
		CreatedAt:   book.CreatedAt,
	}, nil
}

// AddRecipe places a recipe in a book. Only the book's owner may add, and
// adding a recipe already in the book is a no-op.
func (s *BookService) AddRecipe(ctx context.Context, bookID uuid.UUID, req *types.AddBookRecipeRequest) error {
	book, err := s.load(ctx, bookID)
	if err != nil {
		return err
	}
	if book.Owner.Username != strings.TrimSpace(req.Username) {
		return forbidden("book %s is not owned by %s", bookID, req.Username)
	}

	var recipe models.Recipe
	if err := s.db.WithContext(ctx).Select("id").First(&recipe, "id = ?", req.RecipeID).Error; err != nil {
		return lookupErr(err, "recipe "+req.RecipeID.String())
	}

	entry := models.BookRecipe{BookID: bookID, RecipeID: req.RecipeID, AddedAt: s.now()}
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&entry).Error; err != nil {
		return fmt.Errorf("failed to add recipe to book: %w", err)
	}
	return nil
}

func (s *BookService) load(ctx context.Context, id uuid.UUID) (*models.Book, error) {
	var book models.Book
	if err := s.db.WithContext(ctx).Preload("Owner").First(&book, "id = ?", id).Error; err != nil {
		return nil, lookupErr(err, "book "+id.String())
	}
	if book.Owner == nil {
		return nil, notFound("owner of book %s", id)
	}
	return &book, nil
}
