package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/recipe-feeds/backend/internal/models"
	"github.com/pageza/recipe-feeds/backend/internal/types"
)

// Page selects one increment of a feed. Count is 1-based.
type Page struct {
	Count int
	Size  int
}

// NewPage validates a feed increment request. A zero size means the default.
func NewPage(count, size int) (Page, error) {
	if count < 1 {
		return Page{}, invalid("page_count must be at least 1")
	}
	if size == 0 {
		size = types.DefaultPageSize
	}
	if size < 1 || size > types.MaxPageSize {
		return Page{}, invalid("page_size must be between 1 and %d", types.MaxPageSize)
	}
	return Page{Count: count, Size: size}, nil
}

// Offset is the number of feed rows before this increment.
func (p Page) Offset() int {
	return (p.Count - 1) * p.Size
}

// FeedService serves the paged feeds read by the client cache. Each feed
// has a deterministic ordering except recommended, whose increments are
// independent samples.
type FeedService struct {
	db     *gorm.DB
	images *ImageNormalizer
	recs   IRecommendationService
}

// NewFeedService creates a new FeedService instance
func NewFeedService(db *gorm.DB, images *ImageNormalizer, recs IRecommendationService) *FeedService {
	return &FeedService{db: db, images: images, recs: recs}
}

// Public returns public recipes, newest first.
func (s *FeedService) Public(ctx context.Context, page Page) (*types.FeedResponse, error) {
	query := s.db.WithContext(ctx).Model(&models.Recipe{}).
		Where("visibility = ?", models.VisibilityPublic).
		Order("created_at DESC").Order("id")
	return s.run(ctx, query, page, nil)
}

// Popular returns public recipes by average stars, then newest first.
// Unrated recipes sort as zero.
func (s *FeedService) Popular(ctx context.Context, page Page) (*types.FeedResponse, error) {
	ratings := s.db.WithContext(ctx).Model(&models.Star{}).
		Select("recipe_id, AVG(value) AS avg_stars").
		Group("recipe_id")
	query := s.db.WithContext(ctx).Model(&models.Recipe{}).
		Select("recipes.*").
		Joins("LEFT JOIN (?) AS ratings ON ratings.recipe_id = recipes.id", ratings).
		Where("recipes.visibility = ?", models.VisibilityPublic).
		Order("COALESCE(ratings.avg_stars, 0) DESC").
		Order("recipes.created_at DESC").
		Order("recipes.id")
	return s.run(ctx, query, page, nil)
}

// ByUser returns username's public recipes, newest first.
func (s *FeedService) ByUser(ctx context.Context, username string, page Page) (*types.FeedResponse, error) {
	owner, err := findUser(ctx, s.db, username)
	if err != nil {
		return nil, err
	}
	query := s.db.WithContext(ctx).Model(&models.Recipe{}).
		Where("user_id = ? AND visibility = ?", owner.ID, models.VisibilityPublic).
		Order("created_at DESC").Order("id")
	return s.run(ctx, query, page, nil)
}

// Book returns a book's recipes, most recently added first. Private recipes
// appear only to their owner. Meta carries the book's title, description,
// owner and whether requester owns the book.
func (s *FeedService) Book(ctx context.Context, bookID uuid.UUID, requester string, page Page) (*types.FeedResponse, error) {
	var book models.Book
	if err := s.db.WithContext(ctx).Preload("Owner").First(&book, "id = ?", bookID).Error; err != nil {
		return nil, lookupErr(err, "book "+bookID.String())
	}
	ownerName := ""
	if book.Owner != nil {
		ownerName = book.Owner.Username
	}

	query := s.db.WithContext(ctx).Model(&models.Recipe{}).
		Select("recipes.*").
		Joins("JOIN book_recipes ON book_recipes.recipe_id = recipes.id").
		Where("book_recipes.book_id = ?", bookID).
		Order("book_recipes.added_at DESC").
		Order("recipes.id")

	visible := s.db.Where("recipes.visibility = ?", models.VisibilityPublic)
	if requester != "" {
		viewer, err := findUser(ctx, s.db, requester)
		switch {
		case err == nil:
			visible = visible.Or("recipes.user_id = ?", viewer.ID)
		case !errors.Is(err, ErrNotFound):
			return nil, err
		}
	}
	query = query.Where(visible)

	meta := map[string]string{
		"title":       book.Title,
		"description": book.Description,
		"owner":       ownerName,
		"admin":       strconv.FormatBool(requester != "" && requester == ownerName),
	}
	return s.run(ctx, query, page, meta)
}

// Recommended returns one recommendation sample for username. Increments
// are drawn independently and may overlap.
func (s *FeedService) Recommended(ctx context.Context, username string, page Page) (*types.FeedResponse, error) {
	if s.recs == nil {
		return nil, fmt.Errorf("recommendations are not configured")
	}
	return s.recs.Recommend(ctx, RecommendationQuery{Username: username, PageSize: page.Size})
}

func (s *FeedService) run(ctx context.Context, query *gorm.DB, page Page, meta map[string]string) (*types.FeedResponse, error) {
	var rows []models.Recipe
	if err := query.Offset(page.Offset()).Limit(page.Size).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load feed: %w", err)
	}
	return &types.FeedResponse{
		Recipes: s.images.PresentAll(ctx, rows),
		Limit:   len(rows) < page.Size,
		Meta:    meta,
	}, nil
}
