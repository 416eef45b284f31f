package api

import (
	"gorm.io/gorm"

	"github.com/pageza/recipe-feeds/backend/internal/recommend"
	"github.com/pageza/recipe-feeds/backend/internal/service"
)

// Services bundles the services behind the HTTP API.
type Services struct {
	Users           service.IUserService
	Recipes         service.IRecipeService
	Stars           service.IStarService
	Books           service.IBookService
	Feeds           service.IFeedService
	Recommendations service.IRecommendationService
	Images          *service.ImageNormalizer
}

// NewServices wires the gorm-backed services. images may be nil, in which
// case only inline images are rendered.
func NewServices(db *gorm.DB, images *service.ImageNormalizer, engine *recommend.Engine) *Services {
	if images == nil {
		images = service.NewImageNormalizer(nil, 0)
	}
	users := service.NewUserService(db)
	recipes := service.NewRecipeService(db)
	stars := service.NewStarService(db)
	recs := service.NewRecommendationService(users, recipes, stars, engine, images)

	return &Services{
		Users:           users,
		Recipes:         recipes,
		Stars:           stars,
		Books:           service.NewBookService(db),
		Feeds:           service.NewFeedService(db, images, recs),
		Recommendations: recs,
		Images:          images,
	}
}
