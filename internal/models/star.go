package models

import (
	"time"

	"github.com/google/uuid"
)

// Star is a user's 1-5 rating of a recipe. There is at most one row per
// (user, recipe); re-rating updates it in place.
type Star struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_star_user_recipe" json:"user_id"`
	RecipeID  uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_star_user_recipe;index" json:"recipe_id"`
	Value     int       `gorm:"not null;check:value >= 1 AND value <= 5" json:"stars"`
}

func (Star) TableName() string {
	return "stars"
}
