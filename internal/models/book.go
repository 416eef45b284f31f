package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Book is a named, ordered collection of recipes owned by a user.
type Book struct {
	ID          uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	OwnerID     uuid.UUID `gorm:"type:varchar(36);not null;index" json:"owner_id"`
	Owner       *User     `gorm:"foreignKey:OwnerID" json:"-"`
}

// BeforeCreate assigns an ID when none was set.
func (b *Book) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// BookRecipe places a recipe in a book.
type BookRecipe struct {
	BookID   uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"book_id"`
	RecipeID uuid.UUID `gorm:"type:varchar(36);primaryKey;index" json:"recipe_id"`
	AddedAt  time.Time `gorm:"not null;index" json:"added_at"`
}

func (BookRecipe) TableName() string {
	return "book_recipes"
}
