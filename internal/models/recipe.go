package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

type Recipe struct {
	ID           uuid.UUID  `gorm:"type:varchar(36);primaryKey" json:"id"`
	CreatedAt    time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	Title        string     `gorm:"size:200;not null" json:"title"`
	Image        []byte     `json:"-"`
	ImageKey     string     `gorm:"size:255" json:"-"`
	ChefName     string     `gorm:"size:100" json:"chef_name"`
	UserID       uuid.UUID  `gorm:"type:varchar(36);not null;index" json:"user_id"`
	User         *User      `gorm:"foreignKey:UserID" json:"-"`
	Visibility   string     `gorm:"size:16;not null;default:'public';index" json:"visibility"`
	Description  string     `gorm:"type:text" json:"description"`
	Quantities   StringList `gorm:"not null" json:"quantities"`
	Ingredients  StringList `gorm:"not null" json:"ingredients"`
	Steps        StringList `gorm:"not null" json:"steps"`
	Diet         StringList `json:"diet"`
	Categories   StringList `json:"categories"`
	CuisineTypes StringList `json:"cuisine_types"`
	Allergens    StringList `json:"allergens"`
}

// BeforeCreate assigns an ID when none was set.
func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.Visibility == "" {
		r.Visibility = VisibilityPublic
	}
	return nil
}

// IsPublic reports whether the recipe appears in shared feeds.
func (r *Recipe) IsPublic() bool {
	return r.Visibility != VisibilityPrivate
}

// IngredientRows builds the ingredient index rows for r.
func (r *Recipe) IngredientRows() []RecipeIngredient {
	rows := make([]RecipeIngredient, 0, len(r.Ingredients))
	for i, name := range r.Ingredients {
		qty := ""
		if i < len(r.Quantities) {
			qty = r.Quantities[i]
		}
		rows = append(rows, RecipeIngredient{
			RecipeID:   r.ID,
			Position:   i,
			Quantity:   qty,
			Name:       name,
			Normalized: strings.ToLower(strings.TrimSpace(name)),
		})
	}
	return rows
}

// RecipeIngredient indexes one ingredient line of a recipe for lookup by
// ingredient name. Rows are owned by the recipe and rebuilt on every write.
type RecipeIngredient struct {
	ID         uint      `gorm:"primaryKey" json:"-"`
	RecipeID   uuid.UUID `gorm:"type:varchar(36);not null;index" json:"recipe_id"`
	Position   int       `gorm:"not null" json:"position"`
	Quantity   string    `gorm:"size:100" json:"quantity"`
	Name       string    `gorm:"size:200;not null" json:"name"`
	Normalized string    `gorm:"size:200;not null;index" json:"-"`
}

func (RecipeIngredient) TableName() string {
	return "recipe_ingredients"
}
