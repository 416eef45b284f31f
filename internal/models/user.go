package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User owns recipes and books and carries the preference profile read by
// the recommendation engine.
type User struct {
	ID                    uuid.UUID  `gorm:"type:varchar(36);primaryKey" json:"id"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
	Username              string     `gorm:"size:50;not null;uniqueIndex" json:"username"`
	DisplayName           string     `gorm:"size:100" json:"display_name"`
	DietaryPreferences    StringList `json:"dietary_preferences"`
	PreferredCategories   StringList `json:"preferred_categories"`
	PreferredCuisineTypes StringList `json:"preferred_cuisine_types"`
	Allergies             StringList `json:"allergies"`
}

// BeforeCreate assigns an ID when none was set.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
