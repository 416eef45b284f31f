package service

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/pageza/recipe-feeds/backend/internal/models"
	"github.com/pageza/recipe-feeds/backend/internal/types"
)

// UserService handles users and their preference profiles
type UserService struct {
	db *gorm.DB
}

// NewUserService creates a new UserService instance
func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// CreateUser registers a user. Usernames are unique.
func (s *UserService) CreateUser(ctx context.Context, req *types.CreateUserRequest) (*models.User, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, invalid("username is required")
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if count > 0 {
		return nil, invalid("username %q is taken", username)
	}

	user := &models.User{
		Username:              username,
		DisplayName:           req.DisplayName,
		DietaryPreferences:    models.StringList(req.DietaryPreferences),
		PreferredCategories:   models.StringList(req.PreferredCategories),
		PreferredCuisineTypes: models.StringList(req.PreferredCuisineTypes),
		Allergies:             models.StringList(req.Allergies),
	}
	if user.DisplayName == "" {
		user.DisplayName = username
	}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// GetByUsername loads a user by username.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return findUser(ctx, s.db, username)
}

// UpdatePreferences replaces each preference set present in req.
func (s *UserService) UpdatePreferences(ctx context.Context, username string, req *types.UpdatePreferencesRequest) (*models.User, error) {
	user, err := findUser(ctx, s.db, username)
	if err != nil {
		return nil, err
	}

	if req.DietaryPreferences != nil {
		user.DietaryPreferences = models.StringList(req.DietaryPreferences)
	}
	if req.PreferredCategories != nil {
		user.PreferredCategories = models.StringList(req.PreferredCategories)
	}
	if req.PreferredCuisineTypes != nil {
		user.PreferredCuisineTypes = models.StringList(req.PreferredCuisineTypes)
	}
	if req.Allergies != nil {
		user.Allergies = models.StringList(req.Allergies)
	}

	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return nil, fmt.Errorf("failed to update preferences: %w", err)
	}
	return user, nil
}

// PresentUser converts a stored user to its public view.
func PresentUser(u *models.User) types.User {
	return types.User{
		ID:                    u.ID,
		Username:              u.Username,
		DisplayName:           u.DisplayName,
		DietaryPreferences:    nonNil(u.DietaryPreferences),
		PreferredCategories:   nonNil(u.PreferredCategories),
		PreferredCuisineTypes: nonNil(u.PreferredCuisineTypes),
		Allergies:             nonNil(u.Allergies),
	}
}

func findUser(ctx context.Context, db *gorm.DB, username string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, invalid("username is required")
	}
	var user models.User
	if err := db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, lookupErr(err, fmt.Sprintf("user %q", username))
	}
	return &user, nil
}
