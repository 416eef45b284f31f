package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/recipe-feeds/backend/internal/models"
	"github.com/pageza/recipe-feeds/backend/internal/service"
	"github.com/pageza/recipe-feeds/backend/internal/types"
)

// MockFeedService is a mock implementation of the feed service
type MockFeedService struct {
	mock.Mock
}

func (m *MockFeedService) Public(ctx context.Context, page service.Page) (*types.FeedResponse, error) {
	return feedResult(m.Called(ctx, page))
}

func (m *MockFeedService) Popular(ctx context.Context, page service.Page) (*types.FeedResponse, error) {
	return feedResult(m.Called(ctx, page))
}

func (m *MockFeedService) ByUser(ctx context.Context, username string, page service.Page) (*types.FeedResponse, error) {
	return feedResult(m.Called(ctx, username, page))
}

func (m *MockFeedService) Book(ctx context.Context, bookID uuid.UUID, requester string, page service.Page) (*types.FeedResponse, error) {
	return feedResult(m.Called(ctx, bookID, requester, page))
}

func (m *MockFeedService) Recommended(ctx context.Context, username string, page service.Page) (*types.FeedResponse, error) {
	return feedResult(m.Called(ctx, username, page))
}

// MockRecommendationService is a mock implementation of the recommendation service
type MockRecommendationService struct {
	mock.Mock
}

func (m *MockRecommendationService) Recommend(ctx context.Context, q service.RecommendationQuery) (*types.FeedResponse, error) {
	return feedResult(m.Called(ctx, q))
}

// MockUserService is a mock implementation of the user service
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) CreateUser(ctx context.Context, req *types.CreateUserRequest) (*models.User, error) {
	return userResult(m.Called(ctx, req))
}

func (m *MockUserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return userResult(m.Called(ctx, username))
}

func (m *MockUserService) UpdatePreferences(ctx context.Context, username string, req *types.UpdatePreferencesRequest) (*models.User, error) {
	return userResult(m.Called(ctx, username, req))
}

func feedResult(args mock.Arguments) (*types.FeedResponse, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.FeedResponse), args.Error(1)
}

func userResult(args mock.Arguments) (*models.User, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

var (
	_ service.IFeedService           = (*MockFeedService)(nil)
	_ service.IRecommendationService = (*MockRecommendationService)(nil)
	_ service.IUserService           = (*MockUserService)(nil)
)
