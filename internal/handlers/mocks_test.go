package handlers

import (
	"context"

	"esatalim/internal/common"
	"esatalim/internal/models"
	"esatalim/internal/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockListingService struct {
	mock.Mock
}

func (m *MockListingService) Search(ctx context.Context, filter *models.ListingFilter) (*models.ListingPage, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ListingPage), args.Error(1)
}

func (m *MockListingService) GetByID(ctx context.Context, id uuid.UUID) (*models.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Listing), args.Error(1)
}

func (m *MockListingService) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]*models.Listing, error) {
	args := m.Called(ctx, sellerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Listing), args.Error(1)
}

func (m *MockListingService) Create(ctx context.Context, caller common.Caller, input *models.ListingInput) (*models.Listing, error) {
	args := m.Called(ctx, caller, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Listing), args.Error(1)
}

func (m *MockListingService) Update(ctx context.Context, caller common.Caller, id uuid.UUID, update *models.ListingUpdate) (*models.Listing, error) {
	args := m.Called(ctx, caller, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Listing), args.Error(1)
}

func (m *MockListingService) SetFeatured(ctx context.Context, id uuid.UUID, featured bool) (*models.Listing, error) {
	args := m.Called(ctx, id, featured)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Listing), args.Error(1)
}

func (m *MockListingService) Delete(ctx context.Context, caller common.Caller, id uuid.UUID) error {
	args := m.Called(ctx, caller, id)
	return args.Error(0)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetProfile(ctx context.Context, id uuid.UUID) (*models.UserProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserProfile), args.Error(1)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, caller common.Caller, id uuid.UUID, update *models.ProfileUpdate) (*models.User, error) {
	args := m.Called(ctx, caller, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) ListUsers(ctx context.Context, page, limit int) ([]*models.User, models.Pagination, error) {
	args := m.Called(ctx, page, limit)
	users, _ := args.Get(0).([]*models.User)
	return users, args.Get(1).(models.Pagination), args.Error(2)
}

func (m *MockUserService) ListFavorites(ctx context.Context, userID uuid.UUID) ([]*models.Favorite, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Favorite), args.Error(1)
}

func (m *MockUserService) AddFavorite(ctx context.Context, caller common.Caller, userID, listingID uuid.UUID) error {
	args := m.Called(ctx, caller, userID, listingID)
	return args.Error(0)
}

func (m *MockUserService) RemoveFavorite(ctx context.Context, caller common.Caller, userID, listingID uuid.UUID) error {
	args := m.Called(ctx, caller, userID, listingID)
	return args.Error(0)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, input *models.RegisterInput) (*models.User, string, error) {
	args := m.Called(ctx, input)
	user, _ := args.Get(0).(*models.User)
	return user, args.String(1), args.Error(2)
}

func (m *MockAuthService) Login(ctx context.Context, input *models.LoginInput) (*models.User, string, error) {
	args := m.Called(ctx, input)
	user, _ := args.Get(0).(*models.User)
	return user, args.String(1), args.Error(2)
}

func (m *MockAuthService) Me(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) GenerateToken(user *models.User) (string, error) {
	args := m.Called(user)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) ValidateToken(token string) (*services.TokenClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.TokenClaims), args.Error(1)
}

type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) ListActive(ctx context.Context) ([]*models.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Category), args.Error(1)
}

func (m *MockCategoryService) ListAll(ctx context.Context) ([]*models.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Category), args.Error(1)
}

func (m *MockCategoryService) GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryService) Create(ctx context.Context, input *models.CategoryInput) (*models.Category, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryService) Update(ctx context.Context, id uuid.UUID, input *models.CategoryInput) (*models.Category, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCategoryService) WarmCache(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type stubPinger struct {
	err error
}

func (s stubPinger) Ping(ctx context.Context) error {
	return s.err
}
