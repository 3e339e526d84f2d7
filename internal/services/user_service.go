package services

import (
	"context"
	"fmt"
	"strings"

	"esatalim/internal/common"
	"esatalim/internal/models"
	"esatalim/internal/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService interface {
	// GetProfile returns the user with the number of their active listings
	GetProfile(ctx context.Context, id uuid.UUID) (*models.UserProfile, error)
	UpdateProfile(ctx context.Context, caller common.Caller, id uuid.UUID, update *models.ProfileUpdate) (*models.User, error)
	ListUsers(ctx context.Context, page, limit int) ([]*models.User, models.Pagination, error)

	// Favorites
	ListFavorites(ctx context.Context, userID uuid.UUID) ([]*models.Favorite, error)
	AddFavorite(ctx context.Context, caller common.Caller, userID, listingID uuid.UUID) error
	RemoveFavorite(ctx context.Context, caller common.Caller, userID, listingID uuid.UUID) error
}

type userService struct {
	userRepo     repositories.UserRepository
	listingRepo  repositories.ListingRepository
	favoriteRepo repositories.FavoriteRepository
	log          *zap.Logger
}

func NewUserService(userRepo repositories.UserRepository, listingRepo repositories.ListingRepository,
	favoriteRepo repositories.FavoriteRepository, log *zap.Logger) UserService {
	return &userService{
		userRepo:     userRepo,
		listingRepo:  listingRepo,
		favoriteRepo: favoriteRepo,
		log:          log,
	}
}

func (s *userService) GetProfile(ctx context.Context, id uuid.UUID) (*models.UserProfile, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	count, err := s.listingRepo.CountActiveBySeller(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("count listings of %s: %w", id, err)
	}
	return &models.UserProfile{User: *user, ProductsCount: count}, nil
}

func (s *userService) UpdateProfile(ctx context.Context, caller common.Caller, id uuid.UUID, update *models.ProfileUpdate) (*models.User, error) {
	if verr := validateStruct(update); verr.HasErrors() {
		return nil, verr
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.CanModify(user.ID) {
		return nil, common.Forbidden("Not authorized to update this profile")
	}

	if update.Name != nil {
		user.Name = strings.TrimSpace(*update.Name)
	}
	if update.Phone != nil {
		user.Phone = optionalString(*update.Phone)
	}
	if update.Avatar != nil {
		user.Avatar = optionalString(*update.Avatar)
	}
	if update.Location != nil {
		user.Location = models.UserLocation{
			City:     strings.TrimSpace(update.Location.City),
			District: strings.TrimSpace(update.Location.District),
			Address:  strings.TrimSpace(update.Location.Address),
		}
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user %s: %w", id, err)
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, page, limit int) ([]*models.User, models.Pagination, error) {
	users, total, err := s.userRepo.List(ctx, limit, models.PageOffset(page, limit))
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return users, models.NewPagination(page, limit, total), nil
}

func (s *userService) ListFavorites(ctx context.Context, userID uuid.UUID) ([]*models.Favorite, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.favoriteRepo.List(ctx, userID)
}

// AddFavorite is idempotent. The listing must exist when it is added; once
// it is deleted the entry is dropped from the resolved list.
func (s *userService) AddFavorite(ctx context.Context, caller common.Caller, userID, listingID uuid.UUID) error {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}
	if caller.ID != userID {
		return common.Forbidden("Not authorized")
	}
	if _, err := s.listingRepo.GetByID(ctx, listingID); err != nil {
		return err
	}

	if err := s.favoriteRepo.Add(ctx, userID, listingID); err != nil {
		return fmt.Errorf("add favorite: %w", err)
	}
	s.log.Debug("Favorite added", zap.String("user_id", userID.String()), zap.String("listing_id", listingID.String()))
	return nil
}

// RemoveFavorite is idempotent; removing a listing that is not a favorite
// is not an error.
func (s *userService) RemoveFavorite(ctx context.Context, caller common.Caller, userID, listingID uuid.UUID) error {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}
	if caller.ID != userID {
		return common.Forbidden("Not authorized")
	}

	if err := s.favoriteRepo.Remove(ctx, userID, listingID); err != nil {
		return fmt.Errorf("remove favorite: %w", err)
	}
	return nil
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
