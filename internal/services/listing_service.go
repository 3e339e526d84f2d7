package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"esatalim/internal/common"
	"esatalim/internal/models"
	"esatalim/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	MaxImages    = 10
	MaxImageSize = 5 << 20
)

// imageExtensions maps the accepted upload content types to object key extensions
var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

type ListingService interface {
	Search(ctx context.Context, filter *models.ListingFilter) (*models.ListingPage, error)
	// GetByID counts a view and returns the populated listing
	GetByID(ctx context.Context, id uuid.UUID) (*models.Listing, error)
	ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]*models.Listing, error)
	Create(ctx context.Context, caller common.Caller, input *models.ListingInput) (*models.Listing, error)
	Update(ctx context.Context, caller common.Caller, id uuid.UUID, update *models.ListingUpdate) (*models.Listing, error)
	SetFeatured(ctx context.Context, id uuid.UUID, featured bool) (*models.Listing, error)
	Delete(ctx context.Context, caller common.Caller, id uuid.UUID) error
}

type listingService struct {
	listingRepo  repositories.ListingRepository
	categoryRepo repositories.CategoryRepository
	images       ImageStore
	queryTimeout time.Duration
	log          *zap.Logger
}

func NewListingService(listingRepo repositories.ListingRepository, categoryRepo repositories.CategoryRepository,
	images ImageStore, queryTimeout time.Duration, log *zap.Logger) ListingService {
	return &listingService{
		listingRepo:  listingRepo,
		categoryRepo: categoryRepo,
		images:       images,
		queryTimeout: queryTimeout,
		log:          log,
	}
}

func (s *listingService) Search(ctx context.Context, filter *models.ListingFilter) (*models.ListingPage, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	listings, total, err := s.listingRepo.Search(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &models.ListingPage{
		Products:   listings,
		Pagination: models.NewPagination(filter.Page, filter.Limit, total),
	}, nil
}

func (s *listingService) GetByID(ctx context.Context, id uuid.UUID) (*models.Listing, error) {
	if err := s.listingRepo.IncrementViews(ctx, id); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, err
		}
		// A lost view is acceptable; the read itself still has to succeed
		s.log.Warn("Failed to increment listing views", zap.String("listing_id", id.String()), zap.Error(err))
	}
	return s.listingRepo.GetByID(ctx, id)
}

func (s *listingService) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]*models.Listing, error) {
	return s.listingRepo.ListBySeller(ctx, sellerID)
}

func (s *listingService) Create(ctx context.Context, caller common.Caller, input *models.ListingInput) (*models.Listing, error) {
	verr := validateStruct(input)
	price := parseListingPrice(verr, input.Price)
	validateImages(verr, input.Images)
	if verr.HasErrors() {
		return nil, verr
	}

	categoryID, _ := uuid.Parse(input.Category)
	if _, err := s.categoryRepo.GetByID(ctx, categoryID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NewValidationError("category", "Category does not exist", input.Category)
		}
		return nil, fmt.Errorf("load category %s: %w", categoryID, err)
	}

	listing := &models.Listing{
		ID:             uuid.New(),
		Title:          strings.TrimSpace(input.Title),
		Description:    strings.TrimSpace(input.Description),
		Price:          price,
		CategoryID:     categoryID,
		Subcategory:    strings.TrimSpace(input.Subcategory),
		Condition:      input.Condition,
		Location:       trimLocation(input.Location),
		SellerID:       caller.ID,
		Status:         models.StatusActive,
		Tags:           normalizeTags(input.Tags),
		Specifications: normalizeSpecifications(input.Specifications),
	}

	images, err := s.storeImages(ctx, listing, input.Images)
	if err != nil {
		return nil, err
	}
	listing.Images = images

	if err := s.listingRepo.Create(ctx, listing); err != nil {
		s.removeImages(ctx, listing)
		return nil, fmt.Errorf("create listing: %w", err)
	}

	s.log.Info("Listing created",
		zap.String("listing_id", listing.ID.String()),
		zap.String("seller_id", caller.ID.String()),
		zap.Int("images", len(images)))

	return s.listingRepo.GetByID(ctx, listing.ID)
}

func (s *listingService) Update(ctx context.Context, caller common.Caller, id uuid.UUID, update *models.ListingUpdate) (*models.Listing, error) {
	verr := validateStruct(update)
	if update.Price != nil && update.Price.IsNegative() {
		verr.Add("price", "Price must be a non-negative number", update.Price.String())
	}
	if verr.HasErrors() {
		return nil, verr
	}

	listing, err := s.listingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.CanModify(listing.SellerID) {
		return nil, common.Forbidden("Not authorized to update this product")
	}
	if update.Status != nil && !listing.Status.CanTransition(*update.Status) {
		return nil, common.InvalidTransition(string(listing.Status), string(*update.Status))
	}

	applyListingUpdate(listing, update)
	if err := s.listingRepo.Update(ctx, listing); err != nil {
		return nil, fmt.Errorf("update listing %s: %w", id, err)
	}
	return listing, nil
}

func (s *listingService) SetFeatured(ctx context.Context, id uuid.UUID, featured bool) (*models.Listing, error) {
	if err := s.listingRepo.SetFeatured(ctx, id, featured); err != nil {
		return nil, err
	}
	return s.listingRepo.GetByID(ctx, id)
}

func (s *listingService) Delete(ctx context.Context, caller common.Caller, id uuid.UUID) error {
	listing, err := s.listingRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !caller.CanModify(listing.SellerID) {
		return common.Forbidden("Not authorized to delete this product")
	}

	if err := s.listingRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete listing %s: %w", id, err)
	}
	s.removeImages(ctx, listing)
	return nil
}

// storeImages uploads every image under <seller>/<listing>/<n><ext>. On
// failure the images uploaded so far are removed again.
func (s *listingService) storeImages(ctx context.Context, listing *models.Listing, uploads []models.ImageUpload) ([]models.ListingImage, error) {
	images := make([]models.ListingImage, 0, len(uploads))
	for i, upload := range uploads {
		key := fmt.Sprintf("%s%d%s", imagePrefix(listing), i, imageExtensions[upload.ContentType])

		url, err := s.uploadImage(ctx, key, upload)
		if err != nil {
			s.removeImages(ctx, listing)
			return nil, fmt.Errorf("store image %d: %w", i, err)
		}
		images = append(images, models.ListingImage{URL: url, Alt: listing.Title})
	}
	return images, nil
}

func (s *listingService) uploadImage(ctx context.Context, key string, upload models.ImageUpload) (string, error) {
	file, err := upload.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()
	return s.images.Upload(ctx, key, file, upload.Size, upload.ContentType)
}

func (s *listingService) removeImages(ctx context.Context, listing *models.Listing) {
	if err := s.images.RemovePrefix(ctx, imagePrefix(listing)); err != nil {
		s.log.Warn("Failed to remove listing images",
			zap.String("listing_id", listing.ID.String()),
			zap.Error(err))
	}
}

func imagePrefix(listing *models.Listing) string {
	return fmt.Sprintf("%s/%s/", listing.SellerID, listing.ID)
}

func parseListingPrice(verr *common.ValidationError, raw string) decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		// Already reported by the required tag
		return decimal.Zero
	}
	price, err := decimal.NewFromString(raw)
	if err != nil {
		verr.Add("price", "Price must be a number", raw)
		return decimal.Zero
	}
	if price.IsNegative() {
		verr.Add("price", "Price must be a non-negative number", raw)
	}
	return price
}

func validateImages(verr *common.ValidationError, uploads []models.ImageUpload) {
	switch {
	case len(uploads) == 0:
		verr.Add("images", "At least one image is required", nil)
		return
	case len(uploads) > MaxImages:
		verr.Add("images", fmt.Sprintf("At most %d images are allowed", MaxImages), len(uploads))
		return
	}

	for i, upload := range uploads {
		field := fmt.Sprintf("images[%d]", i)
		if _, ok := imageExtensions[upload.ContentType]; !ok {
			verr.Add(field, "Only JPEG, PNG, WEBP and GIF images are allowed", upload.Filename)
		}
		if upload.Size > MaxImageSize {
			verr.Add(field, "Images must be 5MB or smaller", upload.Filename)
		}
	}
}

func applyListingUpdate(listing *models.Listing, update *models.ListingUpdate) {
	if update.Title != nil {
		listing.Title = strings.TrimSpace(*update.Title)
	}
	if update.Description != nil {
		listing.Description = strings.TrimSpace(*update.Description)
	}
	if update.Price != nil {
		listing.Price = *update.Price
	}
	if update.Subcategory != nil {
		listing.Subcategory = strings.TrimSpace(*update.Subcategory)
	}
	if update.Condition != nil {
		listing.Condition = *update.Condition
	}
	if update.Location != nil {
		listing.Location = trimLocation(*update.Location)
	}
	if update.Status != nil {
		listing.Status = *update.Status
	}
	if update.Tags != nil {
		listing.Tags = normalizeTags(update.Tags)
	}
	if update.Specifications != nil {
		listing.Specifications = normalizeSpecifications(update.Specifications)
	}
	if update.Images != nil {
		listing.Images = update.Images
	}
}

func trimLocation(loc models.Location) models.Location {
	return models.Location{
		City:     strings.TrimSpace(loc.City),
		District: strings.TrimSpace(loc.District),
	}
}

// normalizeTags trims tags and drops blanks and duplicates, keeping first-seen order
func normalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

func normalizeSpecifications(specs map[string]string) map[string]string {
	out := make(map[string]string, len(specs))
	for k, v := range specs {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		out[k] = strings.TrimSpace(v)
	}
	return out
}
