package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"esatalim/internal/caching"
	"esatalim/internal/common"
	"esatalim/internal/models"
	"esatalim/internal/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const categoryCacheTTL = 10 * time.Minute

type CategoryService interface {
	// ListActive returns active categories ordered by sort order then name,
	// served from cache when possible
	ListActive(ctx context.Context) ([]*models.Category, error)
	ListAll(ctx context.Context) ([]*models.Category, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	Create(ctx context.Context, input *models.CategoryInput) (*models.Category, error)
	Update(ctx context.Context, id uuid.UUID, input *models.CategoryInput) (*models.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// WarmCache reloads the active category list into the cache
	WarmCache(ctx context.Context) error
}

type categoryService struct {
	categoryRepo repositories.CategoryRepository
	cache        caching.CacheService
	log          *zap.Logger
}

func NewCategoryService(categoryRepo repositories.CategoryRepository, cache caching.CacheService, log *zap.Logger) CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		cache:        cache,
		log:          log,
	}
}

func (s *categoryService) ListActive(ctx context.Context) ([]*models.Category, error) {
	cached, err := s.cache.GetActiveCategories(ctx)
	if err != nil {
		s.log.Warn("Category cache read failed", zap.Error(err))
	} else if cached != nil {
		return cached, nil
	}

	categories, err := s.categoryRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetActiveCategories(ctx, categories, categoryCacheTTL); err != nil {
		s.log.Warn("Category cache write failed", zap.Error(err))
	}
	return categories, nil
}

func (s *categoryService) ListAll(ctx context.Context) ([]*models.Category, error) {
	return s.categoryRepo.ListAll(ctx)
}

func (s *categoryService) GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	return s.categoryRepo.GetByID(ctx, id)
}

func (s *categoryService) Create(ctx context.Context, input *models.CategoryInput) (*models.Category, error) {
	verr := validateStruct(input)
	if input.Name == nil || strings.TrimSpace(*input.Name) == "" {
		verr.Add("name", "name is required", nil)
	}
	if verr.HasErrors() {
		return nil, verr
	}

	category := &models.Category{
		ID:       uuid.New(),
		IsActive: true,
	}
	applyCategoryInput(category, input)

	if input.Parent != nil && *input.Parent != "" {
		parent, err := s.resolveParent(ctx, category, *input.Parent)
		if err != nil {
			return nil, err
		}
		category.ParentID = &parent.ID
		category.Parent = &models.CategoryRef{ID: parent.ID, Name: parent.Name}
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	s.invalidate(ctx)
	return category, nil
}

// Update applies the non-nil fields of input. An empty parent string makes
// the category top-level again.
func (s *categoryService) Update(ctx context.Context, id uuid.UUID, input *models.CategoryInput) (*models.Category, error) {
	verr := validateStruct(input)
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		verr.Add("name", "name is required", *input.Name)
	}
	if verr.HasErrors() {
		return nil, verr
	}

	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	applyCategoryInput(category, input)

	if input.Parent != nil {
		if *input.Parent == "" {
			category.ParentID = nil
			category.Parent = nil
		} else {
			parent, err := s.resolveParent(ctx, category, *input.Parent)
			if err != nil {
				return nil, err
			}
			children, err := s.categoryRepo.CountChildren(ctx, category.ID)
			if err != nil {
				return nil, fmt.Errorf("count subcategories of %s: %w", category.ID, err)
			}
			if children > 0 {
				return nil, common.NewValidationError("parent", "A category with subcategories cannot have a parent", *input.Parent)
			}
			category.ParentID = &parent.ID
			category.Parent = &models.CategoryRef{ID: parent.ID, Name: parent.Name}
		}
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("update category %s: %w", id, err)
	}
	s.invalidate(ctx)
	return category, nil
}

func (s *categoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *categoryService) WarmCache(ctx context.Context) error {
	categories, err := s.categoryRepo.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("load active categories: %w", err)
	}
	return s.cache.SetActiveCategories(ctx, categories, categoryCacheTTL)
}

// resolveParent loads the requested parent of category and enforces the two
// level hierarchy.
func (s *categoryService) resolveParent(ctx context.Context, category *models.Category, raw string) (*models.Category, error) {
	parentID, err := uuid.Parse(raw)
	if err != nil {
		return nil, common.NewValidationError("parent", "Invalid parent category ID", raw)
	}
	if parentID == category.ID {
		return nil, common.NewValidationError("parent", "A category cannot be its own parent", raw)
	}

	parent, err := s.categoryRepo.GetByID(ctx, parentID)
	if err != nil {
		if common.IsNotFound(err) {
			return nil, common.NewValidationError("parent", "Parent category does not exist", raw)
		}
		return nil, fmt.Errorf("load parent category %s: %w", parentID, err)
	}
	if !parent.IsTopLevel() {
		return nil, common.NewValidationError("parent", "Categories can only be nested one level deep", raw)
	}
	return parent, nil
}

func (s *categoryService) invalidate(ctx context.Context) {
	if err := s.cache.InvalidateCategories(ctx); err != nil {
		s.log.Warn("Category cache invalidation failed", zap.Error(err))
	}
}

func applyCategoryInput(category *models.Category, input *models.CategoryInput) {
	if input.Name != nil {
		category.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		category.Description = strings.TrimSpace(*input.Description)
	}
	if input.Icon != nil {
		icon := strings.TrimSpace(*input.Icon)
		if icon == "" {
			category.Icon = nil
		} else {
			category.Icon = &icon
		}
	}
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}
	if input.SortOrder != nil {
		category.SortOrder = *input.SortOrder
	}
}
