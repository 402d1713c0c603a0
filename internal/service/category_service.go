package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tasktrack/tasktrack-api/internal/domain"
	"github.com/tasktrack/tasktrack-api/internal/platform/logger"
	"github.com/tasktrack/tasktrack-api/internal/store"
)

// CreateCategoryInput carries the caller-supplied fields for a new category.
type CreateCategoryInput struct {
	Name        string
	Description string
	Color       string
}

// CategoryPatch carries a partial category update. Nil fields are left
// untouched.
type CategoryPatch struct {
	Name        *string
	Description *string
	Color       *string
}

// CategoryService provides ownership-scoped category operations.
type CategoryService interface {
	// Create validates the input and stores a new category owned by userID.
	Create(ctx context.Context, userID uuid.UUID, input CreateCategoryInput) (*domain.Category, error)

	// Get retrieves a single category. Returns store.ErrCategoryNotFound
	// when the category is absent or owned by another user.
	Get(ctx context.Context, userID, categoryID uuid.UUID) (*domain.Category, error)

	// Update applies a partial update to a category owned by userID.
	Update(ctx context.Context, userID, categoryID uuid.UUID, patch CategoryPatch) (*domain.Category, error)

	// Delete removes a category owned by userID. Tasks referencing it are
	// detached by the store, not deleted.
	Delete(ctx context.Context, userID, categoryID uuid.UUID) error

	// List returns all categories owned by userID.
	List(ctx context.Context, userID uuid.UUID) ([]*domain.Category, error)
}

// categoryServiceImpl implements the CategoryService interface.
type categoryServiceImpl struct {
	categoryStore store.CategoryStore
	logger        *slog.Logger
}

// NewCategoryService creates a new CategoryService.
// It returns an error if the category store is nil.
func NewCategoryService(categoryStore store.CategoryStore, logger *slog.Logger) (CategoryService, error) {
	if categoryStore == nil {
		return nil, domain.NewValidationError("categoryStore", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &categoryServiceImpl{
		categoryStore: categoryStore,
		logger:        logger.With(slog.String("component", "category_service")),
	}, nil
}

// ownedCategory fetches a category and confirms it belongs to userID.
// Foreign-owned categories are reported as not found.
func (s *categoryServiceImpl) ownedCategory(ctx context.Context, userID, categoryID uuid.UUID) (*domain.Category, error) {
	category, err := s.categoryStore.GetByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if category.UserID != userID {
		log := logger.FromContextOrDefault(ctx, s.logger)
		log.Debug("ownership mismatch on category access",
			slog.String("category_id", categoryID.String()),
			slog.String("caller_id", userID.String()))
		return nil, store.ErrCategoryNotFound
	}
	return category, nil
}

// Create implements CategoryService.Create.
func (s *categoryServiceImpl) Create(ctx context.Context, userID uuid.UUID, input CreateCategoryInput) (*domain.Category, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	category, err := domain.NewCategory(userID, input.Name)
	if err != nil {
		return nil, err
	}
	category.Description = strings.TrimSpace(input.Description)
	category.Color = strings.TrimSpace(input.Color)

	if err := s.categoryStore.Create(ctx, category); err != nil {
		return nil, err
	}

	log.Info("category created",
		slog.String("category_id", category.ID.String()),
		slog.String("user_id", userID.String()))
	return category, nil
}

// Get implements CategoryService.Get.
func (s *categoryServiceImpl) Get(ctx context.Context, userID, categoryID uuid.UUID) (*domain.Category, error) {
	return s.ownedCategory(ctx, userID, categoryID)
}

// Update implements CategoryService.Update.
func (s *categoryServiceImpl) Update(ctx context.Context, userID, categoryID uuid.UUID, patch CategoryPatch) (*domain.Category, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	category, err := s.ownedCategory(ctx, userID, categoryID)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		category.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Description != nil {
		category.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Color != nil {
		category.Color = strings.TrimSpace(*patch.Color)
	}
	category.UpdatedAt = time.Now().UTC()

	if err := category.Validate(); err != nil {
		return nil, err
	}

	if err := s.categoryStore.Update(ctx, category); err != nil {
		return nil, err
	}

	log.Info("category updated",
		slog.String("category_id", category.ID.String()),
		slog.String("user_id", userID.String()))
	return category, nil
}

// Delete implements CategoryService.Delete.
func (s *categoryServiceImpl) Delete(ctx context.Context, userID, categoryID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.ownedCategory(ctx, userID, categoryID); err != nil {
		return err
	}

	if err := s.categoryStore.Delete(ctx, categoryID); err != nil {
		return err
	}

	log.Info("category deleted",
		slog.String("category_id", categoryID.String()),
		slog.String("user_id", userID.String()))
	return nil
}

// List implements CategoryService.List.
func (s *categoryServiceImpl) List(ctx context.Context, userID uuid.UUID) ([]*domain.Category, error) {
	return s.categoryStore.ListByUser(ctx, userID)
}
