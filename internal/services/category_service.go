package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"finbook/internal/apierr"
	"finbook/internal/models"
	"finbook/internal/store"
)

// maxCategoryDepth is the deepest allowed parent chain, the category itself
// included.
const maxCategoryDepth = 3

type CategoryService struct {
	categories CategoryStore
}

func NewCategoryService(categories CategoryStore) *CategoryService {
	return &CategoryService{categories: categories}
}

var errCategoryNotFound = apierr.New(http.StatusNotFound, apierr.CodeCategoryNotFound, "Category not found or access denied")

func (s *CategoryService) List(ctx context.Context, userID int, includeInactive bool) ([]models.CategoryDTO, error) {
	rows, err := s.categories.ListByUser(ctx, userID, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("Failed to fetch categories: %w", err)
	}
	categories := make([]models.CategoryDTO, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, categoryDTO(row))
	}
	return categories, nil
}

func (s *CategoryService) Get(ctx context.Context, userID, categoryID int) (models.CategoryDTO, error) {
	row, err := s.categories.GetByID(ctx, userID, categoryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.CategoryDTO{}, errCategoryNotFound
		}
		return models.CategoryDTO{}, fmt.Errorf("Failed to fetch category: %w", err)
	}
	return categoryDTO(row), nil
}

type CreateCategoryCommand struct {
	Name     string
	Type     string
	ParentID *int
}

func (s *CategoryService) Create(ctx context.Context, userID int, cmd CreateCategoryCommand) (models.CategoryDTO, error) {
	if cmd.ParentID != nil {
		parent, err := s.categories.GetByID(ctx, userID, *cmd.ParentID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return models.CategoryDTO{}, apierr.New(http.StatusBadRequest, apierr.CodeInvalidReference, "Referenced parent category no longer exists")
			}
			return models.CategoryDTO{}, fmt.Errorf("Failed to verify parent category: %w", err)
		}
		if !parent.Active {
			return models.CategoryDTO{}, apierr.New(http.StatusBadRequest, apierr.CodeInvalidReference, "Referenced parent category no longer exists")
		}
		if parent.Type != cmd.Type {
			return models.CategoryDTO{}, apierr.New(http.StatusBadRequest, apierr.CodeTypeMismatchError, "Category type must match parent type")
		}
		depth, err := s.categories.Depth(ctx, userID, *cmd.ParentID)
		if err != nil {
			return models.CategoryDTO{}, fmt.Errorf("Failed to verify category hierarchy: %w", err)
		}
		if depth >= maxCategoryDepth {
			return models.CategoryDTO{}, apierr.New(http.StatusBadRequest, apierr.CodeHierarchyError, "Maximum category depth exceeded")
		}
	}
	id, err := s.categories.Create(ctx, userID, cmd.Name, cmd.Type, cmd.ParentID)
	if err != nil {
		if isUniqueViolation(err) {
			return models.CategoryDTO{}, apierr.New(http.StatusConflict, apierr.CodeDuplicateResource, "Category with this name already exists")
		}
		return models.CategoryDTO{}, fmt.Errorf("Failed to create category: %w", err)
	}
	return s.Get(ctx, userID, id)
}

type UpdateCategoryCommand struct {
	Name *string
}

func (s *CategoryService) Update(ctx context.Context, userID, categoryID int, cmd UpdateCategoryCommand) (models.CategoryDTO, error) {
	affected, err := s.categories.Update(ctx, userID, categoryID, cmd.Name)
	if err != nil {
		if isUniqueViolation(err) {
			return models.CategoryDTO{}, apierr.New(http.StatusConflict, apierr.CodeDuplicateResource, "Category with this name already exists")
		}
		return models.CategoryDTO{}, fmt.Errorf("Failed to update category: %w", err)
	}
	if affected == 0 {
		return models.CategoryDTO{}, errCategoryNotFound
	}
	return s.Get(ctx, userID, categoryID)
}

// Deactivate refuses to soft-delete a category that still has active
// transactions; the blocking count travels as a typed detail field.
func (s *CategoryService) Deactivate(ctx context.Context, userID, categoryID int) error {
	if _, err := s.categories.GetByID(ctx, userID, categoryID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return errCategoryNotFound
		}
		return fmt.Errorf("Failed to verify category: %w", err)
	}
	count, err := s.categories.CountActiveTransactions(ctx, categoryID)
	if err != nil {
		return fmt.Errorf("Failed to verify category usage: %w", err)
	}
	if count > 0 {
		return apierr.New(http.StatusConflict, apierr.CodeCategoryInUse, "Cannot delete category with active transactions").
			WithDetails(apierr.CategoryInUseDetails{TransactionCount: count})
	}
	affected, err := s.categories.Deactivate(ctx, userID, categoryID)
	if err != nil {
		return fmt.Errorf("Failed to delete category: %w", err)
	}
	if affected == 0 {
		return errCategoryNotFound
	}
	return nil
}

func categoryDTO(row store.Category) models.CategoryDTO {
	return models.CategoryDTO{
		ID:        row.ID,
		Name:      row.Name,
		Type:      row.Type,
		ParentID:  row.ParentID,
		Active:    row.Active,
		CreatedAt: row.CreatedAt,
	}
}
