// internal/services/category_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/shoplite/shoplite-backend/internal/models"
	"github.com/shoplite/shoplite-backend/internal/store"
	"github.com/shoplite/shoplite-backend/internal/utils"
)

type CategoryService struct {
	store *store.Store
}

type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description,omitempty" validate:"omitempty,max=500"`
}

type UpdateCategoryRequest struct {
	Name        string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Description string `json:"description,omitempty" validate:"omitempty,max=500"`
}

func NewCategoryService(s *store.Store) *CategoryService {
	return &CategoryService{store: s}
}

func (s *CategoryService) List() []models.Category {
	return s.store.Categories.List()
}

func (s *CategoryService) Get(id uuid.UUID) (*models.Category, error) {
	category, err := s.store.Categories.GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errors.New("category not found")
		}
		return nil, fmt.Errorf("store error: %w", err)
	}
	return category, nil
}

func (s *CategoryService) Create(req *CreateCategoryRequest) (*models.Category, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	category := &models.Category{
		BaseModel:   models.NewBaseModel(),
		Name:        req.Name,
		Description: req.Description,
	}

	if err := s.store.Categories.Create(*category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

func (s *CategoryService) Update(id uuid.UUID, req *UpdateCategoryRequest) (*models.Category, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	category, err := s.store.Categories.GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errors.New("category not found")
		}
		return nil, fmt.Errorf("store error: %w", err)
	}

	if req.Name != "" {
		category.Name = req.Name
	}
	if req.Description != "" {
		category.Description = req.Description
	}

	if err := s.store.Categories.Update(*category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return category, nil
}

// Delete refuses to remove a category that products still reference, so the
// catalog never points at a missing category.
func (s *CategoryService) Delete(id uuid.UUID) error {
	if _, err := s.store.Categories.GetByID(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return errors.New("category not found")
		}
		return fmt.Errorf("store error: %w", err)
	}

	if n := s.store.Products.CountByCategory(id); n > 0 {
		return fmt.Errorf("cannot delete category with %d products", n)
	}

	if err := s.store.Categories.Delete(id); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}
