// internal/services/product_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/shoplite/shoplite-backend/internal/catalog"
	"github.com/shoplite/shoplite-backend/internal/models"
	"github.com/shoplite/shoplite-backend/internal/store"
	"github.com/shoplite/shoplite-backend/internal/utils"
)

type ProductService struct {
	store *store.Store
}

type CreateProductRequest struct {
	Name        string     `json:"name" validate:"required,min=3,max=255"`
	Description string     `json:"description" validate:"required,min=10"`
	Price       float64    `json:"price" validate:"required,gte=0"`
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
	Stock       int        `json:"stock" validate:"gte=0"`
	Rating      float64    `json:"rating" validate:"gte=0,lte=5"`
}

type UpdateProductRequest struct {
	Name        string     `json:"name,omitempty" validate:"omitempty,min=3,max=255"`
	Description string     `json:"description,omitempty" validate:"omitempty,min=10"`
	Price       *float64   `json:"price,omitempty" validate:"omitempty,gte=0"`
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
	Stock       *int       `json:"stock,omitempty" validate:"omitempty,gte=0"`
	Rating      *float64   `json:"rating,omitempty" validate:"omitempty,gte=0,lte=5"`
}

func NewProductService(s *store.Store) *ProductService {
	return &ProductService{store: s}
}

// List evaluates the query pipeline against a fresh catalog snapshot, so a
// concurrent catalog write cannot tear an in-flight page.
func (s *ProductService) List(query catalog.Query) (*catalog.Page, error) {
	return catalog.Evaluate(s.store.Products.Snapshot(), query)
}

func (s *ProductService) Get(id uuid.UUID) (*models.Product, error) {
	product, err := s.store.Products.GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errors.New("product not found")
		}
		return nil, fmt.Errorf("store error: %w", err)
	}
	return product, nil
}

// Popular returns the top-rated products, reusing the same pipeline the
// listing endpoint goes through.
func (s *ProductService) Popular(limit int) ([]models.Product, error) {
	if limit < 1 || limit > 50 {
		limit = 10
	}
	page, err := catalog.Evaluate(s.store.Products.Snapshot(), catalog.Query{
		Sort:     catalog.SortRatingDesc,
		Page:     1,
		PageSize: limit,
	})
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

func (s *ProductService) Create(req *CreateProductRequest) (*models.Product, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if req.CategoryID != nil {
		if _, err := s.store.Categories.GetByID(*req.CategoryID); err != nil {
			return nil, errors.New("category not found")
		}
	}

	product := &models.Product{
		BaseModel:   models.NewBaseModel(),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		CategoryID:  req.CategoryID,
		Stock:       req.Stock,
		Rating:      req.Rating,
	}

	if err := s.store.Products.Create(*product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

func (s *ProductService) Update(id uuid.UUID, req *UpdateProductRequest) (*models.Product, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	product, err := s.store.Products.GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errors.New("product not found")
		}
		return nil, fmt.Errorf("store error: %w", err)
	}

	if req.Name != "" {
		product.Name = req.Name
	}
	if req.Description != "" {
		product.Description = req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.CategoryID != nil {
		if _, err := s.store.Categories.GetByID(*req.CategoryID); err != nil {
			return nil, errors.New("category not found")
		}
		product.CategoryID = req.CategoryID
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.Rating != nil {
		product.Rating = *req.Rating
	}

	if err := s.store.Products.Update(*product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return product, nil
}

func (s *ProductService) Delete(id uuid.UUID) error {
	if err := s.store.Products.Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return errors.New("product not found")
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

// AttachImage records an uploaded image URL on a product.
func (s *ProductService) AttachImage(id uuid.UUID, url string) (*models.Product, error) {
	product, err := s.store.Products.GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errors.New("product not found")
		}
		return nil, fmt.Errorf("store error: %w", err)
	}

	product.ImageURLs = append(product.ImageURLs, url)
	if err := s.store.Products.Update(*product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return product, nil
}
