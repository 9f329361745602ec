// internal/services/cart_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/shoplite/shoplite-backend/internal/models"
	"github.com/shoplite/shoplite-backend/internal/store"
	"github.com/shoplite/shoplite-backend/internal/utils"
)

// CartService mirrors the client's optimistic cart state on the server. The
// only guarantees are the store's mutex and a stock check at mutation time;
// stock is not reserved until checkout.
type CartService struct {
	store *store.Store
}

type AddCartItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"min=0"`
}

func NewCartService(s *store.Store) *CartService {
	return &CartService{store: s}
}

func (s *CartService) Get(userID uuid.UUID) models.Cart {
	return s.store.Carts.Get(userID)
}

// AddItem puts a product in the cart, merging quantities when it is already
// there. The captured unit price is the catalog price at add time.
func (s *CartService) AddItem(userID uuid.UUID, req *AddCartItemRequest) (*models.Cart, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	product, err := s.store.Products.GetByID(req.ProductID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errors.New("product not found")
		}
		return nil, fmt.Errorf("store error: %w", err)
	}

	cart := s.store.Carts.Get(userID)

	quantity := req.Quantity
	for _, item := range cart.Items {
		if item.ProductID == req.ProductID {
			quantity += item.Quantity
		}
	}
	if quantity > product.Stock {
		return nil, fmt.Errorf("only %d units of %q in stock", product.Stock, product.Name)
	}

	updated := false
	for i, item := range cart.Items {
		if item.ProductID == req.ProductID {
			cart.Items[i].Quantity = quantity
			updated = true
			break
		}
	}
	if !updated {
		cart.Items = append(cart.Items, models.CartItem{
			ProductID: product.ID,
			Name:      product.Name,
			UnitPrice: product.Price,
			Quantity:  quantity,
			AddedAt:   time.Now().UTC(),
		})
	}

	s.store.Carts.Save(cart)
	cart = s.store.Carts.Get(userID)
	return &cart, nil
}

// UpdateItem sets an item's quantity; zero removes it.
func (s *CartService) UpdateItem(userID, productID uuid.UUID, req *UpdateCartItemRequest) (*models.Cart, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	cart := s.store.Carts.Get(userID)

	index := -1
	for i, item := range cart.Items {
		if item.ProductID == productID {
			index = i
			break
		}
	}
	if index < 0 {
		return nil, errors.New("item not in cart")
	}

	if req.Quantity == 0 {
		cart.Items = append(cart.Items[:index], cart.Items[index+1:]...)
	} else {
		product, err := s.store.Products.GetByID(productID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, errors.New("product not found")
			}
			return nil, fmt.Errorf("store error: %w", err)
		}
		if req.Quantity > product.Stock {
			return nil, fmt.Errorf("only %d units of %q in stock", product.Stock, product.Name)
		}
		cart.Items[index].Quantity = req.Quantity
	}

	s.store.Carts.Save(cart)
	cart = s.store.Carts.Get(userID)
	return &cart, nil
}

func (s *CartService) RemoveItem(userID, productID uuid.UUID) (*models.Cart, error) {
	return s.UpdateItem(userID, productID, &UpdateCartItemRequest{Quantity: 0})
}

func (s *CartService) Clear(userID uuid.UUID) {
	s.store.Carts.Clear(userID)
}
