// internal/store/cart_store.go
package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shoplite/shoplite-backend/internal/models"
)

// CartStore holds one cart per user. A missing cart reads as an empty one,
// so carts spring into existence on first use and vanish on Clear.
type CartStore struct {
	mu    sync.RWMutex
	carts map[uuid.UUID]models.Cart
}

func NewCartStore() *CartStore {
	return &CartStore{carts: make(map[uuid.UUID]models.Cart)}
}

func (s *CartStore) Get(userID uuid.UUID) models.Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cart, ok := s.carts[userID]
	if !ok {
		return models.Cart{UserID: userID, Items: []models.CartItem{}}
	}
	items := make([]models.CartItem, len(cart.Items))
	copy(items, cart.Items)
	cart.Items = items
	return cart
}

func (s *CartStore) Save(cart models.Cart) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart.UpdatedAt = time.Now().UTC()
	items := make([]models.CartItem, len(cart.Items))
	copy(items, cart.Items)
	cart.Items = items
	s.carts[cart.UserID] = cart
}

func (s *CartStore) Clear(userID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, userID)
}
