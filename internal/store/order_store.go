// internal/store/order_store.go
package store

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shoplite/shoplite-backend/internal/models"
)

type OrderStore struct {
	mu     sync.RWMutex
	orders map[uuid.UUID]models.Order
}

func NewOrderStore() *OrderStore {
	return &OrderStore{orders: make(map[uuid.UUID]models.Order)}
}

func (s *OrderStore) Create(order models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orders[order.ID]; ok {
		return ErrDuplicate
	}
	s.orders[order.ID] = order
	return nil
}

func (s *OrderStore) GetByID(id uuid.UUID) (*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order, ok := s.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &order, nil
}

// ListByUser returns a user's orders, newest first.
func (s *OrderStore) ListByUser(userID uuid.UUID) []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var list []models.Order
	for _, order := range s.orders {
		if order.UserID == userID {
			list = append(list, order)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list
}

func (s *OrderStore) Update(order models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orders[order.ID]; !ok {
		return ErrNotFound
	}
	order.UpdatedAt = time.Now().UTC()
	s.orders[order.ID] = order
	return nil
}
