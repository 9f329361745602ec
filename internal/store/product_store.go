// internal/store/product_store.go
package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shoplite/shoplite-backend/internal/models"
)

// ProductStore keeps the catalog in insertion order so that the query
// pipeline's stable sorts have a deterministic base ordering to fall back on.
type ProductStore struct {
	mu       sync.RWMutex
	products []models.Product
	index    map[uuid.UUID]int
}

func NewProductStore() *ProductStore {
	return &ProductStore{index: make(map[uuid.UUID]int)}
}

func (s *ProductStore) Create(product models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.index[product.ID]; ok {
		return ErrDuplicate
	}
	s.index[product.ID] = len(s.products)
	s.products = append(s.products, product)
	return nil
}

func (s *ProductStore) GetByID(id uuid.UUID) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[id]
	if !ok {
		return nil, ErrNotFound
	}
	product := s.products[i]
	return &product, nil
}

func (s *ProductStore) Update(product models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[product.ID]
	if !ok {
		return ErrNotFound
	}
	product.UpdatedAt = time.Now().UTC()
	s.products[i] = product
	return nil
}

func (s *ProductStore) Delete(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return ErrNotFound
	}
	s.products = append(s.products[:i], s.products[i+1:]...)
	delete(s.index, id)
	for j := i; j < len(s.products); j++ {
		s.index[s.products[j].ID] = j
	}
	return nil
}

// Snapshot returns a copy of the catalog in insertion order. Callers own the
// copy, so a concurrent writer cannot invalidate an in-flight query.
func (s *ProductStore) Snapshot() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make([]models.Product, len(s.products))
	copy(snapshot, s.products)
	return snapshot
}

// AdjustStock applies a delta to a product's stock, refusing to go below
// zero. A negative delta is a reservation, a positive one a release.
func (s *ProductStore) AdjustStock(id uuid.UUID, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return ErrNotFound
	}
	next := s.products[i].Stock + delta
	if next < 0 {
		return ErrInsufficientStock
	}
	s.products[i].Stock = next
	s.products[i].UpdatedAt = time.Now().UTC()
	return nil
}

func (s *ProductStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products)
}

// CountByCategory reports how many products reference the given category.
func (s *ProductStore) CountByCategory(categoryID uuid.UUID) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	for _, p := range s.products {
		if p.CategoryID != nil && *p.CategoryID == categoryID {
			n++
		}
	}
	return n
}
