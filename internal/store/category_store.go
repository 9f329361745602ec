// internal/store/category_store.go
package store

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shoplite/shoplite-backend/internal/models"
)

type CategoryStore struct {
	mu         sync.RWMutex
	categories map[uuid.UUID]models.Category
}

func NewCategoryStore() *CategoryStore {
	return &CategoryStore{categories: make(map[uuid.UUID]models.Category)}
}

func (s *CategoryStore) Create(category models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[category.ID]; ok {
		return ErrDuplicate
	}
	s.categories[category.ID] = category
	return nil
}

func (s *CategoryStore) GetByID(id uuid.UUID) (*models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	category, ok := s.categories[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &category, nil
}

// List returns every category ordered by name.
func (s *CategoryStore) List() []models.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]models.Category, 0, len(s.categories))
	for _, category := range s.categories {
		list = append(list, category)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Name < list[j].Name
	})
	return list
}

func (s *CategoryStore) Update(category models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[category.ID]; !ok {
		return ErrNotFound
	}
	category.UpdatedAt = time.Now().UTC()
	s.categories[category.ID] = category
	return nil
}

func (s *CategoryStore) Delete(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[id]; !ok {
		return ErrNotFound
	}
	delete(s.categories, id)
	return nil
}
