// internal/store/user_store.go
package store

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shoplite/shoplite-backend/internal/models"
)

type UserStore struct {
	mu      sync.RWMutex
	users   map[uuid.UUID]models.User
	byEmail map[string]uuid.UUID
	byName  map[string]uuid.UUID
}

func NewUserStore() *UserStore {
	return &UserStore{
		users:   make(map[uuid.UUID]models.User),
		byEmail: make(map[string]uuid.UUID),
		byName:  make(map[string]uuid.UUID),
	}
}

// Create rejects duplicate emails and usernames, both case-insensitively.
func (s *UserStore) Create(user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := strings.ToLower(user.Email)
	name := strings.ToLower(user.Username)
	if _, ok := s.byEmail[email]; ok {
		return ErrDuplicate
	}
	if _, ok := s.byName[name]; ok {
		return ErrDuplicate
	}

	s.users[user.ID] = user
	s.byEmail[email] = user.ID
	s.byName[name] = user.ID
	return nil
}

func (s *UserStore) GetByID(id uuid.UUID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (s *UserStore) GetByEmail(email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, ErrNotFound
	}
	user := s.users[id]
	return &user, nil
}

// Update replaces a stored user. Email and username are immutable here;
// profile edits that change them would need the lookup maps rebuilt.
func (s *UserStore) Update(user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; !ok {
		return ErrNotFound
	}
	user.UpdatedAt = time.Now().UTC()
	s.users[user.ID] = user
	return nil
}
