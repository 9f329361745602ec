// internal/store/store.go
package store

import (
	"errors"
)

var (
	ErrNotFound          = errors.New("store: not found")
	ErrDuplicate         = errors.New("store: already exists")
	ErrInsufficientStock = errors.New("store: insufficient stock")
)

// Store bundles every in-memory collection behind one handle, the way the
// whole API shares a single database connection. Nothing here persists
// across restarts; that is the point of this codebase.
type Store struct {
	Products   *ProductStore
	Categories *CategoryStore
	Users      *UserStore
	Carts      *CartStore
	Orders     *OrderStore
}

func New() *Store {
	return &Store{
		Products:   NewProductStore(),
		Categories: NewCategoryStore(),
		Users:      NewUserStore(),
		Carts:      NewCartStore(),
		Orders:     NewOrderStore(),
	}
}
