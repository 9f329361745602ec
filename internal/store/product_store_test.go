// internal/store/product_store_test.go
package store

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoplite/shoplite-backend/internal/models"
)

func newProduct(name string, price float64, stock int) models.Product {
	return models.Product{
		BaseModel: models.NewBaseModel(),
		Name:      name,
		Price:     price,
		Stock:     stock,
	}
}

func TestProductStoreCreateAndGet(t *testing.T) {
	s := NewProductStore()
	p := newProduct("Widget", 9.99, 5)

	require.NoError(t, s.Create(p))
	assert.ErrorIs(t, s.Create(p), ErrDuplicate)

	got, err := s.GetByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Widget", got.Name)

	_, err = s.GetByID(uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProductStoreSnapshotIsACopy(t *testing.T) {
	s := NewProductStore()
	require.NoError(t, s.Create(newProduct("First", 1, 1)))
	require.NoError(t, s.Create(newProduct("Second", 2, 1)))

	snapshot := s.Snapshot()
	require.Len(t, snapshot, 2)
	assert.Equal(t, []string{"First", "Second"}, []string{snapshot[0].Name, snapshot[1].Name})

	// Mutating the snapshot must not reach the store.
	snapshot[0].Name = "Mutated"
	again := s.Snapshot()
	assert.Equal(t, "First", again[0].Name)
}

func TestProductStoreDeleteKeepsOrder(t *testing.T) {
	s := NewProductStore()
	a := newProduct("A", 1, 1)
	b := newProduct("B", 2, 1)
	c := newProduct("C", 3, 1)
	for _, p := range []models.Product{a, b, c} {
		require.NoError(t, s.Create(p))
	}

	require.NoError(t, s.Delete(b.ID))

	snapshot := s.Snapshot()
	require.Len(t, snapshot, 2)
	assert.Equal(t, "A", snapshot[0].Name)
	assert.Equal(t, "C", snapshot[1].Name)

	// Index must still resolve after compaction.
	got, err := s.GetByID(c.ID)
	require.NoError(t, err)
	assert.Equal(t, "C", got.Name)
}

func TestProductStoreAdjustStock(t *testing.T) {
	s := NewProductStore()
	p := newProduct("Widget", 9.99, 3)
	require.NoError(t, s.Create(p))

	require.NoError(t, s.AdjustStock(p.ID, -2))
	got, err := s.GetByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Stock)

	assert.ErrorIs(t, s.AdjustStock(p.ID, -5), ErrInsufficientStock)

	// Failed adjustment must not change anything.
	got, err = s.GetByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Stock)

	require.NoError(t, s.AdjustStock(p.ID, 4))
	got, _ = s.GetByID(p.ID)
	assert.Equal(t, 5, got.Stock)
}

func TestUserStoreRejectsDuplicates(t *testing.T) {
	s := NewUserStore()
	u := models.User{BaseModel: models.NewBaseModel(), Username: "Jess", Email: "jess@example.com"}
	require.NoError(t, s.Create(u))

	dup := models.User{BaseModel: models.NewBaseModel(), Username: "other", Email: "JESS@example.com"}
	assert.ErrorIs(t, s.Create(dup), ErrDuplicate)

	dup = models.User{BaseModel: models.NewBaseModel(), Username: "jess", Email: "second@example.com"}
	assert.ErrorIs(t, s.Create(dup), ErrDuplicate)

	got, err := s.GetByEmail("Jess@Example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
}

func TestCartStoreMissingCartReadsEmpty(t *testing.T) {
	s := NewCartStore()
	userID := uuid.New()

	cart := s.Get(userID)
	assert.Equal(t, userID, cart.UserID)
	assert.Empty(t, cart.Items)

	cart.Items = append(cart.Items, models.CartItem{ProductID: uuid.New(), Quantity: 2, UnitPrice: 10})
	s.Save(cart)

	got := s.Get(userID)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 20.0, got.Subtotal())

	s.Clear(userID)
	assert.Empty(t, s.Get(userID).Items)
}

func TestSeedPopulatesStore(t *testing.T) {
	s := New()
	require.NoError(t, Seed(s, "Demo1234!"))

	assert.Equal(t, 10, s.Products.Count())
	assert.Len(t, s.Categories.List(), 3)

	admin, err := s.Users.GetByEmail("admin@shoplite.test")
	require.NoError(t, err)
	assert.Equal(t, models.UserRoleAdmin, admin.Role)
	assert.NoError(t, admin.CheckPassword("Demo1234!"))
}
