// internal/services/product_service_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoplite/shoplite-backend/internal/catalog"
	"github.com/shoplite/shoplite-backend/internal/store"
)

func TestProductServiceCreateValidates(t *testing.T) {
	svc := NewProductService(store.New())

	_, err := svc.Create(&CreateProductRequest{Name: "x", Description: "short", Price: -1})
	assert.ErrorContains(t, err, "validation failed")

	product, err := svc.Create(&CreateProductRequest{
		Name:        "Travel Mug",
		Description: "Insulated mug that keeps drinks hot",
		Price:       19.99,
		Stock:       25,
		Rating:      4.2,
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, product.ID)

	got, err := svc.Get(product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Travel Mug", got.Name)
}

func TestProductServiceCreateRejectsUnknownCategory(t *testing.T) {
	svc := NewProductService(store.New())
	missing := uuid.New()

	_, err := svc.Create(&CreateProductRequest{
		Name:        "Travel Mug",
		Description: "Insulated mug that keeps drinks hot",
		Price:       19.99,
		CategoryID:  &missing,
	})
	assert.ErrorContains(t, err, "category not found")
}

func TestProductServiceListGoesThroughPipeline(t *testing.T) {
	s := store.New()
	require.NoError(t, store.Seed(s, "Demo1234!"))
	svc := NewProductService(s)

	page, err := svc.List(catalog.Query{Sort: catalog.SortPriceAsc, Page: 1, PageSize: 4})
	require.NoError(t, err)
	assert.Len(t, page.Items, 4)
	assert.Equal(t, 10, page.TotalMatching)
	assert.Equal(t, 3, page.TotalPages)
	for i := 1; i < len(page.Items); i++ {
		assert.LessOrEqual(t, page.Items[i-1].Price, page.Items[i].Price)
	}

	_, err = svc.List(catalog.Query{Sort: "bogus"})
	assert.ErrorIs(t, err, catalog.ErrInvalidSortKey)
}

func TestProductServicePopular(t *testing.T) {
	s := store.New()
	require.NoError(t, store.Seed(s, "Demo1234!"))
	svc := NewProductService(s)

	popular, err := svc.Popular(3)
	require.NoError(t, err)
	require.Len(t, popular, 3)
	for i := 1; i < len(popular); i++ {
		assert.GreaterOrEqual(t, popular[i-1].Rating, popular[i].Rating)
	}
}

func TestProductServiceUpdateAndDelete(t *testing.T) {
	svc := NewProductService(store.New())

	product, err := svc.Create(&CreateProductRequest{
		Name:        "Travel Mug",
		Description: "Insulated mug that keeps drinks hot",
		Price:       19.99,
		Stock:       25,
	})
	require.NoError(t, err)

	newPrice := 17.49
	updated, err := svc.Update(product.ID, &UpdateProductRequest{Price: &newPrice})
	require.NoError(t, err)
	assert.InDelta(t, 17.49, updated.Price, 0.001)
	assert.Equal(t, "Travel Mug", updated.Name)

	require.NoError(t, svc.Delete(product.ID))
	_, err = svc.Get(product.ID)
	assert.ErrorContains(t, err, "product not found")
	assert.ErrorContains(t, svc.Delete(product.ID), "product not found")
}

func TestCategoryServiceDeleteGuard(t *testing.T) {
	s := store.New()
	categorySvc := NewCategoryService(s)
	productSvc := NewProductService(s)

	category, err := categorySvc.Create(&CreateCategoryRequest{Name: "Outdoors"})
	require.NoError(t, err)

	_, err = productSvc.Create(&CreateProductRequest{
		Name:        "Camping Stove",
		Description: "Single-burner propane stove",
		Price:       45,
		CategoryID:  &category.ID,
	})
	require.NoError(t, err)

	err = categorySvc.Delete(category.ID)
	assert.ErrorContains(t, err, "cannot delete category")

	products := s.Products.Snapshot()
	require.NoError(t, s.Products.Delete(products[0].ID))
	assert.NoError(t, categorySvc.Delete(category.ID))
}
