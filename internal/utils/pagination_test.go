// internal/utils/pagination_test.go
package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoplite/shoplite-backend/internal/catalog"
)

func productQueryFor(t *testing.T, rawQuery string) (catalog.Query, []ValidationError) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/v1/products?"+rawQuery, nil)
	return GetProductQuery(c)
}

func TestGetProductQueryDefaults(t *testing.T) {
	q, errs := productQueryFor(t, "")
	require.Empty(t, errs)

	assert.Equal(t, 1, q.Page)
	assert.Equal(t, catalog.DefaultPageSize, q.PageSize)
	assert.Equal(t, catalog.SortNewest, q.Sort)
}

func TestGetProductQueryLimitOutOfRangeFallsBackToDefault(t *testing.T) {
	q, errs := productQueryFor(t, "limit=150")
	require.Empty(t, errs)
	assert.Equal(t, catalog.DefaultPageSize, q.PageSize)

	q, errs = productQueryFor(t, "limit=0")
	require.Empty(t, errs)
	assert.Equal(t, catalog.DefaultPageSize, q.PageSize)

	q, errs = productQueryFor(t, "limit=100")
	require.Empty(t, errs)
	assert.Equal(t, 100, q.PageSize)
}

func TestGetProductQueryRejectsMalformedValues(t *testing.T) {
	_, errs := productQueryFor(t, "sort=cheapest")
	require.Len(t, errs, 1)
	assert.Equal(t, "sort", errs[0].Field)

	_, errs = productQueryFor(t, "min_price=abc&limit=banana")
	assert.Len(t, errs, 2)

	_, errs = productQueryFor(t, "category=not-a-uuid")
	require.Len(t, errs, 1)
	assert.Equal(t, "category", errs[0].Field)
}

func TestGetProductQueryPassesHugePageThrough(t *testing.T) {
	q, errs := productQueryFor(t, "page=9223372036854775807")
	require.Empty(t, errs)
	assert.Equal(t, 9223372036854775807, q.Page)
}
