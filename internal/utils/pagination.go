// internal/utils/pagination.go
package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/shoplite/shoplite-backend/internal/catalog"
)

const maxPageSize = 100

type PaginationResult struct {
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	Total      int         `json:"total"`
	TotalPages int         `json:"total_pages"`
	Data       interface{} `json:"data"`
}

// GetProductQuery parses the product listing query string into a catalog
// query. Malformed values are reported back as validation errors instead of
// being silently dropped, which is this API's documented policy.
func GetProductQuery(c *gin.Context) (catalog.Query, []ValidationError) {
	var errs []ValidationError
	query := catalog.Query{
		Search: c.Query("search"),
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		errs = append(errs, ValidationError{Field: "page", Tag: "numeric", Message: "page must be a number"})
	}
	query.Page = page
	if query.Page < 1 {
		query.Page = 1
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil {
		errs = append(errs, ValidationError{Field: "limit", Tag: "numeric", Message: "limit must be a number"})
	}
	query.PageSize = limit
	if query.PageSize < 1 || query.PageSize > maxPageSize {
		query.PageSize = catalog.DefaultPageSize
	}

	sortKey, err := catalog.ParseSortKey(c.Query("sort"))
	if err != nil {
		errs = append(errs, ValidationError{Field: "sort", Tag: "oneof", Message: "sort must be one of newest, price_asc, price_desc, rating_desc"})
	}
	query.Sort = sortKey

	if categoryStr := c.Query("category"); categoryStr != "" {
		categoryID, err := uuid.Parse(categoryStr)
		if err != nil {
			errs = append(errs, ValidationError{Field: "category", Tag: "uuid", Message: "category must be a valid id"})
		} else {
			query.CategoryID = &categoryID
		}
	}

	if minStr := c.Query("min_price"); minStr != "" {
		min, err := strconv.ParseFloat(minStr, 64)
		if err != nil {
			errs = append(errs, ValidationError{Field: "min_price", Tag: "numeric", Message: "min_price must be a number"})
		} else {
			query.MinPrice = &min
		}
	}

	if maxStr := c.Query("max_price"); maxStr != "" {
		max, err := strconv.ParseFloat(maxStr, 64)
		if err != nil {
			errs = append(errs, ValidationError{Field: "max_price", Tag: "numeric", Message: "max_price must be a number"})
		} else {
			query.MaxPrice = &max
		}
	}

	return query, errs
}

func CreatePaginationResult(data interface{}, page *catalog.Page) PaginationResult {
	return PaginationResult{
		Page:       page.Page,
		Limit:      page.PageSize,
		Total:      page.TotalMatching,
		TotalPages: page.TotalPages,
		Data:       data,
	}
}

func SetPaginationHeaders(c *gin.Context, result PaginationResult) {
	c.Header("X-Total-Count", strconv.Itoa(result.Total))
	c.Header("X-Page", strconv.Itoa(result.Page))
	c.Header("X-Per-Page", strconv.Itoa(result.Limit))
	c.Header("X-Total-Pages", strconv.Itoa(result.TotalPages))
}

func PaginatedResponse(c *gin.Context, result PaginationResult) {
	SetPaginationHeaders(c, result)
	SuccessResponseWithMeta(c, result.Data, gin.H{
		"pagination": gin.H{
			"page":        result.Page,
			"limit":       result.Limit,
			"total":       result.Total,
			"total_pages": result.TotalPages,
		},
	})
}
