// internal/catalog/query.go
package catalog

import (
	"errors"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/shoplite/shoplite-backend/internal/models"
)

// SortKey selects the single ordering applied to a query result.
type SortKey string

const (
	SortNewest     SortKey = "newest"
	SortPriceAsc   SortKey = "price_asc"
	SortPriceDesc  SortKey = "price_desc"
	SortRatingDesc SortKey = "rating_desc"
)

const DefaultPageSize = 20

var (
	ErrInvalidSortKey    = errors.New("catalog: unknown sort key")
	ErrInvalidPriceRange = errors.New("catalog: min_price is greater than max_price")
)

// Query describes one catalog lookup. Nil pointer fields mean the
// corresponding filter is not applied.
type Query struct {
	CategoryID *uuid.UUID
	Search     string
	MinPrice   *float64
	MaxPrice   *float64
	Sort       SortKey
	Page       int
	PageSize   int
}

// Page is one page of matching products plus pagination metadata.
type Page struct {
	Items         []models.Product
	Page          int
	PageSize      int
	TotalMatching int
	TotalPages    int
}

// Evaluate filters, sorts and paginates a catalog snapshot. It never mutates
// the snapshot or any product in it; Items is freshly allocated. The catalog
// must not be mutated concurrently with a call, which is the caller's
// responsibility (stores hand out copy-on-read snapshots).
//
// A conflicting price range or an unrecognized sort key is a validation
// error rather than a silently-empty or silently-default result.
func Evaluate(catalog []models.Product, q Query) (*Page, error) {
	if q.MinPrice != nil && q.MaxPrice != nil && *q.MinPrice > *q.MaxPrice {
		return nil, ErrInvalidPriceRange
	}

	sortKey := q.Sort
	if sortKey == "" {
		sortKey = SortNewest
	}
	switch sortKey {
	case SortNewest, SortPriceAsc, SortPriceDesc, SortRatingDesc:
	default:
		return nil, ErrInvalidSortKey
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	pageSize := q.PageSize
	if pageSize == 0 {
		pageSize = DefaultPageSize
	}
	if pageSize < 1 {
		pageSize = 1
	}

	// Single pass, all active predicates per item.
	search := strings.ToLower(q.Search)
	matched := make([]models.Product, 0, len(catalog))
	for _, p := range catalog {
		if q.CategoryID != nil {
			if p.CategoryID == nil || *p.CategoryID != *q.CategoryID {
				continue
			}
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}
		if q.MinPrice != nil && p.Price < *q.MinPrice {
			continue
		}
		if q.MaxPrice != nil && p.Price > *q.MaxPrice {
			continue
		}
		matched = append(matched, p)
	}

	// Stable sort keeps catalog order for ties, so pagination is
	// reproducible across pages.
	switch sortKey {
	case SortNewest:
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		})
	case SortPriceAsc:
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].Price < matched[j].Price
		})
	case SortPriceDesc:
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].Price > matched[j].Price
		})
	case SortRatingDesc:
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].Rating > matched[j].Rating
		})
	}

	totalMatching := len(matched)
	totalPages := (totalMatching + pageSize - 1) / pageSize

	// Pages past the data yield an empty slice. The offset is computed only
	// for in-range pages so a huge page number cannot overflow it.
	start := totalMatching
	if page <= totalPages {
		start = (page - 1) * pageSize
	}
	end := start + pageSize
	if end > totalMatching {
		end = totalMatching
	}

	items := make([]models.Product, end-start)
	copy(items, matched[start:end])

	return &Page{
		Items:         items,
		Page:          page,
		PageSize:      pageSize,
		TotalMatching: totalMatching,
		TotalPages:    totalPages,
	}, nil
}

// ParseSortKey maps a request-level sort parameter onto a SortKey. The empty
// string selects the default ordering.
func ParseSortKey(s string) (SortKey, error) {
	switch SortKey(s) {
	case "":
		return SortNewest, nil
	case SortNewest, SortPriceAsc, SortPriceDesc, SortRatingDesc:
		return SortKey(s), nil
	default:
		return "", ErrInvalidSortKey
	}
}
