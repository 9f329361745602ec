// internal/models/product.go
package models

import (
	"github.com/google/uuid"
)

// Product is a catalog entry. Invariants (price >= 0, stock >= 0,
// 0 <= rating <= 5) are enforced at the request-validation boundary;
// everything below that boundary assumes them.
type Product struct {
	BaseModel
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Price       float64    `json:"price"`
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
	Stock       int        `json:"stock"`
	Rating      float64    `json:"rating"`
	ReviewCount int        `json:"review_count"`
	ImageURLs   []string   `json:"image_urls,omitempty"`
}

// InStock reports whether at least one unit is available.
func (p *Product) InStock() bool {
	return p.Stock > 0
}
