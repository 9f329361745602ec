// internal/models/order.go
package models

import (
	"github.com/google/uuid"
)

type OrderItem struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	UnitPrice float64   `json:"unit_price"`
	Quantity  int       `json:"quantity"`
}

type Order struct {
	BaseModel
	UserID     uuid.UUID   `json:"user_id"`
	Items      []OrderItem `json:"items"`
	Subtotal   float64     `json:"subtotal"`
	Status     OrderStatus `json:"status"`
	PaymentRef string      `json:"payment_ref,omitempty"`
}
