// internal/services/checkout_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/paymentintent"

	"github.com/shoplite/shoplite-backend/internal/config"
	"github.com/shoplite/shoplite-backend/internal/models"
	"github.com/shoplite/shoplite-backend/internal/store"
	"github.com/shoplite/shoplite-backend/internal/utils"
)

// CheckoutService turns a cart into an order. With a Stripe key configured
// it opens a PaymentIntent and leaves the order pending until confirmation;
// without one it settles the order immediately with a simulated reference,
// which is how the demo runs out of the box.
type CheckoutService struct {
	store *store.Store
	cfg   *config.Config
}

type CheckoutResponse struct {
	Order        *models.Order `json:"order"`
	ClientSecret string        `json:"client_secret,omitempty"`
}

func NewCheckoutService(s *store.Store, cfg *config.Config) *CheckoutService {
	// Initialize Stripe
	stripe.Key = cfg.Payment.StripeSecretKey

	return &CheckoutService{
		store: s,
		cfg:   cfg,
	}
}

func (s *CheckoutService) Checkout(userID uuid.UUID) (*CheckoutResponse, error) {
	cart := s.store.Carts.Get(userID)
	if len(cart.Items) == 0 {
		return nil, errors.New("cart is empty")
	}

	// Reserve stock item by item, releasing everything on the first failure.
	reserved := make([]models.CartItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		if err := s.store.Products.AdjustStock(item.ProductID, -item.Quantity); err != nil {
			s.release(reserved)
			if errors.Is(err, store.ErrInsufficientStock) {
				return nil, fmt.Errorf("not enough stock for %q", item.Name)
			}
			if errors.Is(err, store.ErrNotFound) {
				return nil, fmt.Errorf("product %q is no longer available", item.Name)
			}
			return nil, fmt.Errorf("failed to reserve stock: %w", err)
		}
		reserved = append(reserved, item)
	}

	order := &models.Order{
		BaseModel: models.NewBaseModel(),
		UserID:    userID,
		Subtotal:  cart.Subtotal(),
		Status:    models.OrderStatusPending,
	}
	for _, item := range cart.Items {
		order.Items = append(order.Items, models.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		})
	}

	var clientSecret string
	if s.cfg.Payment.StripeSecretKey != "" {
		pi, err := s.createPaymentIntent(userID, order)
		if err != nil {
			s.release(reserved)
			return nil, err
		}
		order.PaymentRef = pi.ID
		clientSecret = pi.ClientSecret
	} else {
		ref, err := utils.GenerateRandomString(24)
		if err != nil {
			s.release(reserved)
			return nil, fmt.Errorf("failed to generate payment reference: %w", err)
		}
		order.PaymentRef = "sim_" + ref
		order.Status = models.OrderStatusPaid
	}

	if err := s.store.Orders.Create(*order); err != nil {
		s.release(reserved)
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.store.Carts.Clear(userID)

	logrus.WithFields(logrus.Fields{
		"order_id": order.ID,
		"user_id":  userID,
		"subtotal": order.Subtotal,
		"status":   order.Status,
	}).Info("Checkout completed")

	return &CheckoutResponse{Order: order, ClientSecret: clientSecret}, nil
}

// ConfirmPayment settles a pending Stripe-backed order by re-reading the
// PaymentIntent. Failed payments release the reserved stock.
func (s *CheckoutService) ConfirmPayment(userID, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.store.Orders.GetByID(orderID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errors.New("order not found")
		}
		return nil, fmt.Errorf("store error: %w", err)
	}
	if order.UserID != userID {
		return nil, errors.New("order not found")
	}
	if order.Status != models.OrderStatusPending {
		return order, nil
	}
	if s.cfg.Payment.StripeSecretKey == "" {
		return nil, errors.New("payments are simulated; nothing to confirm")
	}

	pi, err := paymentintent.Get(order.PaymentRef, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment intent: %w", err)
	}

	switch pi.Status {
	case stripe.PaymentIntentStatusSucceeded:
		order.Status = models.OrderStatusPaid
	case stripe.PaymentIntentStatusRequiresAction,
		stripe.PaymentIntentStatusRequiresConfirmation,
		stripe.PaymentIntentStatusRequiresPaymentMethod,
		stripe.PaymentIntentStatusProcessing:
		return order, nil
	default:
		order.Status = models.OrderStatusFailed
		for _, item := range order.Items {
			if err := s.store.Products.AdjustStock(item.ProductID, item.Quantity); err != nil {
				logrus.WithError(err).WithField("product_id", item.ProductID).
					Error("Failed to release stock for failed payment")
			}
		}
	}

	if err := s.store.Orders.Update(*order); err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}
	return order, nil
}

func (s *CheckoutService) GetOrder(userID, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.store.Orders.GetByID(orderID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errors.New("order not found")
		}
		return nil, fmt.Errorf("store error: %w", err)
	}
	if order.UserID != userID {
		return nil, errors.New("order not found")
	}
	return order, nil
}

func (s *CheckoutService) ListOrders(userID uuid.UUID) []models.Order {
	return s.store.Orders.ListByUser(userID)
}

func (s *CheckoutService) createPaymentIntent(userID uuid.UUID, order *models.Order) (*stripe.PaymentIntent, error) {
	// Convert amount to cents for Stripe
	amountInCents := int64(order.Subtotal * 100)

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountInCents),
		Currency: stripe.String(s.cfg.Payment.Currency),
	}
	params.AddMetadata("user_id", userID.String())
	params.AddMetadata("order_id", order.ID.String())

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}
	return pi, nil
}

func (s *CheckoutService) release(items []models.CartItem) {
	for _, item := range items {
		if err := s.store.Products.AdjustStock(item.ProductID, item.Quantity); err != nil {
			logrus.WithError(err).WithField("product_id", item.ProductID).
				Error("Failed to release reserved stock")
		}
	}
}
