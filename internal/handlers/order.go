// internal/handlers/order.go
package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/shoplite/shoplite-backend/internal/services"
	"github.com/shoplite/shoplite-backend/internal/utils"
)

type OrderHandler struct {
	checkoutService *services.CheckoutService
}

func NewOrderHandler(checkoutService *services.CheckoutService) *OrderHandler {
	return &OrderHandler{checkoutService: checkoutService}
}

func (h *OrderHandler) currentUserID(c *gin.Context) (uuid.UUID, bool) {
	userIDStr, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return uuid.Nil, false
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid user ID", nil)
		return uuid.Nil, false
	}
	return userID, true
}

// POST /orders
func (h *OrderHandler) Checkout(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	resp, err := h.checkoutService.Checkout(userID)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, resp)
}

// GET /orders
func (h *OrderHandler) GetOrders(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	utils.SuccessResponse(c, gin.H{"orders": h.checkoutService.ListOrders(userID)})
}

// GET /orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid order ID", nil)
		return
	}

	order, err := h.checkoutService.GetOrder(userID, orderID)
	if err != nil {
		utils.NotFoundResponse(c, "Order")
		return
	}

	utils.SuccessResponse(c, order)
}

// POST /orders/:id/confirm
func (h *OrderHandler) ConfirmPayment(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid order ID", nil)
		return
	}

	order, err := h.checkoutService.ConfirmPayment(userID, orderID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, "Order")
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, order)
}
