package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stock-trading-platform/internal/services"
)

type OrderHandler struct {
	orderService *services.OrderService
}

func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

type PlaceOrderRequest struct {
	Ticker    string `json:"ticker" binding:"required"`
	OrderType string `json:"orderType" binding:"required,oneof=buy sell"`
	Volume    int    `json:"volume" binding:"required,min=1"`
}

// PlaceOrder places a buy or sell order through the generic orders
// endpoint. Customers only.
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	user, ok := tradingUser(c)
	if !ok {
		return
	}

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	order, err := h.orderService.Place(user, req.OrderType, req.Ticker, req.Volume)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"order":   order,
	})
}

// ListOrders returns the authenticated user's order history.
func (h *OrderHandler) ListOrders(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		abortError(c, http.StatusUnauthorized, "UNAUTHENTICATED", "User not authenticated")
		return
	}

	orders, err := h.orderService.ListForUser(user.Username)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// GetOrder returns a single order. Admin or owner.
func (h *OrderHandler) GetOrder(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		abortError(c, http.StatusUnauthorized, "UNAUTHENTICATED", "User not authenticated")
		return
	}

	order, err := h.orderService.Get(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !canAccess(user, order.Username) {
		abortError(c, http.StatusForbidden, "ACCESS_DENIED", "Access denied")
		return
	}
	c.JSON(http.StatusOK, order)
}

// CancelOrder voids a pending order and reverses its effect. Admin or
// owner.
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		abortError(c, http.StatusUnauthorized, "UNAUTHENTICATED", "User not authenticated")
		return
	}

	if err := h.orderService.Cancel(user, c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order canceled successfully"})
}
