package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stock-trading-platform/internal/models"
	"stock-trading-platform/internal/services"
)

// TradeHandler exposes the customer-facing execution flow: buy, sell,
// deposit, withdraw and portfolio valuation.
type TradeHandler struct {
	orderService *services.OrderService
}

func NewTradeHandler(orderService *services.OrderService) *TradeHandler {
	return &TradeHandler{orderService: orderService}
}

type TradeRequest struct {
	Ticker string `json:"ticker" binding:"required"`
	Volume int    `json:"volume" binding:"required,min=1"`
}

type CashRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// tradingUser rejects callers without an account before any execution
// starts; only customers trade.
func tradingUser(c *gin.Context) (*models.User, bool) {
	user, ok := currentUser(c)
	if !ok {
		abortError(c, http.StatusUnauthorized, "UNAUTHENTICATED", "User not authenticated")
		return nil, false
	}
	if user.UserType != models.RoleCustomer {
		abortError(c, http.StatusForbidden, "FORBIDDEN_ACCESS", "Only customers can trade")
		return nil, false
	}
	return user, true
}

func (h *TradeHandler) Buy(c *gin.Context) {
	user, ok := tradingUser(c)
	if !ok {
		return
	}

	var req TradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortError(c, http.StatusBadRequest, "INVALID_VOLUME", err.Error())
		return
	}

	order, err := h.orderService.Buy(user, req.Ticker, req.Volume)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Stock purchased successfully",
		"order":   order,
	})
}

func (h *TradeHandler) Sell(c *gin.Context) {
	user, ok := tradingUser(c)
	if !ok {
		return
	}

	var req TradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortError(c, http.StatusBadRequest, "INVALID_VOLUME", err.Error())
		return
	}

	order, err := h.orderService.Sell(user, req.Ticker, req.Volume)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Stock sold successfully",
		"order":   order,
	})
}

func (h *TradeHandler) Deposit(c *gin.Context) {
	user, ok := tradingUser(c)
	if !ok {
		return
	}

	var req CashRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortError(c, http.StatusBadRequest, "INVALID_AMOUNT", err.Error())
		return
	}

	order, txn, err := h.orderService.Deposit(user, req.Amount)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":     "Cash deposited successfully",
		"amount":      req.Amount,
		"order":       order,
		"transaction": txn,
	})
}

func (h *TradeHandler) Withdraw(c *gin.Context) {
	user, ok := tradingUser(c)
	if !ok {
		return
	}

	var req CashRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortError(c, http.StatusBadRequest, "INVALID_AMOUNT", err.Error())
		return
	}

	order, txn, err := h.orderService.Withdraw(user, req.Amount)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":     "Cash withdrawn successfully",
		"amount":      req.Amount,
		"order":       order,
		"transaction": txn,
	})
}

// Portfolio returns the caller's holdings valued at current prices plus
// the cash balance.
func (h *TradeHandler) Portfolio(c *gin.Context) {
	user, ok := tradingUser(c)
	if !ok {
		return
	}

	summary, err := h.orderService.Portfolio(user.Username)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
