package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stock-trading-platform/internal/models"
	"stock-trading-platform/internal/services"
)

type TransactionHandler struct {
	transactionService *services.TransactionService
}

func NewTransactionHandler(transactionService *services.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

type CreateTransactionRequest struct {
	OrderID  string  `json:"orderId" binding:"required"`
	Username string  `json:"username" binding:"required"`
	Ticker   string  `json:"ticker"`
	Volume   int     `json:"volume" binding:"gte=0"`
	Price    float64 `json:"price" binding:"required,gt=0"`
}

// CreateTransaction records a transaction for a completed order. Admins
// may record for anyone, customers only for themselves.
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		abortError(c, http.StatusUnauthorized, "UNAUTHENTICATED", "User not authenticated")
		return
	}

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	if !canAccess(user, req.Username) {
		abortError(c, http.StatusForbidden, "ACCESS_DENIED", "Access denied")
		return
	}

	txn := &models.Transaction{
		OrderID:    req.OrderID,
		Username:   req.Username,
		Ticker:     req.Ticker,
		Volume:     req.Volume,
		Price:      req.Price,
		TotalPrice: req.Price * float64(req.Volume),
	}
	if err := h.transactionService.Create(txn); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"transaction": txn})
}

// GetTransaction returns a transaction by its public ID. Admin or owner.
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		abortError(c, http.StatusUnauthorized, "UNAUTHENTICATED", "User not authenticated")
		return
	}

	txn, err := h.transactionService.Get(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !canAccess(user, txn.Username) {
		abortError(c, http.StatusForbidden, "ACCESS_DENIED", "Access denied")
		return
	}
	c.JSON(http.StatusOK, txn)
}

// ListMyTransactions returns the caller's transaction history.
func (h *TransactionHandler) ListMyTransactions(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		abortError(c, http.StatusUnauthorized, "UNAUTHENTICATED", "User not authenticated")
		return
	}

	txns, err := h.transactionService.ListForUser(user.Username)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": txns})
}

// ListAllTransactions returns every transaction. Admin-only route.
func (h *TransactionHandler) ListAllTransactions(c *gin.Context) {
	txns, err := h.transactionService.ListAll()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": txns})
}
