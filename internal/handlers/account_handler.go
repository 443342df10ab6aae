package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stock-trading-platform/internal/services"
)

type AccountHandler struct {
	authService *services.AuthService
}

func NewAccountHandler(authService *services.AuthService) *AccountHandler {
	return &AccountHandler{authService: authService}
}

type UpdateBalanceRequest struct {
	Balance *float64 `json:"balance" binding:"required,gte=0"`
}

// GetAccount returns the embedded account of a customer. Admin or self.
func (h *AccountHandler) GetAccount(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		abortError(c, http.StatusUnauthorized, "UNAUTHENTICATED", "User not authenticated")
		return
	}
	username := c.Param("username")
	if !canAccess(actor, username) {
		abortError(c, http.StatusForbidden, "ACCESS_DENIED", "Access denied")
		return
	}

	account, err := h.authService.GetAccount(username)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"username": username, "account": account})
}

// UpdateBalance sets the account balance outright. The balance cannot be
// negative. Admin or self.
func (h *AccountHandler) UpdateBalance(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		abortError(c, http.StatusUnauthorized, "UNAUTHENTICATED", "User not authenticated")
		return
	}
	username := c.Param("username")
	if !canAccess(actor, username) {
		abortError(c, http.StatusForbidden, "ACCESS_DENIED", "Access denied")
		return
	}

	var req UpdateBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortError(c, http.StatusBadRequest, "INVALID_BALANCE", err.Error())
		return
	}

	account, err := h.authService.SetBalance(username, *req.Balance)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"username": username, "account": account})
}
