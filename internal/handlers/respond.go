package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"stock-trading-platform/internal/models"
	"stock-trading-platform/internal/services"
)

// Context key the auth middleware stores the authenticated user under.
const currentUserKey = "currentUser"

func currentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}

// canAccess reports whether actor may touch a resource owned by username:
// admins always, everyone else only their own.
func canAccess(actor *models.User, username string) bool {
	return actor.IsAdmin() || actor.Username == username
}

func abortError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message, "code": code})
}

// respondServiceError maps service sentinel errors onto HTTP status
// codes and short error codes; anything unrecognized is a 500.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		abortError(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", err.Error())
	case errors.Is(err, services.ErrAccountInactive):
		abortError(c, http.StatusForbidden, "ACCOUNT_INACTIVE", err.Error())
	case errors.Is(err, services.ErrUserExists):
		abortError(c, http.StatusBadRequest, "USERNAME_EXISTS", err.Error())
	case errors.Is(err, services.ErrUserNotFound):
		abortError(c, http.StatusNotFound, "USER_NOT_FOUND", err.Error())
	case errors.Is(err, services.ErrNotCustomer):
		abortError(c, http.StatusBadRequest, "INVALID_USER_TYPE", err.Error())
	case errors.Is(err, services.ErrStockExists):
		abortError(c, http.StatusBadRequest, "STOCK_ALREADY_EXISTS", err.Error())
	case errors.Is(err, services.ErrStockNotFound):
		abortError(c, http.StatusNotFound, "STOCK_NOT_FOUND", err.Error())
	case errors.Is(err, services.ErrMarketNotFound):
		abortError(c, http.StatusNotFound, "MARKET_NOT_FOUND", err.Error())
	case errors.Is(err, services.ErrMarketClosed):
		abortError(c, http.StatusBadRequest, "MARKET_CLOSED", err.Error())
	case errors.Is(err, services.ErrInvalidOrderType):
		abortError(c, http.StatusBadRequest, "INVALID_ORDER_TYPE", err.Error())
	case errors.Is(err, services.ErrInsufficientBalance):
		abortError(c, http.StatusBadRequest, "INSUFFICIENT_BALANCE", err.Error())
	case errors.Is(err, services.ErrInsufficientHoldings):
		abortError(c, http.StatusBadRequest, "INSUFFICIENT_HOLDINGS", err.Error())
	case errors.Is(err, services.ErrOrderNotFound):
		abortError(c, http.StatusNotFound, "ORDER_NOT_FOUND", err.Error())
	case errors.Is(err, services.ErrOrderNotCancelable):
		abortError(c, http.StatusBadRequest, "INVALID_ORDER_STATUS", err.Error())
	case errors.Is(err, services.ErrTransactionNotFound):
		abortError(c, http.StatusNotFound, "TRANSACTION_NOT_FOUND", err.Error())
	case errors.Is(err, services.ErrAccessDenied):
		abortError(c, http.StatusForbidden, "ACCESS_DENIED", err.Error())
	default:
		abortError(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
	}
}
