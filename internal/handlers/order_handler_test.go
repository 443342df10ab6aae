package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"stock-trading-platform/internal/models"
)

// orderRouter mirrors tradeRouter: nil service, stub middleware, only
// the paths that return before execution starts.
func orderRouter(user *models.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewOrderHandler(nil)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		if user != nil {
			c.Set(currentUserKey, user)
		}
	})
	router.POST("/api/orders", h.PlaceOrder)
	return router
}

func TestPlaceOrderRejectsUnauthenticated(t *testing.T) {
	w := post(orderRouter(nil), "/api/orders", `{"ticker":"AAPL","orderType":"buy","volume":1}`)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPlaceOrderRejectsAdmins(t *testing.T) {
	admin := &models.User{Username: "root", UserType: models.RoleAdmin}
	w := post(orderRouter(admin), "/api/orders", `{"ticker":"AAPL","orderType":"buy","volume":1}`)
	require.Equal(t, http.StatusForbidden, w.Code)
	require.Contains(t, w.Body.String(), "FORBIDDEN_ACCESS")
}

func TestPlaceOrderRejectsUnknownOrderType(t *testing.T) {
	w := post(orderRouter(customer()), "/api/orders", `{"ticker":"AAPL","orderType":"short","volume":1}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "INVALID_REQUEST")
}

func TestPlaceOrderRejectsZeroVolume(t *testing.T) {
	w := post(orderRouter(customer()), "/api/orders", `{"ticker":"AAPL","orderType":"sell","volume":0}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
