package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"stock-trading-platform/internal/models"
)

// tradeRouter wires the handler behind a stub middleware injecting the
// given user. The order service is nil: these tests only cover the
// validation paths that return before any execution starts.
func tradeRouter(user *models.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewTradeHandler(nil)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		if user != nil {
			c.Set(currentUserKey, user)
		}
	})
	router.POST("/api/trade/buy", h.Buy)
	router.POST("/api/trade/sell", h.Sell)
	router.POST("/api/trade/deposit", h.Deposit)
	router.POST("/api/trade/withdraw", h.Withdraw)
	return router
}

func post(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func customer() *models.User {
	return &models.User{
		Username:  "alice",
		UserType:  models.RoleCustomer,
		Account:   &models.Account{Balance: 1000},
		Portfolio: map[string]int{},
	}
}

func TestBuyRejectsUnauthenticated(t *testing.T) {
	w := post(tradeRouter(nil), "/api/trade/buy", `{"ticker":"AAPL","volume":1}`)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBuyRejectsAdmins(t *testing.T) {
	admin := &models.User{Username: "root", UserType: models.RoleAdmin}
	w := post(tradeRouter(admin), "/api/trade/buy", `{"ticker":"AAPL","volume":1}`)
	require.Equal(t, http.StatusForbidden, w.Code)
	require.Contains(t, w.Body.String(), "FORBIDDEN_ACCESS")
}

func TestBuyRejectsInvalidJSON(t *testing.T) {
	w := post(tradeRouter(customer()), "/api/trade/buy", `{bad json`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBuyRejectsZeroVolume(t *testing.T) {
	w := post(tradeRouter(customer()), "/api/trade/buy", `{"ticker":"AAPL","volume":0}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "INVALID_VOLUME")
}

func TestSellRejectsNegativeVolume(t *testing.T) {
	w := post(tradeRouter(customer()), "/api/trade/sell", `{"ticker":"AAPL","volume":-5}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSellRejectsMissingTicker(t *testing.T) {
	w := post(tradeRouter(customer()), "/api/trade/sell", `{"volume":5}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDepositRejectsNonPositiveAmount(t *testing.T) {
	router := tradeRouter(customer())

	w := post(router, "/api/trade/deposit", `{"amount":0}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "INVALID_AMOUNT")

	w = post(router, "/api/trade/deposit", `{"amount":-50}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWithdrawRejectsNonPositiveAmount(t *testing.T) {
	w := post(tradeRouter(customer()), "/api/trade/withdraw", `{"amount":-1}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
