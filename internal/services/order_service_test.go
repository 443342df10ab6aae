package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"stock-trading-platform/internal/models"
)

func TestCheckFunds(t *testing.T) {
	customer := &models.User{
		Username: "alice",
		UserType: models.RoleCustomer,
		Account:  &models.Account{Balance: 100},
	}

	require.NoError(t, checkFunds(customer, 99.99))
	require.NoError(t, checkFunds(customer, 100))
	require.ErrorIs(t, checkFunds(customer, 100.01), ErrInsufficientBalance)

	// Admins carry no account and can never cover an order.
	admin := &models.User{Username: "root", UserType: models.RoleAdmin}
	require.ErrorIs(t, checkFunds(admin, 0.01), ErrInsufficientBalance)
}

func TestCheckHoldings(t *testing.T) {
	user := &models.User{
		Username:  "alice",
		UserType:  models.RoleCustomer,
		Portfolio: map[string]int{"AAPL": 5},
	}

	require.NoError(t, checkHoldings(user, "AAPL", 5))
	require.ErrorIs(t, checkHoldings(user, "AAPL", 6), ErrInsufficientHoldings)
	require.ErrorIs(t, checkHoldings(user, "GOOGL", 1), ErrInsufficientHoldings)

	bare := &models.User{Username: "bob", UserType: models.RoleCustomer}
	require.ErrorIs(t, checkHoldings(bare, "AAPL", 1), ErrInsufficientHoldings)
}

func TestCheckCancelable(t *testing.T) {
	owner := &models.User{Username: "alice", UserType: models.RoleCustomer}
	admin := &models.User{Username: "root", UserType: models.RoleAdmin}
	other := &models.User{Username: "bob", UserType: models.RoleCustomer}

	pending := &models.Order{Username: "alice", Status: models.OrderStatusPending}
	require.NoError(t, checkCancelable(owner, pending))
	require.NoError(t, checkCancelable(admin, pending))
	require.ErrorIs(t, checkCancelable(other, pending), ErrAccessDenied)

	completed := &models.Order{Username: "alice", Status: models.OrderStatusCompleted}
	require.ErrorIs(t, checkCancelable(owner, completed), ErrOrderNotCancelable)

	canceled := &models.Order{Username: "alice", Status: models.OrderStatusCanceled}
	require.ErrorIs(t, checkCancelable(owner, canceled), ErrOrderNotCancelable)
}
