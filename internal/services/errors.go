package services

import "errors"

// Sentinel errors the handlers translate into HTTP status codes and
// short error codes.
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAccountInactive    = errors.New("user account is inactive")
	ErrUserExists         = errors.New("username or email already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrNotCustomer        = errors.New("only customer users have an account")

	ErrStockExists   = errors.New("stock already exists")
	ErrStockNotFound = errors.New("stock not found")

	ErrMarketNotFound = errors.New("market not found")
	ErrMarketClosed   = errors.New("market is closed, transactions cannot be processed")

	ErrInvalidOrderType     = errors.New("order type must be buy or sell")
	ErrInsufficientBalance  = errors.New("insufficient balance")
	ErrInsufficientHoldings = errors.New("insufficient stock holdings")
	ErrOrderNotFound        = errors.New("order not found")
	ErrOrderNotCancelable   = errors.New("cannot cancel a completed or already canceled order")

	ErrTransactionNotFound = errors.New("transaction not found")

	ErrAccessDenied = errors.New("access denied")
)
