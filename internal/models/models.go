package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	OrderTypeBuy        = "buy"
	OrderTypeSell       = "sell"
	OrderTypeDeposit    = "deposit"
	OrderTypeWithdrawal = "withdrawal"

	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusCanceled  = "canceled"

	MarketOpen   = "open"
	MarketClosed = "closed"
)

type Stock struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Ticker       string             `bson:"ticker" json:"ticker"`
	CompanyName  string             `bson:"company_name" json:"companyName"`
	Volume       int64              `bson:"volume" json:"volume"`
	InitialPrice float64            `bson:"initial_price" json:"initialPrice"`
	CurrentPrice float64            `bson:"current_price" json:"currentPrice"`
	OpeningPrice float64            `bson:"opening_price" json:"openingPrice"`
	HighPrice    float64            `bson:"high_price" json:"highPrice"`
	LowPrice     float64            `bson:"low_price" json:"lowPrice"`
	MarketStatus string             `bson:"market_status" json:"marketStatus"`
}

// Order is a requested trade or cash movement. Buy/sell orders reference
// a stock by ticker; deposits and withdrawals carry no ticker and no volume.
type Order struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderID      string             `bson:"order_id" json:"orderId"`
	Username     string             `bson:"username" json:"username"`
	Ticker       string             `bson:"ticker,omitempty" json:"ticker,omitempty"`
	OrderType    string             `bson:"order_type" json:"orderType"`
	Volume       int                `bson:"volume" json:"volume"`
	OrderTotal   float64            `bson:"order_total" json:"orderTotal"`
	Status       string             `bson:"status" json:"status"`
	MarketStatus string             `bson:"market_status" json:"marketStatus"`
	Timestamp    time.Time          `bson:"timestamp" json:"timestamp"`
}

// Transaction records the financial effect of a completed order.
// BalanceAfter is set for deposits and withdrawals only.
type Transaction struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TransactionID string             `bson:"transaction_id" json:"transactionId"`
	OrderID       string             `bson:"order_id" json:"orderId"`
	Username      string             `bson:"username" json:"username"`
	Ticker        string             `bson:"ticker,omitempty" json:"ticker,omitempty"`
	Volume        int                `bson:"volume" json:"volume"`
	Price         float64            `bson:"price" json:"price"`
	TotalPrice    float64            `bson:"total_price" json:"totalPrice"`
	BalanceAfter  float64            `bson:"balance_after,omitempty" json:"balanceAfter,omitempty"`
	Timestamp     time.Time          `bson:"timestamp" json:"timestamp"`
}

// Market is a singleton document (marketID 1) holding trading status,
// hours and the holiday calendar. Hours are "HH:MM", holidays "2006-01-02".
type Market struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MarketID     int                `bson:"market_id" json:"marketId"`
	Status       string             `bson:"status" json:"status"`
	OpeningHours string             `bson:"opening_hours" json:"openingHours"`
	ClosingHours string             `bson:"closing_hours" json:"closingHours"`
	Holidays     []string           `bson:"holidays" json:"holidays"`
}

// IsOpenAt reports whether trading is allowed at t: the status flag must
// be open, t must fall inside the trading hours and must not be a holiday.
func (m *Market) IsOpenAt(t time.Time) bool {
	if m.Status != MarketOpen {
		return false
	}
	day := t.Format("2006-01-02")
	for _, h := range m.Holidays {
		if h == day {
			return false
		}
	}
	hm := t.Format("15:04")
	return m.OpeningHours <= hm && hm <= m.ClosingHours
}
