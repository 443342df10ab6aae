package services

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"stock-trading-platform/config"
	"stock-trading-platform/internal/models"
)

// OrderService executes trades and cash movements. Execution is a
// straight sequence of reads and writes: check market, check funds or
// holdings, insert the order, insert the transaction, update the user
// document. There is no cross-document atomicity; the balance check and
// the balance update are separate operations.
type OrderService struct {
	orderCollection       *mongo.Collection
	transactionCollection *mongo.Collection
	userCollection        *mongo.Collection
	marketService         *MarketService
	stockService          *StockService
}

func NewOrderService(marketService *MarketService, stockService *StockService) *OrderService {
	return &OrderService{
		orderCollection:       config.GetCollection(config.OrdersCollection),
		transactionCollection: config.GetCollection(config.TransactionsCollection),
		userCollection:        config.GetCollection(config.UsersCollection),
		marketService:         marketService,
		stockService:          stockService,
	}
}

// checkFunds verifies the user's cash balance covers amount. Admins
// have no account and can never cover anything.
func checkFunds(user *models.User, amount float64) error {
	if user.Account == nil || user.Account.Balance < amount {
		return ErrInsufficientBalance
	}
	return nil
}

// checkHoldings verifies the user owns at least volume shares of ticker.
func checkHoldings(user *models.User, ticker string, volume int) error {
	if user.Holdings(ticker) < volume {
		return ErrInsufficientHoldings
	}
	return nil
}

// checkCancelable verifies actor may cancel the order and that it is
// still pending. Completed and already-canceled orders stay as they are.
func checkCancelable(actor *models.User, order *models.Order) error {
	if !actor.IsAdmin() && order.Username != actor.Username {
		return ErrAccessDenied
	}
	if order.Status != models.OrderStatusPending {
		return ErrOrderNotCancelable
	}
	return nil
}

// Buy purchases volume shares of ticker at the current price for the
// user, recording a completed order and its transaction.
func (s *OrderService) Buy(user *models.User, ticker string, volume int) (*models.Order, error) {
	open, err := s.marketService.IsOpen()
	if err != nil {
		return nil, err
	}
	if !open {
		return nil, ErrMarketClosed
	}

	stock, err := s.stockService.Get(ticker)
	if err != nil {
		return nil, err
	}

	total := stock.CurrentPrice * float64(volume)
	if err := checkFunds(user, total); err != nil {
		return nil, err
	}

	order := s.newOrder(user.Username, models.OrderTypeBuy, ticker, volume, total, stock.MarketStatus, models.OrderStatusCompleted)
	if _, err := s.orderCollection.InsertOne(context.Background(), order); err != nil {
		return nil, err
	}
	if err := s.recordTransaction(order, stock.CurrentPrice); err != nil {
		return nil, err
	}

	_, err = s.userCollection.UpdateOne(
		context.Background(),
		bson.M{"username": user.Username},
		bson.M{"$inc": bson.M{
			"account.balance":     -total,
			"portfolio." + ticker: volume,
		}},
	)
	if err != nil {
		return nil, err
	}

	log.Printf("Buy executed: %s %d %s @ $%.2f", user.Username, volume, ticker, stock.CurrentPrice)
	return order, nil
}

// Sell liquidates volume shares of ticker at the current price.
func (s *OrderService) Sell(user *models.User, ticker string, volume int) (*models.Order, error) {
	open, err := s.marketService.IsOpen()
	if err != nil {
		return nil, err
	}
	if !open {
		return nil, ErrMarketClosed
	}

	stock, err := s.stockService.Get(ticker)
	if err != nil {
		return nil, err
	}

	if err := checkHoldings(user, ticker, volume); err != nil {
		return nil, err
	}
	total := stock.CurrentPrice * float64(volume)

	order := s.newOrder(user.Username, models.OrderTypeSell, ticker, volume, total, stock.MarketStatus, models.OrderStatusCompleted)
	if _, err := s.orderCollection.InsertOne(context.Background(), order); err != nil {
		return nil, err
	}
	if err := s.recordTransaction(order, stock.CurrentPrice); err != nil {
		return nil, err
	}

	_, err = s.userCollection.UpdateOne(
		context.Background(),
		bson.M{"username": user.Username},
		bson.M{"$inc": bson.M{
			"account.balance":     total,
			"portfolio." + ticker: -volume,
		}},
	)
	if err != nil {
		return nil, err
	}

	s.dropEmptyPosition(user.Username, ticker)

	log.Printf("Sell executed: %s %d %s @ $%.2f", user.Username, volume, ticker, stock.CurrentPrice)
	return order, nil
}

// Place records a buy or sell order through the generic orders flow in
// two phases: the cash (buy) or shares (sell) are reserved and the order
// inserted as pending, then the other side is delivered and the order
// marked completed once its transaction is recorded. An order
// interrupted between the phases stays pending; Cancel reverses the
// reservation.
func (s *OrderService) Place(user *models.User, orderType, ticker string, volume int) (*models.Order, error) {
	open, err := s.marketService.IsOpen()
	if err != nil {
		return nil, err
	}
	if !open {
		return nil, ErrMarketClosed
	}

	stock, err := s.stockService.Get(ticker)
	if err != nil {
		return nil, err
	}
	total := stock.CurrentPrice * float64(volume)

	var reserve bson.M
	switch orderType {
	case models.OrderTypeBuy:
		if err := checkFunds(user, total); err != nil {
			return nil, err
		}
		reserve = bson.M{"account.balance": -total}
	case models.OrderTypeSell:
		if err := checkHoldings(user, ticker, volume); err != nil {
			return nil, err
		}
		reserve = bson.M{"portfolio." + ticker: -volume}
	default:
		return nil, ErrInvalidOrderType
	}

	_, err = s.userCollection.UpdateOne(
		context.Background(),
		bson.M{"username": user.Username},
		bson.M{"$inc": reserve},
	)
	if err != nil {
		return nil, err
	}

	order := s.newOrder(user.Username, orderType, ticker, volume, total, stock.MarketStatus, models.OrderStatusPending)
	if _, err := s.orderCollection.InsertOne(context.Background(), order); err != nil {
		return nil, err
	}
	if err := s.recordTransaction(order, stock.CurrentPrice); err != nil {
		return nil, err
	}

	return s.complete(order)
}

// complete delivers the second leg of a pending order (shares for a buy,
// cash for a sell) and flips its status to completed.
func (s *OrderService) complete(order *models.Order) (*models.Order, error) {
	var deliver bson.M
	switch order.OrderType {
	case models.OrderTypeBuy:
		deliver = bson.M{"portfolio." + order.Ticker: order.Volume}
	case models.OrderTypeSell:
		deliver = bson.M{"account.balance": order.OrderTotal}
	}

	_, err := s.userCollection.UpdateOne(
		context.Background(),
		bson.M{"username": order.Username},
		bson.M{"$inc": deliver},
	)
	if err != nil {
		return nil, err
	}
	if order.OrderType == models.OrderTypeSell {
		s.dropEmptyPosition(order.Username, order.Ticker)
	}

	_, err = s.orderCollection.UpdateOne(
		context.Background(),
		bson.M{"order_id": order.OrderID},
		bson.M{"$set": bson.M{"status": models.OrderStatusCompleted}},
	)
	if err != nil {
		return nil, err
	}
	order.Status = models.OrderStatusCompleted

	log.Printf("Order completed: %s %s %d %s ($%.2f)",
		order.Username, order.OrderType, order.Volume, order.Ticker, order.OrderTotal)
	return order, nil
}

// dropEmptyPosition removes a portfolio key once it reaches zero shares.
func (s *OrderService) dropEmptyPosition(username, ticker string) {
	var user models.User
	err := s.userCollection.FindOne(context.Background(), bson.M{"username": username}).Decode(&user)
	if err == nil && user.Holdings(ticker) == 0 {
		_, _ = s.userCollection.UpdateOne(
			context.Background(),
			bson.M{"username": username},
			bson.M{"$unset": bson.M{"portfolio." + ticker: ""}},
		)
	}
}

// Deposit credits cash to the user's account and records the movement
// as a completed order plus a transaction carrying the balance after.
func (s *OrderService) Deposit(user *models.User, amount float64) (*models.Order, *models.Transaction, error) {
	return s.moveCash(user, models.OrderTypeDeposit, amount)
}

// Withdraw debits cash from the user's account. The balance cannot go
// negative.
func (s *OrderService) Withdraw(user *models.User, amount float64) (*models.Order, *models.Transaction, error) {
	if err := checkFunds(user, amount); err != nil {
		return nil, nil, err
	}
	return s.moveCash(user, models.OrderTypeWithdrawal, amount)
}

func (s *OrderService) moveCash(user *models.User, orderType string, amount float64) (*models.Order, *models.Transaction, error) {
	delta := amount
	if orderType == models.OrderTypeWithdrawal {
		delta = -amount
	}

	var updated models.User
	err := s.userCollection.FindOneAndUpdate(
		context.Background(),
		bson.M{"username": user.Username},
		bson.M{"$inc": bson.M{"account.balance": delta}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, err
	}

	order := s.newOrder(user.Username, orderType, "", 0, amount, "N/A", models.OrderStatusCompleted)
	if _, err := s.orderCollection.InsertOne(context.Background(), order); err != nil {
		return nil, nil, err
	}

	txn := &models.Transaction{
		ID:            primitive.NewObjectID(),
		TransactionID: uuid.NewString(),
		OrderID:       order.OrderID,
		Username:      user.Username,
		Price:         amount,
		TotalPrice:    amount,
		BalanceAfter:  updated.Account.Balance,
		Timestamp:     time.Now(),
	}
	if _, err := s.transactionCollection.InsertOne(context.Background(), txn); err != nil {
		return nil, nil, err
	}

	log.Printf("%s executed: %s $%.2f (balance now $%.2f)",
		orderType, user.Username, amount, updated.Account.Balance)
	return order, txn, nil
}

// Cancel voids a pending order and reverses its reserved effect: buy
// orders refund the order total, sell orders restore the shares.
func (s *OrderService) Cancel(actor *models.User, orderID string) error {
	order, err := s.Get(orderID)
	if err != nil {
		return err
	}
	if err := checkCancelable(actor, order); err != nil {
		return err
	}

	switch order.OrderType {
	case models.OrderTypeBuy:
		_, err = s.userCollection.UpdateOne(
			context.Background(),
			bson.M{"username": order.Username},
			bson.M{"$inc": bson.M{"account.balance": order.OrderTotal}},
		)
	case models.OrderTypeSell:
		_, err = s.userCollection.UpdateOne(
			context.Background(),
			bson.M{"username": order.Username},
			bson.M{"$inc": bson.M{"portfolio." + order.Ticker: order.Volume}},
		)
	}
	if err != nil {
		return err
	}

	_, err = s.orderCollection.UpdateOne(
		context.Background(),
		bson.M{"order_id": orderID},
		bson.M{"$set": bson.M{"status": models.OrderStatusCanceled}},
	)
	return err
}

func (s *OrderService) Get(orderID string) (*models.Order, error) {
	var order models.Order
	err := s.orderCollection.FindOne(context.Background(), bson.M{"order_id": orderID}).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (s *OrderService) ListForUser(username string) ([]models.Order, error) {
	cur, err := s.orderCollection.Find(context.Background(), bson.M{"username": username})
	if err != nil {
		return nil, err
	}
	defer cur.Close(context.Background())

	var orders []models.Order
	if err := cur.All(context.Background(), &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// Holding is one portfolio position valued at the current price.
type Holding struct {
	Ticker       string  `json:"ticker"`
	CompanyName  string  `json:"companyName"`
	Volume       int     `json:"volume"`
	CurrentPrice float64 `json:"currentPrice"`
	TotalValue   float64 `json:"totalValue"`
}

type PortfolioSummary struct {
	Holdings    []Holding `json:"holdings"`
	CashBalance float64   `json:"cashBalance"`
	TotalAssets float64   `json:"totalAssets"`
}

// Portfolio values the user's positions at current prices and adds the
// cash balance.
func (s *OrderService) Portfolio(username string) (*PortfolioSummary, error) {
	var user models.User
	err := s.userCollection.FindOne(context.Background(), bson.M{"username": username}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if user.Account == nil {
		return nil, ErrNotCustomer
	}

	summary := &PortfolioSummary{
		Holdings:    []Holding{},
		CashBalance: user.Account.Balance,
		TotalAssets: user.Account.Balance,
	}
	for ticker, volume := range user.Portfolio {
		stock, err := s.stockService.Get(ticker)
		if err != nil {
			continue // stock delisted, shares keep no book value
		}
		value := stock.CurrentPrice * float64(volume)
		summary.Holdings = append(summary.Holdings, Holding{
			Ticker:       ticker,
			CompanyName:  stock.CompanyName,
			Volume:       volume,
			CurrentPrice: stock.CurrentPrice,
			TotalValue:   value,
		})
		summary.TotalAssets += value
	}
	return summary, nil
}

func (s *OrderService) newOrder(username, orderType, ticker string, volume int, total float64, marketStatus, status string) *models.Order {
	return &models.Order{
		ID:           primitive.NewObjectID(),
		OrderID:      uuid.NewString(),
		Username:     username,
		Ticker:       ticker,
		OrderType:    orderType,
		Volume:       volume,
		OrderTotal:   total,
		Status:       status,
		MarketStatus: marketStatus,
		Timestamp:    time.Now(),
	}
}

func (s *OrderService) recordTransaction(order *models.Order, price float64) error {
	txn := &models.Transaction{
		ID:            primitive.NewObjectID(),
		TransactionID: uuid.NewString(),
		OrderID:       order.OrderID,
		Username:      order.Username,
		Ticker:        order.Ticker,
		Volume:        order.Volume,
		Price:         price,
		TotalPrice:    order.OrderTotal,
		Timestamp:     time.Now(),
	}
	_, err := s.transactionCollection.InsertOne(context.Background(), txn)
	return err
}
