package services

import (
	"context"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"stock-trading-platform/config"
	"stock-trading-platform/internal/models"
	"stock-trading-platform/internal/search"
)

type StockService struct {
	stockCollection *mongo.Collection
	index           *search.StockIndex
	hub             *WebSocketHub
}

func NewStockService(index *search.StockIndex, hub *WebSocketHub) *StockService {
	return &StockService{
		stockCollection: config.GetCollection(config.StocksCollection),
		index:           index,
		hub:             hub,
	}
}

// Create registers a new stock for trading. Tickers are unique. Price
// fields not supplied default to the initial price.
func (s *StockService) Create(stock *models.Stock) error {
	err := s.stockCollection.FindOne(context.Background(), bson.M{"ticker": stock.Ticker}).Err()
	if err == nil {
		return ErrStockExists
	}
	if err != mongo.ErrNoDocuments {
		return err
	}

	stock.ID = primitive.NewObjectID()
	if stock.CurrentPrice == 0 {
		stock.CurrentPrice = stock.InitialPrice
	}
	if stock.OpeningPrice == 0 {
		stock.OpeningPrice = stock.InitialPrice
	}
	if stock.HighPrice == 0 {
		stock.HighPrice = stock.CurrentPrice
	}
	if stock.LowPrice == 0 {
		stock.LowPrice = stock.CurrentPrice
	}
	if stock.MarketStatus == "" {
		stock.MarketStatus = models.MarketOpen
	}

	if _, err := s.stockCollection.InsertOne(context.Background(), stock); err != nil {
		return err
	}

	if err := s.index.Add(*stock); err != nil {
		log.Printf("Failed to index stock %s: %v", stock.Ticker, err)
	}
	return nil
}

func (s *StockService) Get(ticker string) (*models.Stock, error) {
	var stock models.Stock
	err := s.stockCollection.FindOne(context.Background(), bson.M{"ticker": ticker}).Decode(&stock)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrStockNotFound
		}
		return nil, err
	}
	return &stock, nil
}

func (s *StockService) List() ([]models.Stock, error) {
	cur, err := s.stockCollection.Find(context.Background(), bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(context.Background())

	var stocks []models.Stock
	if err := cur.All(context.Background(), &stocks); err != nil {
		return nil, err
	}
	return stocks, nil
}

// UpdatePrice sets the current price, folds it into the day's high/low
// and broadcasts the updated quote to websocket subscribers.
func (s *StockService) UpdatePrice(ticker string, price float64) (*models.Stock, error) {
	result, err := s.stockCollection.UpdateOne(
		context.Background(),
		bson.M{"ticker": ticker},
		bson.M{
			"$set": bson.M{"current_price": price},
			"$max": bson.M{"high_price": price},
			"$min": bson.M{"low_price": price},
		},
	)
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, ErrStockNotFound
	}

	stock, err := s.Get(ticker)
	if err != nil {
		return nil, err
	}
	if s.hub != nil {
		s.hub.BroadcastStock(*stock)
	}
	return stock, nil
}

func (s *StockService) Delete(ticker string) error {
	result, err := s.stockCollection.DeleteOne(context.Background(), bson.M{"ticker": ticker})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrStockNotFound
	}

	if err := s.index.Remove(ticker); err != nil {
		log.Printf("Failed to deindex stock %s: %v", ticker, err)
	}
	return nil
}

// Search runs a full-text query over tickers and company names and
// resolves the hits back to stock documents, best match first.
func (s *StockService) Search(query string) ([]models.Stock, error) {
	tickers, err := s.index.Search(query)
	if err != nil {
		return nil, err
	}

	stocks := make([]models.Stock, 0, len(tickers))
	for _, ticker := range tickers {
		stock, err := s.Get(ticker)
		if err != nil {
			continue // deleted since last reindex
		}
		stocks = append(stocks, *stock)
	}
	return stocks, nil
}

// ReloadIndex rebuilds the search index from the stocks collection.
func (s *StockService) ReloadIndex() error {
	stocks, err := s.List()
	if err != nil {
		return err
	}
	if err := s.index.Rebuild(stocks); err != nil {
		return err
	}
	log.Printf("Indexed %d stocks for search", len(stocks))
	return nil
}
