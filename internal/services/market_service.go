package services

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"stock-trading-platform/config"
	"stock-trading-platform/internal/models"
)

// The market is a singleton document keyed by this ID.
const marketID = 1

type MarketService struct {
	marketCollection *mongo.Collection
}

func NewMarketService() *MarketService {
	return &MarketService{
		marketCollection: config.GetCollection(config.MarketCollection),
	}
}

// Seed inserts the default market document if none exists yet.
func (s *MarketService) Seed() error {
	err := s.marketCollection.FindOne(context.Background(), bson.M{"market_id": marketID}).Err()
	if err == nil {
		return nil
	}
	if err != mongo.ErrNoDocuments {
		return err
	}

	market := models.Market{
		MarketID:     marketID,
		Status:       models.MarketOpen,
		OpeningHours: "09:00",
		ClosingHours: "16:00",
		Holidays:     []string{},
	}
	_, err = s.marketCollection.InsertOne(context.Background(), market)
	if err == nil {
		log.Println("Seeded default market document")
	}
	return err
}

func (s *MarketService) Get() (*models.Market, error) {
	var market models.Market
	err := s.marketCollection.FindOne(context.Background(), bson.M{"market_id": marketID}).Decode(&market)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrMarketNotFound
		}
		return nil, err
	}
	return &market, nil
}

// IsOpen reports whether trading is currently allowed.
func (s *MarketService) IsOpen() (bool, error) {
	market, err := s.Get()
	if err != nil {
		return false, err
	}
	return market.IsOpenAt(time.Now()), nil
}

// SetStatus flips the market status flag to open or closed.
func (s *MarketService) SetStatus(status string) error {
	result, err := s.marketCollection.UpdateOne(
		context.Background(),
		bson.M{"market_id": marketID},
		bson.M{"$set": bson.M{"status": status}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrMarketNotFound
	}
	return nil
}

// SetSchedule replaces the trading hours.
func (s *MarketService) SetSchedule(openingHours, closingHours string) (*models.Market, error) {
	result, err := s.marketCollection.UpdateOne(
		context.Background(),
		bson.M{"market_id": marketID},
		bson.M{"$set": bson.M{
			"opening_hours": openingHours,
			"closing_hours": closingHours,
		}},
	)
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, ErrMarketNotFound
	}
	return s.Get()
}

// MarketUpdate carries a partial update; nil fields are left unchanged.
type MarketUpdate struct {
	Status       *string
	OpeningHours *string
	ClosingHours *string
	Holidays     []string
}

func (s *MarketService) Update(upd MarketUpdate) (*models.Market, error) {
	set := bson.M{}
	if upd.Status != nil {
		set["status"] = *upd.Status
	}
	if upd.OpeningHours != nil {
		set["opening_hours"] = *upd.OpeningHours
	}
	if upd.ClosingHours != nil {
		set["closing_hours"] = *upd.ClosingHours
	}
	if upd.Holidays != nil {
		set["holidays"] = upd.Holidays
	}
	if len(set) == 0 {
		return s.Get()
	}

	result, err := s.marketCollection.UpdateOne(
		context.Background(),
		bson.M{"market_id": marketID},
		bson.M{"$set": set},
	)
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, ErrMarketNotFound
	}
	return s.Get()
}
