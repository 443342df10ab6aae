package services

import (
	"log"
	"math"
	"math/rand"
	"time"
)

// QuoteFeed drives the simulated market: every tick it applies a small
// random walk to each listed stock's current price. Price updates go
// through StockService.UpdatePrice, which persists them and broadcasts
// to websocket subscribers.
type QuoteFeed struct {
	stockService *StockService
	interval     time.Duration
}

func NewQuoteFeed(stockService *StockService) *QuoteFeed {
	return &QuoteFeed{
		stockService: stockService,
		interval:     3 * time.Second,
	}
}

// Run loops forever; call it in a goroutine.
func (f *QuoteFeed) Run() {
	// Let the server finish starting before the first tick.
	time.Sleep(2 * time.Second)
	log.Println("📈 Starting simulated quote feed...")

	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	for range ticker.C {
		f.tick()
	}
}

func (f *QuoteFeed) tick() {
	stocks, err := f.stockService.List()
	if err != nil {
		log.Printf("Quote feed: failed to list stocks: %v", err)
		return
	}

	for _, stock := range stocks {
		price := nextPrice(stock.CurrentPrice)
		if _, err := f.stockService.UpdatePrice(stock.Ticker, price); err != nil {
			log.Printf("Quote feed: failed to update %s: %v", stock.Ticker, err)
		}
	}
}

// nextPrice moves the price by up to ±1.5%, rounded to cents, never
// below one cent.
func nextPrice(current float64) float64 {
	changePercent := rand.Float64()*3 - 1.5
	price := current * (1 + changePercent/100)
	price = math.Round(price*100) / 100
	if price < 0.01 {
		price = 0.01
	}
	return price
}
