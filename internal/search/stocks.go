package search

import (
	"fmt"
	"strings"
	"sync"

	"github.com/blevesearch/bleve/v2"

	"stock-trading-platform/internal/models"
)

// stockDoc is the flat document shape stored in the index.
type stockDoc struct {
	Ticker      string `json:"ticker"`
	CompanyName string `json:"company_name"`
}

// StockIndex is an in-memory full-text index over the stock catalog.
// The catalog is small and already persisted in Mongo, so the index is
// rebuilt from the stocks collection at startup and maintained on every
// stock create/delete.
type StockIndex struct {
	mu    sync.RWMutex
	index bleve.Index
}

func NewStockIndex() (*StockIndex, error) {
	index, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create index: %v", err)
	}
	return &StockIndex{index: index}, nil
}

// Rebuild replaces the index contents with the given catalog.
func (s *StockIndex) Rebuild(stocks []models.Stock) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	index, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return fmt.Errorf("failed to create index: %v", err)
	}

	batch := index.NewBatch()
	for _, stock := range stocks {
		doc := stockDoc{Ticker: stock.Ticker, CompanyName: stock.CompanyName}
		if err := batch.Index(stock.Ticker, doc); err != nil {
			return fmt.Errorf("failed to add to batch: %v", err)
		}
	}
	if err := index.Batch(batch); err != nil {
		return fmt.Errorf("failed to execute batch: %v", err)
	}

	old := s.index
	s.index = index
	return old.Close()
}

func (s *StockIndex) Add(stock models.Stock) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index.Index(stock.Ticker, stockDoc{Ticker: stock.Ticker, CompanyName: stock.CompanyName})
}

func (s *StockIndex) Remove(ticker string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index.Delete(ticker)
}

// Search returns tickers matching the query, best match first. Exact and
// prefix ticker matches outrank company-name matches, which outrank
// substring hits.
func (s *StockIndex) Search(query string) ([]string, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, nil
	}

	exactQuery := bleve.NewTermQuery(q)
	exactQuery.SetField("ticker")
	exactQuery.SetBoost(10.0)

	prefixQuery := bleve.NewPrefixQuery(q)
	prefixQuery.SetField("ticker")
	prefixQuery.SetBoost(5.0)

	nameMatchQuery := bleve.NewMatchQuery(query)
	nameMatchQuery.SetField("company_name")
	nameMatchQuery.SetBoost(3.0)

	wildcardTicker := bleve.NewWildcardQuery("*" + q + "*")
	wildcardTicker.SetField("ticker")
	wildcardTicker.SetBoost(2.0)

	wildcardName := bleve.NewWildcardQuery("*" + q + "*")
	wildcardName.SetField("company_name")
	wildcardName.SetBoost(1.5)

	searchQuery := bleve.NewDisjunctionQuery(
		exactQuery,
		prefixQuery,
		nameMatchQuery,
		wildcardTicker,
		wildcardName,
	)

	searchRequest := bleve.NewSearchRequest(searchQuery)
	searchRequest.Size = 50

	s.mu.RLock()
	searchResults, err := s.index.Search(searchRequest)
	s.mu.RUnlock()
	if err != nil {
		return nil, err
	}

	tickers := make([]string, 0, len(searchResults.Hits))
	for _, hit := range searchResults.Hits {
		tickers = append(tickers, hit.ID)
	}
	return tickers, nil
}

func (s *StockIndex) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index.Close()
}
