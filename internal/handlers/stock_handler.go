package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stock-trading-platform/internal/models"
	"stock-trading-platform/internal/services"
)

type StockHandler struct {
	stockService *services.StockService
}

func NewStockHandler(stockService *services.StockService) *StockHandler {
	return &StockHandler{stockService: stockService}
}

type CreateStockRequest struct {
	Ticker       string  `json:"ticker" binding:"required,min=1,max=10"`
	CompanyName  string  `json:"companyName" binding:"required"`
	Volume       int64   `json:"volume" binding:"gte=0"`
	InitialPrice float64 `json:"initialPrice" binding:"required,gt=0"`
	CurrentPrice float64 `json:"currentPrice" binding:"omitempty,gt=0"`
	OpeningPrice float64 `json:"openingPrice" binding:"omitempty,gt=0"`
	HighPrice    float64 `json:"highPrice" binding:"omitempty,gt=0"`
	LowPrice     float64 `json:"lowPrice" binding:"omitempty,gt=0"`
}

type UpdatePriceRequest struct {
	Price float64 `json:"price" binding:"required,gt=0"`
}

// CreateStock registers a new stock for trading. Admin-only route.
func (h *StockHandler) CreateStock(c *gin.Context) {
	var req CreateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	stock := &models.Stock{
		Ticker:       req.Ticker,
		CompanyName:  req.CompanyName,
		Volume:       req.Volume,
		InitialPrice: req.InitialPrice,
		CurrentPrice: req.CurrentPrice,
		OpeningPrice: req.OpeningPrice,
		HighPrice:    req.HighPrice,
		LowPrice:     req.LowPrice,
	}
	if err := h.stockService.Create(stock); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"stock": stock})
}

func (h *StockHandler) GetStock(c *gin.Context) {
	stock, err := h.stockService.Get(c.Param("ticker"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stock)
}

func (h *StockHandler) ListStocks(c *gin.Context) {
	stocks, err := h.stockService.List()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stocks": stocks})
}

// UpdatePrice sets the current price of a stock. Admin-only route.
func (h *StockHandler) UpdatePrice(c *gin.Context) {
	var req UpdatePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortError(c, http.StatusBadRequest, "INVALID_PRICE", err.Error())
		return
	}

	stock, err := h.stockService.UpdatePrice(c.Param("ticker"), req.Price)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stock)
}

// DeleteStock delists a stock. Admin-only route.
func (h *StockHandler) DeleteStock(c *gin.Context) {
	if err := h.stockService.Delete(c.Param("ticker")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Stock removed successfully"})
}

// SearchStocks runs a full-text query over tickers and company names.
func (h *StockHandler) SearchStocks(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		abortError(c, http.StatusBadRequest, "INVALID_REQUEST", "Query parameter 'q' is required")
		return
	}

	stocks, err := h.stockService.Search(query)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"query": query, "stocks": stocks})
}
