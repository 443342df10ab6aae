package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"stock-trading-platform/internal/models"
	"stock-trading-platform/internal/services"
)

type MarketHandler struct {
	marketService *services.MarketService
}

func NewMarketHandler(marketService *services.MarketService) *MarketHandler {
	return &MarketHandler{marketService: marketService}
}

type UpdateMarketRequest struct {
	Status       *string  `json:"status" binding:"omitempty,oneof=open closed"`
	OpeningHours *string  `json:"openingHours"`
	ClosingHours *string  `json:"closingHours"`
	Holidays     []string `json:"holidays"`
}

type UpdateScheduleRequest struct {
	OpeningHours string `json:"openingHours" binding:"required"`
	ClosingHours string `json:"closingHours" binding:"required"`
}

func (h *MarketHandler) GetMarket(c *gin.Context) {
	market, err := h.marketService.Get()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, market)
}

// IsOpen applies the full rule: status flag, trading hours and holidays.
func (h *MarketHandler) IsOpen(c *gin.Context) {
	open, err := h.marketService.IsOpen()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"isMarketOpen": open})
}

// UpdateMarket applies a partial update to the market document.
// Admin-only route.
func (h *MarketHandler) UpdateMarket(c *gin.Context) {
	var req UpdateMarketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	if req.Status == nil && req.OpeningHours == nil && req.ClosingHours == nil && req.Holidays == nil {
		abortError(c, http.StatusBadRequest, "NO_VALID_FIELDS", "No valid fields provided for update")
		return
	}
	if !validHours(req.OpeningHours) || !validHours(req.ClosingHours) {
		abortError(c, http.StatusBadRequest, "INVALID_SCHEDULE", "Hours must be in HH:MM format")
		return
	}

	market, err := h.marketService.Update(services.MarketUpdate{
		Status:       req.Status,
		OpeningHours: req.OpeningHours,
		ClosingHours: req.ClosingHours,
		Holidays:     req.Holidays,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, market)
}

// OpenMarket flips the status flag to open. Admin-only route.
func (h *MarketHandler) OpenMarket(c *gin.Context) {
	if err := h.marketService.SetStatus(models.MarketOpen); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Market opened successfully"})
}

// CloseMarket flips the status flag to closed. Admin-only route.
func (h *MarketHandler) CloseMarket(c *gin.Context) {
	if err := h.marketService.SetStatus(models.MarketClosed); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Market closed successfully"})
}

// UpdateSchedule replaces the trading hours. Admin-only route.
func (h *MarketHandler) UpdateSchedule(c *gin.Context) {
	var req UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	if !validHours(&req.OpeningHours) || !validHours(&req.ClosingHours) {
		abortError(c, http.StatusBadRequest, "INVALID_SCHEDULE", "Hours must be in HH:MM format")
		return
	}

	market, err := h.marketService.SetSchedule(req.OpeningHours, req.ClosingHours)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, market)
}

func validHours(s *string) bool {
	if s == nil {
		return true
	}
	_, err := time.Parse("15:04", *s)
	return err == nil
}
