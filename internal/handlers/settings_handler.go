package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "debtfreepro/internal/errors"
	"debtfreepro/internal/models"
	"debtfreepro/internal/services"
)

// SettingsHandler handles app settings requests.
type SettingsHandler struct {
	settingsService services.SettingsServicer
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(settingsService services.SettingsServicer) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// UpdateSettingsRequest represents a partial settings update.
type UpdateSettingsRequest struct {
	ExtraPayment *float64 `json:"extra_payment" binding:"omitempty,gte=0"`
	Strategy     *string  `json:"strategy" binding:"omitempty,strategy_type"`
	Currency     *string  `json:"currency" binding:"omitempty,iso4217"`
}

// GetSettings returns the settings singleton, creating defaults on
// first read.
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingsService.GetSettings()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// UpdateSettings applies a partial settings update.
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	update := services.SettingsUpdate{
		ExtraPayment: req.ExtraPayment,
		Currency:     req.Currency,
	}
	if req.Strategy != nil {
		strategy := models.StrategyType(*req.Strategy)
		update.Strategy = &strategy
	}

	settings, err := h.settingsService.UpdateSettings(update)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": settings})
}
