package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "debtfreepro/internal/errors"
	"debtfreepro/internal/services"
)

// StrategyHandler handles payoff-strategy requests.
type StrategyHandler struct {
	strategyService services.StrategyServicer
	settingsService services.SettingsServicer
}

// NewStrategyHandler creates a new StrategyHandler.
func NewStrategyHandler(strategyService services.StrategyServicer, settingsService services.SettingsServicer) *StrategyHandler {
	return &StrategyHandler{strategyService: strategyService, settingsService: settingsService}
}

// GetSnowball computes the snowball payoff schedule. The extra payment
// comes from the extra_payment query parameter when present, otherwise
// from the stored settings.
func (h *StrategyHandler) GetSnowball(c *gin.Context) {
	extraPayment, err := h.resolveExtraPayment(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	strategy, err := h.strategyService.CalculateSnowball(extraPayment)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"strategy": strategy})
}

// GetConsolidationOpportunities returns advisory consolidation suggestions.
func (h *StrategyHandler) GetConsolidationOpportunities(c *gin.Context) {
	opportunities, err := h.strategyService.FindConsolidationOpportunities()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"opportunities": opportunities})
}

func (h *StrategyHandler) resolveExtraPayment(c *gin.Context) (float64, error) {
	if raw := c.Query("extra_payment"); raw != "" {
		extra, err := strconv.ParseFloat(raw, 64)
		if err != nil || extra < 0 {
			return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid extra_payment")
		}
		return extra, nil
	}

	settings, err := h.settingsService.GetSettings()
	if err != nil {
		return 0, err
	}
	return settings.ExtraPayment, nil
}
