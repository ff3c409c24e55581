package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "debtfreepro/internal/errors"
	"debtfreepro/internal/models"
	"debtfreepro/internal/pagination"
	"debtfreepro/internal/services"
)

// DebtHandler handles debt-related requests.
type DebtHandler struct {
	debtService      services.DebtServicer
	statementService services.StatementServicer
}

// NewDebtHandler creates a new DebtHandler.
func NewDebtHandler(debtService services.DebtServicer, statementService services.StatementServicer) *DebtHandler {
	return &DebtHandler{debtService: debtService, statementService: statementService}
}

// CreateDebtRequest represents the request payload for creating a debt.
type CreateDebtRequest struct {
	Name           string  `json:"name" binding:"required,min=1,max=100"`
	Category       string  `json:"category" binding:"required,debt_category"`
	Balance        float64 `json:"balance" binding:"gte=0"`
	MinimumPayment float64 `json:"minimum_payment" binding:"gte=0"`
	InterestRate   float64 `json:"interest_rate" binding:"gte=0,lte=100"`
	Institution    string  `json:"institution" binding:"max=100"`
	AccountNumber  string  `json:"account_number" binding:"max=50"`
	DueDay         *int    `json:"due_day" binding:"omitempty,min=1,max=31"`
}

// ImportDebtRequest represents a complete debt record, identifier
// included, for restoring exported data.
type ImportDebtRequest struct {
	ID             string  `json:"id" binding:"omitempty,uuid"`
	Name           string  `json:"name" binding:"required,min=1,max=100"`
	Category       string  `json:"category" binding:"required,debt_category"`
	Balance        float64 `json:"balance" binding:"gte=0"`
	MinimumPayment float64 `json:"minimum_payment" binding:"gte=0"`
	InterestRate   float64 `json:"interest_rate" binding:"gte=0,lte=100"`
	Institution    string  `json:"institution" binding:"max=100"`
	AccountNumber  string  `json:"account_number" binding:"max=50"`
	DueDay         *int    `json:"due_day" binding:"omitempty,min=1,max=31"`
	LastUpdated    string  `json:"last_updated"`
}

// UpdateDebtRequest represents the request payload for updating a debt.
// Nil fields are left unchanged.
type UpdateDebtRequest struct {
	Name           *string  `json:"name" binding:"omitempty,min=1,max=100"`
	Category       *string  `json:"category" binding:"omitempty,debt_category"`
	Balance        *float64 `json:"balance" binding:"omitempty,gte=0"`
	MinimumPayment *float64 `json:"minimum_payment" binding:"omitempty,gte=0"`
	InterestRate   *float64 `json:"interest_rate" binding:"omitempty,gte=0,lte=100"`
	Institution    *string  `json:"institution" binding:"omitempty,max=100"`
	AccountNumber  *string  `json:"account_number" binding:"omitempty,max=50"`
	DueDay         *int     `json:"due_day" binding:"omitempty,min=1,max=31"`
}

// CreateDebt handles the creation of a new debt.
func (h *DebtHandler) CreateDebt(c *gin.Context) {
	var req CreateDebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	debt, err := h.debtService.CreateDebt(services.CreateDebtRequest{
		Name:           req.Name,
		Category:       models.DebtCategory(req.Category),
		Balance:        req.Balance,
		MinimumPayment: req.MinimumPayment,
		InterestRate:   req.InterestRate,
		Institution:    req.Institution,
		AccountNumber:  req.AccountNumber,
		DueDay:         req.DueDay,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"debt": debt})
}

// ImportDebt handles restoring a complete debt record, keeping the
// caller-supplied identifier if one is set.
func (h *DebtHandler) ImportDebt(c *gin.Context) {
	var req ImportDebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	debt := &models.Debt{
		Base:           models.Base{ID: req.ID},
		Name:           req.Name,
		Category:       models.DebtCategory(req.Category),
		Balance:        req.Balance,
		MinimumPayment: req.MinimumPayment,
		InterestRate:   req.InterestRate,
		Institution:    req.Institution,
		AccountNumber:  req.AccountNumber,
		DueDay:         req.DueDay,
	}
	if req.LastUpdated != "" {
		parsed, err := time.Parse(time.RFC3339, req.LastUpdated)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid last_updated format"))
			return
		}
		debt.LastUpdated = parsed
	}

	imported, err := h.debtService.ImportDebt(debt)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"debt": imported})
}

// GetDebts handles the paginated retrieval of all debts.
func (h *DebtHandler) GetDebts(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.debtService.GetDebts(page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetDebtByID handles the retrieval of a specific debt.
func (h *DebtHandler) GetDebtByID(c *gin.Context) {
	debt, err := h.debtService.GetDebtByID(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"debt": debt})
}

// UpdateDebt handles a partial update of a debt.
func (h *DebtHandler) UpdateDebt(c *gin.Context) {
	var req UpdateDebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	update := services.DebtUpdate{
		Name:           req.Name,
		Balance:        req.Balance,
		MinimumPayment: req.MinimumPayment,
		InterestRate:   req.InterestRate,
		Institution:    req.Institution,
		AccountNumber:  req.AccountNumber,
		DueDay:         req.DueDay,
	}
	if req.Category != nil {
		category := models.DebtCategory(*req.Category)
		update.Category = &category
	}

	debt, err := h.debtService.UpdateDebt(c.Param("id"), update)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"debt": debt})
}

// DeleteDebt handles the deletion of a debt and its statements.
func (h *DebtHandler) DeleteDebt(c *gin.Context) {
	if err := h.debtService.DeleteDebt(c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Debt deleted"})
}

// GetDebtStatements handles the paginated retrieval of a debt's statements.
func (h *DebtHandler) GetDebtStatements(c *gin.Context) {
	debtID := c.Param("id")
	if _, err := h.debtService.GetDebtByID(debtID); err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.statementService.GetStatements(debtID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
