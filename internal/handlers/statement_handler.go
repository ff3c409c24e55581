package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "debtfreepro/internal/errors"
	"debtfreepro/internal/pagination"
	"debtfreepro/internal/services"
)

// StatementHandler handles statement ingestion and reconciliation requests.
type StatementHandler struct {
	statementService services.StatementServicer
}

// NewStatementHandler creates a new StatementHandler.
func NewStatementHandler(statementService services.StatementServicer) *StatementHandler {
	return &StatementHandler{statementService: statementService}
}

// ProcessDocumentRequest represents the payload for processing an
// uploaded document into a statement. DebtID may be empty; an unlinked
// statement is stored and linked later.
type ProcessDocumentRequest struct {
	DebtID string `json:"debt_id"`
}

// LinkStatementRequest represents the payload for linking an existing
// statement to a debt.
type LinkStatementRequest struct {
	DebtID string `json:"debt_id" binding:"required"`
}

// ProcessDocument turns an uploaded document into a statement and
// reconciles it against the target debt.
func (h *StatementHandler) ProcessDocument(c *gin.Context) {
	var req ProcessDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.statementService.ProcessUploadedStatement(c.Param("id"), req.DebtID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// LinkStatement attaches an existing statement to a debt and reconciles it.
func (h *StatementHandler) LinkStatement(c *gin.Context) {
	var req LinkStatementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.statementService.ProcessExistingStatement(c.Param("id"), req.DebtID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// AnalyzeStatement returns the financial delta between a statement and
// a debt without persisting anything.
func (h *StatementHandler) AnalyzeStatement(c *gin.Context) {
	statement, err := h.statementService.GetStatementByID(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	analysis, err := h.statementService.AnalyzeStatement(statement, c.Query("debt_id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"analysis": analysis})
}

// GetStatements handles the paginated retrieval of statements, optionally
// filtered by debt_id.
func (h *StatementHandler) GetStatements(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.statementService.GetStatements(c.Query("debt_id"), page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetStatementByID handles the retrieval of a specific statement with
// its entries.
func (h *StatementHandler) GetStatementByID(c *gin.Context) {
	statement, err := h.statementService.GetStatementByID(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"statement": statement})
}
