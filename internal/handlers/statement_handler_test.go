package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "debtfreepro/internal/errors"
	"debtfreepro/internal/models"
	"debtfreepro/internal/pagination"
	"debtfreepro/internal/services"
)

// --- mock statement service ---

type mockStatementService struct {
	processUploadedFn func(documentID, debtID string) (*services.ReconcileResult, error)
	processExistingFn func(statementID, debtID string) (*services.ReconcileResult, error)
	analyzeFn         func(statement *models.Statement, debtID string) (*services.StatementAnalysis, error)
	getStatementsFn   func(debtID string, page pagination.PageRequest) (*pagination.PageResponse[models.Statement], error)
	getStatementFn    func(id string) (*models.Statement, error)
}

func (m *mockStatementService) ProcessUploadedStatement(documentID, debtID string) (*services.ReconcileResult, error) {
	if m.processUploadedFn != nil {
		return m.processUploadedFn(documentID, debtID)
	}
	return &services.ReconcileResult{Statement: &models.Statement{}}, nil
}

func (m *mockStatementService) ProcessExistingStatement(statementID, debtID string) (*services.ReconcileResult, error) {
	if m.processExistingFn != nil {
		return m.processExistingFn(statementID, debtID)
	}
	return &services.ReconcileResult{Statement: &models.Statement{}}, nil
}

func (m *mockStatementService) AnalyzeStatement(statement *models.Statement, debtID string) (*services.StatementAnalysis, error) {
	if m.analyzeFn != nil {
		return m.analyzeFn(statement, debtID)
	}
	return &services.StatementAnalysis{}, nil
}

func (m *mockStatementService) GetStatements(debtID string, page pagination.PageRequest) (*pagination.PageResponse[models.Statement], error) {
	if m.getStatementsFn != nil {
		return m.getStatementsFn(debtID, page)
	}
	resp := pagination.NewPageResponse([]models.Statement{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockStatementService) GetStatementByID(id string) (*models.Statement, error) {
	if m.getStatementFn != nil {
		return m.getStatementFn(id)
	}
	return &models.Statement{}, nil
}

var _ services.StatementServicer = (*mockStatementService)(nil)

func setupStatementRouter(handler *StatementHandler) *gin.Engine {
	r := gin.New()
	r.GET("/statements", handler.GetStatements)
	r.GET("/statements/:id", handler.GetStatementByID)
	r.GET("/statements/:id/analysis", handler.AnalyzeStatement)
	r.POST("/statements/:id/link", handler.LinkStatement)
	r.POST("/documents/:id/process", handler.ProcessDocument)
	return r
}

func TestStatementHandler_ProcessDocument(t *testing.T) {
	t.Run("returns 200 with reconcile result", func(t *testing.T) {
		stmtSvc := &mockStatementService{
			processUploadedFn: func(documentID, debtID string) (*services.ReconcileResult, error) {
				return &services.ReconcileResult{
					Statement: &models.Statement{Base: models.Base{ID: "stmt-1"}, DebtID: debtID},
					Analysis:  &services.StatementAnalysis{NewBalance: 500, ShouldUpdateDebt: true},
					Updated:   true,
				}, nil
			},
		}
		handler := NewStatementHandler(stmtSvc)
		r := setupStatementRouter(handler)

		rec := doRequest(r, "POST", "/documents/doc-1/process", `{"debt_id":"debt-1"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["updated"] != true {
			t.Errorf("expected updated true, got %v", result["updated"])
		}
	})

	t.Run("surfaces manual entry flag", func(t *testing.T) {
		stmtSvc := &mockStatementService{
			processUploadedFn: func(documentID, debtID string) (*services.ReconcileResult, error) {
				return &services.ReconcileResult{
					Statement:           &models.Statement{},
					ManualEntryRequired: true,
				}, nil
			},
		}
		handler := NewStatementHandler(stmtSvc)
		r := setupStatementRouter(handler)

		rec := doRequest(r, "POST", "/documents/doc-1/process", `{}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		if result["manual_entry_required"] != true {
			t.Errorf("expected manual_entry_required true, got %v", result["manual_entry_required"])
		}
	})

	t.Run("returns 404 for missing document", func(t *testing.T) {
		stmtSvc := &mockStatementService{
			processUploadedFn: func(documentID, debtID string) (*services.ReconcileResult, error) {
				return nil, apperrors.ErrDocumentNotFound
			},
		}
		handler := NewStatementHandler(stmtSvc)
		r := setupStatementRouter(handler)

		rec := doRequest(r, "POST", "/documents/missing/process", `{}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "DOCUMENT_NOT_FOUND")
	})
}

func TestStatementHandler_LinkStatement(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		var gotStatementID, gotDebtID string
		stmtSvc := &mockStatementService{
			processExistingFn: func(statementID, debtID string) (*services.ReconcileResult, error) {
				gotStatementID, gotDebtID = statementID, debtID
				return &services.ReconcileResult{
					Statement: &models.Statement{Base: models.Base{ID: statementID}, DebtID: debtID},
					Updated:   true,
				}, nil
			},
		}
		handler := NewStatementHandler(stmtSvc)
		r := setupStatementRouter(handler)

		rec := doRequest(r, "POST", "/statements/stmt-1/link", `{"debt_id":"debt-1"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotStatementID != "stmt-1" || gotDebtID != "debt-1" {
			t.Errorf("expected stmt-1/debt-1, got %s/%s", gotStatementID, gotDebtID)
		}
	})

	t.Run("returns 400 on missing debt_id", func(t *testing.T) {
		handler := NewStatementHandler(&mockStatementService{})
		r := setupStatementRouter(handler)

		rec := doRequest(r, "POST", "/statements/stmt-1/link", `{}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 404 when debt missing", func(t *testing.T) {
		stmtSvc := &mockStatementService{
			processExistingFn: func(statementID, debtID string) (*services.ReconcileResult, error) {
				return nil, apperrors.ErrDebtNotFound
			},
		}
		handler := NewStatementHandler(stmtSvc)
		r := setupStatementRouter(handler)

		rec := doRequest(r, "POST", "/statements/stmt-1/link", `{"debt_id":"missing"}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestStatementHandler_GetStatements(t *testing.T) {
	t.Run("passes debt_id filter through", func(t *testing.T) {
		var gotDebtID string
		stmtSvc := &mockStatementService{
			getStatementsFn: func(debtID string, page pagination.PageRequest) (*pagination.PageResponse[models.Statement], error) {
				gotDebtID = debtID
				resp := pagination.NewPageResponse([]models.Statement{}, 1, 20, 0)
				return &resp, nil
			},
		}
		handler := NewStatementHandler(stmtSvc)
		r := setupStatementRouter(handler)

		rec := doRequest(r, "GET", "/statements?debt_id=debt-1", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotDebtID != "debt-1" {
			t.Errorf("expected debt-1 filter, got %q", gotDebtID)
		}
	})
}
