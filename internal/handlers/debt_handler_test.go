package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "debtfreepro/internal/errors"
	"debtfreepro/internal/models"
	"debtfreepro/internal/pagination"
	"debtfreepro/internal/services"
	"debtfreepro/internal/validator"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	validator.Register()
	os.Exit(m.Run())
}

// --- shared helpers ---

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %v", code, errObj["code"])
	}
}

// --- mock debt service ---

type mockDebtService struct {
	createDebtFn func(req services.CreateDebtRequest) (*models.Debt, error)
	importDebtFn func(debt *models.Debt) (*models.Debt, error)
	getDebtsFn   func(page pagination.PageRequest) (*pagination.PageResponse[models.Debt], error)
	getDebtFn    func(id string) (*models.Debt, error)
	updateDebtFn func(id string, update services.DebtUpdate) (*models.Debt, error)
	deleteDebtFn func(id string) error
}

func (m *mockDebtService) CreateDebt(req services.CreateDebtRequest) (*models.Debt, error) {
	if m.createDebtFn != nil {
		return m.createDebtFn(req)
	}
	return &models.Debt{}, nil
}

func (m *mockDebtService) ImportDebt(debt *models.Debt) (*models.Debt, error) {
	if m.importDebtFn != nil {
		return m.importDebtFn(debt)
	}
	return debt, nil
}

func (m *mockDebtService) GetDebts(page pagination.PageRequest) (*pagination.PageResponse[models.Debt], error) {
	if m.getDebtsFn != nil {
		return m.getDebtsFn(page)
	}
	resp := pagination.NewPageResponse([]models.Debt{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockDebtService) GetDebtByID(id string) (*models.Debt, error) {
	if m.getDebtFn != nil {
		return m.getDebtFn(id)
	}
	return &models.Debt{}, nil
}

func (m *mockDebtService) UpdateDebt(id string, update services.DebtUpdate) (*models.Debt, error) {
	if m.updateDebtFn != nil {
		return m.updateDebtFn(id, update)
	}
	return &models.Debt{}, nil
}

func (m *mockDebtService) DeleteDebt(id string) error {
	if m.deleteDebtFn != nil {
		return m.deleteDebtFn(id)
	}
	return nil
}

var _ services.DebtServicer = (*mockDebtService)(nil)

func setupDebtRouter(handler *DebtHandler) *gin.Engine {
	r := gin.New()
	r.POST("/debts", handler.CreateDebt)
	r.POST("/debts/import", handler.ImportDebt)
	r.GET("/debts", handler.GetDebts)
	r.GET("/debts/:id", handler.GetDebtByID)
	r.PUT("/debts/:id", handler.UpdateDebt)
	r.DELETE("/debts/:id", handler.DeleteDebt)
	r.GET("/debts/:id/statements", handler.GetDebtStatements)
	return r
}

func TestDebtHandler_CreateDebt(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		debtSvc := &mockDebtService{
			createDebtFn: func(req services.CreateDebtRequest) (*models.Debt, error) {
				return &models.Debt{
					Base:     models.Base{ID: "debt-1"},
					Name:     req.Name,
					Category: req.Category,
					Balance:  req.Balance,
				}, nil
			},
		}
		handler := NewDebtHandler(debtSvc, &mockStatementService{})
		r := setupDebtRouter(handler)

		rec := doRequest(r, "POST", "/debts",
			`{"name":"Visa","category":"credit_card","balance":1500,"minimum_payment":35,"interest_rate":19.99}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		debt := result["debt"].(map[string]interface{})
		if debt["name"] != "Visa" {
			t.Errorf("expected Visa, got %v", debt["name"])
		}
	})

	t.Run("returns 400 on missing name", func(t *testing.T) {
		handler := NewDebtHandler(&mockDebtService{}, &mockStatementService{})
		r := setupDebtRouter(handler)

		rec := doRequest(r, "POST", "/debts", `{"category":"credit_card"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on unknown category", func(t *testing.T) {
		handler := NewDebtHandler(&mockDebtService{}, &mockStatementService{})
		r := setupDebtRouter(handler)

		rec := doRequest(r, "POST", "/debts", `{"name":"Visa","category":"payday_loan"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on out-of-range rate", func(t *testing.T) {
		handler := NewDebtHandler(&mockDebtService{}, &mockStatementService{})
		r := setupDebtRouter(handler)

		rec := doRequest(r, "POST", "/debts",
			`{"name":"Visa","category":"credit_card","interest_rate":150}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestDebtHandler_ImportDebt(t *testing.T) {
	t.Run("keeps supplied identifier", func(t *testing.T) {
		var captured *models.Debt
		debtSvc := &mockDebtService{
			importDebtFn: func(debt *models.Debt) (*models.Debt, error) {
				captured = debt
				return debt, nil
			},
		}
		handler := NewDebtHandler(debtSvc, &mockStatementService{})
		r := setupDebtRouter(handler)

		rec := doRequest(r, "POST", "/debts/import",
			`{"id":"018f63a0-0000-7000-8000-000000000001","name":"Visa","category":"credit_card",`+
				`"balance":1500,"minimum_payment":35,"interest_rate":19.99,`+
				`"last_updated":"2026-01-15T00:00:00Z"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if captured == nil || captured.ID != "018f63a0-0000-7000-8000-000000000001" {
			t.Errorf("expected supplied id to be kept, got %+v", captured)
		}
		if captured.LastUpdated.IsZero() {
			t.Error("expected last_updated to be parsed")
		}
	})

	t.Run("returns 400 on malformed last_updated", func(t *testing.T) {
		handler := NewDebtHandler(&mockDebtService{}, &mockStatementService{})
		r := setupDebtRouter(handler)

		rec := doRequest(r, "POST", "/debts/import",
			`{"name":"Visa","category":"credit_card","last_updated":"yesterday"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestDebtHandler_GetDebtByID(t *testing.T) {
	t.Run("returns 200 with debt", func(t *testing.T) {
		debtSvc := &mockDebtService{
			getDebtFn: func(id string) (*models.Debt, error) {
				return &models.Debt{Base: models.Base{ID: id}, Name: "Visa"}, nil
			},
		}
		handler := NewDebtHandler(debtSvc, &mockStatementService{})
		r := setupDebtRouter(handler)

		rec := doRequest(r, "GET", "/debts/debt-1", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		debt := result["debt"].(map[string]interface{})
		if debt["id"] != "debt-1" {
			t.Errorf("expected debt-1, got %v", debt["id"])
		}
	})

	t.Run("returns 404 when missing", func(t *testing.T) {
		debtSvc := &mockDebtService{
			getDebtFn: func(id string) (*models.Debt, error) {
				return nil, apperrors.ErrDebtNotFound
			},
		}
		handler := NewDebtHandler(debtSvc, &mockStatementService{})
		r := setupDebtRouter(handler)

		rec := doRequest(r, "GET", "/debts/missing", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "DEBT_NOT_FOUND")
	})
}

func TestDebtHandler_UpdateDebt(t *testing.T) {
	t.Run("passes partial update through", func(t *testing.T) {
		var captured services.DebtUpdate
		debtSvc := &mockDebtService{
			updateDebtFn: func(id string, update services.DebtUpdate) (*models.Debt, error) {
				captured = update
				return &models.Debt{Base: models.Base{ID: id}}, nil
			},
		}
		handler := NewDebtHandler(debtSvc, &mockStatementService{})
		r := setupDebtRouter(handler)

		rec := doRequest(r, "PUT", "/debts/debt-1", `{"balance":900}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if captured.Balance == nil || *captured.Balance != 900 {
			t.Errorf("expected balance 900 in update, got %v", captured.Balance)
		}
		if captured.Name != nil {
			t.Error("name should be nil when not provided")
		}
	})
}

func TestDebtHandler_DeleteDebt(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		handler := NewDebtHandler(&mockDebtService{}, &mockStatementService{})
		r := setupDebtRouter(handler)

		rec := doRequest(r, "DELETE", "/debts/debt-1", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("returns 404 when missing", func(t *testing.T) {
		debtSvc := &mockDebtService{
			deleteDebtFn: func(id string) error { return apperrors.ErrDebtNotFound },
		}
		handler := NewDebtHandler(debtSvc, &mockStatementService{})
		r := setupDebtRouter(handler)

		rec := doRequest(r, "DELETE", "/debts/missing", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}
